package jwttoken

import "counsel/pkg/requestcontext"

// MiddlewareAdapter exposes Service through the auth middleware's validator port.
type MiddlewareAdapter struct {
	service *Service
}

func NewMiddlewareAdapter(service *Service) *MiddlewareAdapter {
	return &MiddlewareAdapter{service: service}
}

func (a *MiddlewareAdapter) ValidateToken(tokenString string) (requestcontext.Caller, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return requestcontext.Caller{}, err
	}
	return requestcontext.Caller{Subject: claims.Subject, Role: requestcontext.Role(claims.Role)}, nil
}
