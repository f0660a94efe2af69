package testutil

import (
	"net/http"

	"counsel/pkg/requestcontext"
)

// AsPrisoner marks the request as coming from an authenticated prisoner,
// as the auth middleware would.
func AsPrisoner(req *http.Request, prisonerID string) *http.Request {
	return WithCaller(req, requestcontext.Caller{Subject: prisonerID, Role: requestcontext.RolePrisoner})
}

// AsLawyer marks the request as coming from an authenticated lawyer.
func AsLawyer(req *http.Request, lawyerID string) *http.Request {
	return WithCaller(req, requestcontext.Caller{Subject: lawyerID, Role: requestcontext.RoleLawyer})
}

func WithCaller(req *http.Request, caller requestcontext.Caller) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), caller))
}
