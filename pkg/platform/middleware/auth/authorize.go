package auth

import (
	"context"

	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/requestcontext"
)

// AuthorizeSubject checks that the authenticated caller is the given
// principal. Admins pass. With auth disabled there is no caller and every
// request passes; path ids are then trusted as-is.
func AuthorizeSubject(ctx context.Context, role requestcontext.Role, subject string) error {
	caller, ok := requestcontext.Actor(ctx)
	if !ok || caller.Role == requestcontext.RoleAdmin {
		return nil
	}
	if caller.Role != role || caller.Subject != subject {
		return dErrors.New(dErrors.CodeForbidden, "caller may not act for this "+string(role))
	}
	return nil
}
