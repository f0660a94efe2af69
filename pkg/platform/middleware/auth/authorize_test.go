package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/requestcontext"
)

func TestAuthorizeSubject(t *testing.T) {
	ctx := context.Background()
	lawyer := requestcontext.WithActor(ctx, requestcontext.Caller{Subject: "l-1", Role: requestcontext.RoleLawyer})
	admin := requestcontext.WithActor(ctx, requestcontext.Caller{Subject: "ops", Role: requestcontext.RoleAdmin})

	assert.NoError(t, AuthorizeSubject(ctx, requestcontext.RoleLawyer, "anyone"), "no caller when auth is disabled")
	assert.NoError(t, AuthorizeSubject(lawyer, requestcontext.RoleLawyer, "l-1"))
	assert.NoError(t, AuthorizeSubject(admin, requestcontext.RolePrisoner, "p-1"))

	err := AuthorizeSubject(lawyer, requestcontext.RoleLawyer, "l-2")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	err = AuthorizeSubject(lawyer, requestcontext.RolePrisoner, "l-1")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}
