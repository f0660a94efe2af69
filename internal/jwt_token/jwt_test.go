package jwttoken

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "counsel/pkg/domain-errors"
	"counsel/pkg/requestcontext"
)

var service = NewService("test-signing-key", "counsel-test")

func TestGenerateAndValidate(t *testing.T) {
	lawyerID := uuid.NewString()

	token, err := service.GenerateAccessToken(lawyerID, "lawyer", time.Hour)
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, lawyerID, claims.Subject)
	assert.Equal(t, "lawyer", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateToken_Rejections(t *testing.T) {
	t.Run("garbage", func(t *testing.T) {
		_, err := service.ValidateToken("invalid-token-string")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("expired", func(t *testing.T) {
		token, err := service.GenerateAccessToken(uuid.NewString(), "lawyer", -time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("other signing key", func(t *testing.T) {
		token, err := NewService("other-key", "counsel-test").GenerateAccessToken(uuid.NewString(), "lawyer", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("other issuer", func(t *testing.T) {
		token, err := NewService("test-signing-key", "someone-else").GenerateAccessToken(uuid.NewString(), "lawyer", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("none algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "lawyer"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})

	t.Run("missing role", func(t *testing.T) {
		token, err := service.GenerateAccessToken(uuid.NewString(), "", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestMiddlewareAdapter(t *testing.T) {
	prisonerID := uuid.NewString()
	token, err := service.GenerateAccessToken(prisonerID, "prisoner", time.Hour)
	require.NoError(t, err)

	caller, err := NewMiddlewareAdapter(service).ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, requestcontext.Caller{Subject: prisonerID, Role: requestcontext.RolePrisoner}, caller)
}
