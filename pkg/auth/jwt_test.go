package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohamedTawfiq30/dmorder/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("owner-1", "seller@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.OwnerID)
	assert.Equal(t, "seller@example.com", claims.Email)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = auth.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	token, err := auth.GenerateToken("owner-1", "seller@example.com")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, auth.CheckPassword(hash, "secret123"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestClaimsContextRoundTrip(t *testing.T) {
	ctx := auth.WithClaims(context.Background(), &auth.Claims{OwnerID: "owner-1"})

	assert.Equal(t, "owner-1", auth.OwnerID(ctx))
	require.NotNil(t, auth.FromCtx(ctx))

	assert.Empty(t, auth.OwnerID(context.Background()), "no claims means no owner")
	assert.Nil(t, auth.FromCtx(context.Background()))
}
