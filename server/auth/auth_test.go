package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quilicura/micondominio/store"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := &store.User{ID: 42, Role: store.UserRoleAdmin}
	secret := "test-secret"

	token, err := GenerateAccessToken(user, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := UserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int32(42), userID)
}

func TestUserIDFromToken_Invalid(t *testing.T) {
	user := &store.User{ID: 7, Role: store.UserRoleOwner}
	token, err := GenerateAccessToken(user, "right-secret")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := UserIDFromToken(token, "wrong-secret")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := UserIDFromToken("not.a.token", "right-secret")
		assert.Error(t, err)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := UserIDFromToken("", "right-secret")
		assert.Error(t, err)
	})
}
