package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholarpath/scholarpath/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	user := &domain.User{
		ID:    "42",
		Email: "jo@example.com",
		Role:  domain.RoleAdmin,
		// Not part of the serialized subject.
		PasswordHash: []byte("hash"),
	}

	token, err := GenerateToken(user, secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := UserFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, user.Role, got.Role)
	assert.Empty(t, got.PasswordHash, "token must not carry the password hash")
}

func TestTokenWrongSecret(t *testing.T) {
	user := &domain.User{ID: "42", Email: "jo@example.com", Role: domain.RoleStudent}

	token, err := GenerateToken(user, []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = UserFromToken(token, []byte("wrong"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenExpired(t *testing.T) {
	user := &domain.User{ID: "42", Email: "jo@example.com", Role: domain.RoleStudent}

	token, err := GenerateToken(user, []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = UserFromToken(token, []byte("secret"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenGarbage(t *testing.T) {
	_, err := UserFromToken("not.a.token", []byte("secret"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestTokenUnknownRole(t *testing.T) {
	user := &domain.User{ID: "42", Email: "jo@example.com", Role: domain.Role("superuser")}

	token, err := GenerateToken(user, []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = UserFromToken(token, []byte("secret"))
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
