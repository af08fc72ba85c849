package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brookxc/menuadmin/pkg/auth"
)

func newTestAuthService(t *testing.T, creds map[string]string) *AuthService {
	t.Helper()

	hashes := make(map[string]string, len(creds))
	for user, pass := range creds {
		h, err := auth.HashPassword(pass)
		require.NoError(t, err)
		hashes[user] = h
	}
	dummy, err := auth.HashPassword("unused")
	require.NoError(t, err)

	return &AuthService{hashes: hashes, dummyHash: dummy}
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := newTestAuthService(t, map[string]string{"admin": "s3cret"})

	token, err := svc.Login("admin", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, operatorID, claims.UserID)
	assert.Equal(t, "admin", claims.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t, map[string]string{"admin": "s3cret"})

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSecondOperatorPair(t *testing.T) {
	svc := newTestAuthService(t, map[string]string{
		"admin":  "first",
		"editor": "second",
	})

	_, err := svc.Login("editor", "second")
	assert.NoError(t, err)

	_, err = svc.Login("editor", "first")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
