package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"travelblog-backend/internal/config"
	"travelblog-backend/pkg/jwt"
)

func TestLogin_PlainPasswordFallback(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	svc := NewAuthService(config.AdminConfig{Password: "islande2026"}, manager)

	token, err := svc.Login("islande2026")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_BcryptHashPreferred(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("islande2026"), bcrypt.MinCost)
	require.NoError(t, err)

	manager := jwt.NewManager("test-secret", 1)
	svc := NewAuthService(config.AdminConfig{
		PasswordHash: string(hash),
		// The plain variable is ignored once a hash is configured.
		Password: "something-else",
	}, manager)

	_, err = svc.Login("islande2026")
	assert.NoError(t, err)

	_, err = svc.Login("something-else")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogin_WrongPassword(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	svc := NewAuthService(config.AdminConfig{Password: "islande2026"}, manager)

	_, err := svc.Login("norvege2025")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestLogin_NoPasswordConfigured(t *testing.T) {
	manager := jwt.NewManager("test-secret", 1)
	svc := NewAuthService(config.AdminConfig{}, manager)

	_, err := svc.Login("anything")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}
