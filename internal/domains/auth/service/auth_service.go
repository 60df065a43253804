package service

import (
	"crypto/subtle"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"travelblog-backend/internal/config"
	"travelblog-backend/pkg/jwt"
)

const ErrCodeInvalidPassword = "AUTH010"

var ErrInvalidPassword = errors.New("invalid password")

// AuthService handles the admin login: one shared password for the
// whole authoring surface, exchanged for a session token.
type AuthService interface {
	Login(password string) (string, error)
}

type authService struct {
	cfg config.AdminConfig
	jwt *jwt.Manager
}

func NewAuthService(cfg config.AdminConfig, jwtManager *jwt.Manager) AuthService {
	return &authService{cfg: cfg, jwt: jwtManager}
}

// Login checks the shared admin password and issues a session token.
// The bcrypt hash is preferred; the plain-text variable is a local
// development fallback.
func (s *authService) Login(password string) (string, error) {
	if !s.passwordMatches(password) {
		log.Warn().Msg("Failed admin login attempt")
		return "", ErrInvalidPassword
	}

	token, err := s.jwt.GenerateSessionToken("admin")
	if err != nil {
		return "", err
	}

	log.Info().Msg("Admin logged in")
	return token, nil
}

func (s *authService) passwordMatches(password string) bool {
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	if s.cfg.Password != "" {
		return subtle.ConstantTimeCompare([]byte(s.cfg.Password), []byte(password)) == 1
	}
	return false
}
