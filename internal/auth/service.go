package auth

import (
	"context"
	"errors"
	"time"

	"libraryapi/internal/platform/crypto"
	"libraryapi/internal/user"
)

// ErrUnauthorized is the single error for any credential failure. A missing
// user and a wrong password are indistinguishable to the caller.
var ErrUnauthorized = errors.New("unauthorized")

//go:generate mockgen -source=service.go -destination=mock_user_getter.go -package=auth

// UserGetter resolves a user by username for the credential check.
type UserGetter interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type Service struct {
	secret   string
	tokenTTL time.Duration
	users    UserGetter
}

func NewService(secret string, tokenTTL time.Duration, users UserGetter) *Service {
	return &Service{secret: secret, tokenTTL: tokenTTL, users: users}
}

// Login verifies the credentials and issues a token keyed by username.
func (s *Service) Login(ctx context.Context, username, password string) (string, int, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || !crypto.VerifyPassword(u.Password, password) {
		return "", 0, ErrUnauthorized
	}

	token, err := crypto.GenerateToken(s.secret, u.Username, s.tokenTTL)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.tokenTTL.Seconds()), nil
}
