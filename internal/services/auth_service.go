package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"gamestore/internal/domain"
	"gamestore/internal/repos"
)

var ErrBadCreds = errors.New("invalid username or password")

type AuthService struct {
	Users *repos.UserRepo
}

func NewAuthService(users *repos.UserRepo) *AuthService { return &AuthService{Users: users} }

// Authenticate reports whether the credentials match a stored user.
// Only storage failures are returned as errors.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (bool, error) {
	u, err := s.Users.ByUsername(ctx, username)
	if errors.Is(err, repos.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) == nil, nil
}

func (s *AuthService) SignIn(ctx context.Context, sid, username string) error {
	u, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return ErrBadCreds
		}
		return err
	}
	return s.Users.BindSession(ctx, sid, u.ID)
}

func (s *AuthService) SignOut(ctx context.Context, sid string) error {
	return s.Users.UnbindSession(ctx, sid)
}

func (s *AuthService) CurrentUser(ctx context.Context, sid string) (*domain.User, error) {
	return s.Users.SessionUser(ctx, sid)
}
