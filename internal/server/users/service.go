package users

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/ymori23/ranking-server/internal/common"
)

// Service verifies operator credentials against stored bcrypt hashes.
// Passwords are never logged and never leave this package.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Verify returns nil when the username exists and the password matches its
// stored hash. Unknown users and mismatched passwords are indistinguishable
// to the caller: both yield common.ErrorUnauthorized.
func (s *Service) Verify(ctx context.Context, username, password string) error {

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return common.ErrorUnauthorized
	}

	return nil
}

// HashPassword produces a bcrypt hash for provisioning.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
