package auth

import (
	"context"

	"github.com/bookloft/bookloft/pkg/errcodes"
	"github.com/bookloft/bookloft/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing.
const BcryptCost = 12

// Service handles credential verification.
type Service struct {
	db *bun.DB
}

// NewService creates a new auth service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// Authenticate validates credentials and returns the user if valid. No session
// or token is issued; the caller decides what to do with the identity.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{}
	err := s.db.NewSelect().
		Model(user).
		Where("username = ? COLLATE NOCASE", username).
		Scan(ctx)
	if err != nil {
		return nil, errcodes.InvalidCredentials()
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, errcodes.InvalidCredentials()
	}

	return user, nil
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hashedPassword), nil
}

// CheckPassword compares a password with a hash.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
