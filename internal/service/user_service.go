package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/pkg/identity"
	"github.com/instantr/instantr-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountDeleter removes a login credential from the external identity
// provider. Satisfied by identity.Client.
type AccountDeleter interface {
	DeleteAccount(ctx context.Context, email string) error
}

// UserService handles the user lifecycle: creation against the unique email
// constraint, role lookups, and the two-system delete (store row + identity
// provider credential).
type UserService struct {
	userRepo repository.UserRepository
	identity AccountDeleter
}

// NewUserService creates a new UserService. The identity client may be nil
// in development; the upstream credential delete is then skipped.
func NewUserService(userRepo repository.UserRepository, identity AccountDeleter) *UserService {
	return &UserService{userRepo: userRepo, identity: identity}
}

// Create inserts a new user. A duplicate email surfaces as
// common.ErrUserAlreadyExists; no existing row is overwritten. A supplied
// plain-text password is hashed before storage.
func (s *UserService) Create(user *domain.User, password string) error {
	if user.Role == "" {
		user.Role = domain.RoleViewer
	}
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return common.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Role returns the role for the given email
func (s *UserService) Role(email string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", fmt.Errorf("look up role: %w", err)
	}
	return user.Role, nil
}

// Delete removes the user row, then revokes the matching identity-provider
// credential. The store delete comes first: a missing row never reaches the
// provider. A provider miss after a successful row delete is tolerated (the
// credential is already gone).
func (s *UserService) Delete(ctx context.Context, email string) error {
	rows, err := s.userRepo.DeleteByEmail(email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return common.ErrUserNotFound
	}

	if s.identity == nil {
		logger.Warn("identity provider not configured, credential for %s not revoked", email)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.identity.DeleteAccount(ctx, email); err != nil {
		if errors.Is(err, identity.ErrAccountNotFound) {
			logger.Warn("identity provider had no credential for %s", email)
			return nil
		}
		return fmt.Errorf("revoke identity credential: %w", err)
	}
	return nil
}
