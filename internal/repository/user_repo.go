package repository

import (
	"github.com/instantr/instantr-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository is the data access layer for role-bearing users.
// The unique index on email makes a duplicate insert fail with
// gorm.ErrDuplicatedKey instead of silently overwriting.
type UserRepository interface {
	Create(user *domain.User) error
	FindAll() ([]*domain.User, error)
	FindByEmail(email string) (*domain.User, error)
	UpdateByEmail(email string, fields *domain.User) error
	UpdateProfile(id uint64, name, photoURL string) error
	DeleteByEmail(email string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *domain.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindAll() ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.Find(&users).Error
	return users, err
}

func (r *userRepository) FindByEmail(email string) (*domain.User, error) {
	var user domain.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) UpdateByEmail(email string, fields *domain.User) error {
	return r.db.Model(&domain.User{}).Where("email = ?", email).Updates(fields).Error
}

func (r *userRepository) UpdateProfile(id uint64, name, photoURL string) error {
	updates := map[string]interface{}{}
	if name != "" {
		updates["name"] = name
	}
	if photoURL != "" {
		updates["photo_url"] = photoURL
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteByEmail removes the user row and reports how many rows matched,
// so callers can distinguish a miss from a delete.
func (r *userRepository) DeleteByEmail(email string) (int64, error) {
	result := r.db.Where("email = ?", email).Delete(&domain.User{})
	return result.RowsAffected, result.Error
}
