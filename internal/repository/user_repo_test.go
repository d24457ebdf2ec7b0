package repository

import (
	"errors"
	"testing"

	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&domain.User{Email: "dup@x.com", Name: "First"}))

	err := repo.Create(&domain.User{Email: "dup@x.com", Name: "Second"})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "expected duplicated key, got %v", err)

	// The original row is untouched
	user, err := repo.FindByEmail("dup@x.com")
	assert.NoError(t, err)
	assert.Equal(t, "First", user.Name)
}

func TestFindByEmailMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.FindByEmail("ghost@x.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateProfileSkipsEmptyFields(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user := &domain.User{Email: "p@x.com", Name: "Old Name", PhotoURL: "old.png"}
	require.NoError(t, repo.Create(user))

	require.NoError(t, repo.UpdateProfile(user.ID, "New Name", ""))

	reloaded, err := repo.FindByEmail("p@x.com")
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.Name)
	assert.Equal(t, "old.png", reloaded.PhotoURL)
}

func TestDeleteByEmailReportsRows(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	require.NoError(t, repo.Create(&domain.User{Email: "gone@x.com"}))

	rows, err := repo.DeleteByEmail("gone@x.com")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.DeleteByEmail("gone@x.com")
	assert.NoError(t, err)
	assert.Zero(t, rows)
}
