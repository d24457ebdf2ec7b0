package repository

import (
	"github.com/instantr/instantr-backend/internal/domain"
	"gorm.io/gorm"
)

// VideoRepository is the data access layer for published videos
type VideoRepository interface {
	FindPage(page, size int) ([]*domain.Video, int64, error)
	FindLatest(limit int) ([]*domain.Video, error)
	FindByEmailPage(email string, page, limit int) ([]*domain.Video, int64, error)
	FindExcludingEmailPage(email string, page, limit int) ([]*domain.Video, int64, error)
	Create(video *domain.Video) error
	UpdateFields(id uint64, fields *domain.Video) error
	Delete(id uint64) error
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new VideoRepository
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) FindPage(page, size int) ([]*domain.Video, int64, error) {
	var videos []*domain.Video
	var total int64

	if err := r.db.Model(&domain.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	// Legacy video grid uses 0-based pages
	err := r.db.Order("created_at DESC").Offset(page * size).Limit(size).Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) FindLatest(limit int) ([]*domain.Video, error) {
	var videos []*domain.Video
	err := r.db.Order("created_at DESC").Limit(limit).Find(&videos).Error
	return videos, err
}

func (r *videoRepository) FindByEmailPage(email string, page, limit int) ([]*domain.Video, int64, error) {
	var videos []*domain.Video
	var total int64

	query := r.db.Model(&domain.Video{}).Where("user_email = ?", email)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) FindExcludingEmailPage(email string, page, limit int) ([]*domain.Video, int64, error) {
	var videos []*domain.Video
	var total int64

	query := r.db.Model(&domain.Video{}).Where("user_email != ?", email)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&videos).Error
	return videos, total, err
}

func (r *videoRepository) Create(video *domain.Video) error {
	return r.db.Create(video).Error
}

func (r *videoRepository) UpdateFields(id uint64, fields *domain.Video) error {
	return r.db.Model(&domain.Video{ID: id}).Updates(fields).Error
}

func (r *videoRepository) Delete(id uint64) error {
	return r.db.Delete(&domain.Video{}, id).Error
}
