package repository

import (
	"github.com/instantr/instantr-backend/internal/domain"
	"gorm.io/gorm"
)

// SubmissionRepository is the data access layer for the pending-approval queue
type SubmissionRepository interface {
	WithTx(tx *gorm.DB) SubmissionRepository
	Create(submission *domain.Submission) error
	FindByID(id uint64) (*domain.Submission, error)
	FindAll() ([]*domain.Submission, error)
	FindExcludingEmailPage(email string, page, limit int) ([]*domain.Submission, int64, error)
	DeleteByID(id uint64) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) WithTx(tx *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: tx}
}

func (r *submissionRepository) Create(submission *domain.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) FindByID(id uint64) (*domain.Submission, error) {
	var submission domain.Submission
	err := r.db.First(&submission, id).Error
	return &submission, err
}

func (r *submissionRepository) FindAll() ([]*domain.Submission, error) {
	var submissions []*domain.Submission
	err := r.db.Order("created_at DESC").Find(&submissions).Error
	return submissions, err
}

// FindExcludingEmailPage lists the reviewer queue: everything not authored
// by the requester, newest first, with a 1-based page.
func (r *submissionRepository) FindExcludingEmailPage(email string, page, limit int) ([]*domain.Submission, int64, error) {
	var submissions []*domain.Submission
	var total int64

	query := r.db.Model(&domain.Submission{}).Where("user_email != ?", email)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&submissions).Error
	return submissions, total, err
}

// DeleteByID removes the pending row and reports how many rows matched.
// A zero count means another reviewer already decided this submission.
func (r *submissionRepository) DeleteByID(id uint64) (int64, error) {
	result := r.db.Delete(&domain.Submission{}, id)
	return result.RowsAffected, result.Error
}
