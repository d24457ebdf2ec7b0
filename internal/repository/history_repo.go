package repository

import (
	"time"

	"github.com/instantr/instantr-backend/internal/domain"
	"gorm.io/gorm"
)

// DecisionPatch carries the fields a moderation decision writes into an
// existing history row.
type DecisionPatch struct {
	Status   string
	Feedback string
}

// ApprovalHistoryRepository is the data access layer for the
// submitter-facing decision log.
type ApprovalHistoryRepository interface {
	WithTx(tx *gorm.DB) ApprovalHistoryRepository
	Create(record *domain.ApprovalHistory) error
	FindByUserEmail(email string) ([]*domain.ApprovalHistory, error)
	PatchDecision(id uint64, patch DecisionPatch) error
	DeleteByID(id uint64) (int64, error)
}

type approvalHistoryRepository struct {
	db *gorm.DB
}

// NewApprovalHistoryRepository creates a new ApprovalHistoryRepository
func NewApprovalHistoryRepository(db *gorm.DB) ApprovalHistoryRepository {
	return &approvalHistoryRepository{db: db}
}

func (r *approvalHistoryRepository) WithTx(tx *gorm.DB) ApprovalHistoryRepository {
	return &approvalHistoryRepository{db: tx}
}

func (r *approvalHistoryRepository) Create(record *domain.ApprovalHistory) error {
	return r.db.Create(record).Error
}

func (r *approvalHistoryRepository) FindByUserEmail(email string) ([]*domain.ApprovalHistory, error) {
	var records []*domain.ApprovalHistory
	err := r.db.Where("user_email = ?", email).
		Order("created_at DESC").Find(&records).Error
	return records, err
}

// PatchDecision stamps an existing row with the decision outcome.
// Patching a missing row is a no-op, matching the legacy upsert=false
// behaviour.
func (r *approvalHistoryRepository) PatchDecision(id uint64, patch DecisionPatch) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      patch.Status,
		"approved_at": &now,
	}
	if patch.Feedback != "" {
		updates["feedback"] = patch.Feedback
	}
	return r.db.Model(&domain.ApprovalHistory{}).Where("id = ?", id).Updates(updates).Error
}

func (r *approvalHistoryRepository) DeleteByID(id uint64) (int64, error) {
	result := r.db.Delete(&domain.ApprovalHistory{}, id)
	return result.RowsAffected, result.Error
}

// AdminApprovalHistoryRepository is the data access layer for the
// reviewer-facing decision log.
type AdminApprovalHistoryRepository interface {
	WithTx(tx *gorm.DB) AdminApprovalHistoryRepository
	Create(record *domain.AdminApprovalHistory) error
	FindByApproverMail(email string) ([]*domain.AdminApprovalHistory, error)
	PatchDecision(id uint64, patch DecisionPatch) error
	DeleteByID(id uint64) (int64, error)
}

type adminApprovalHistoryRepository struct {
	db *gorm.DB
}

// NewAdminApprovalHistoryRepository creates a new AdminApprovalHistoryRepository
func NewAdminApprovalHistoryRepository(db *gorm.DB) AdminApprovalHistoryRepository {
	return &adminApprovalHistoryRepository{db: db}
}

func (r *adminApprovalHistoryRepository) WithTx(tx *gorm.DB) AdminApprovalHistoryRepository {
	return &adminApprovalHistoryRepository{db: tx}
}

func (r *adminApprovalHistoryRepository) Create(record *domain.AdminApprovalHistory) error {
	return r.db.Create(record).Error
}

func (r *adminApprovalHistoryRepository) FindByApproverMail(email string) ([]*domain.AdminApprovalHistory, error) {
	var records []*domain.AdminApprovalHistory
	err := r.db.Where("approver_mail = ?", email).
		Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *adminApprovalHistoryRepository) PatchDecision(id uint64, patch DecisionPatch) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":      patch.Status,
		"approved_at": &now,
	}
	if patch.Feedback != "" {
		updates["feedback"] = patch.Feedback
	}
	return r.db.Model(&domain.AdminApprovalHistory{}).Where("id = ?", id).Updates(updates).Error
}

func (r *adminApprovalHistoryRepository) DeleteByID(id uint64) (int64, error) {
	result := r.db.Delete(&domain.AdminApprovalHistory{}, id)
	return result.RowsAffected, result.Error
}
