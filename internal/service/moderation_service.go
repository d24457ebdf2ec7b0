package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/repository"
	"gorm.io/gorm"
)

// ModerationService orchestrates the lifecycle of a submitted content item:
// intake into the pending queue, the reviewer queue listing, and the
// approve/reject transitions that fan out across the content store and both
// history logs.
type ModerationService struct {
	db             *gorm.DB
	submissionRepo repository.SubmissionRepository
	blogRepo       repository.BlogRepository
	historyRepo    repository.ApprovalHistoryRepository
	adminHistRepo  repository.AdminApprovalHistoryRepository
}

// NewModerationService creates a new ModerationService
func NewModerationService(
	db *gorm.DB,
	submissionRepo repository.SubmissionRepository,
	blogRepo repository.BlogRepository,
	historyRepo repository.ApprovalHistoryRepository,
	adminHistRepo repository.AdminApprovalHistoryRepository,
) *ModerationService {
	return &ModerationService{
		db:             db,
		submissionRepo: submissionRepo,
		blogRepo:       blogRepo,
		historyRepo:    historyRepo,
		adminHistRepo:  adminHistRepo,
	}
}

// Submit stores a content payload in the pending queue. The payload shape is
// not validated; any well-formed document is accepted, stamped with the
// submission time.
func (s *ModerationService) Submit(content domain.ContentFields) (*domain.Submission, error) {
	submission := &domain.Submission{ContentFields: content}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}
	return submission, nil
}

// QueuePage is one page of the reviewer queue
type QueuePage struct {
	Submissions []*domain.Submission
	Total       int64
	TotalPages  int64
}

// Queue lists pending submissions not authored by the requester, newest
// first. Pages are 1-based; an out-of-range page yields an empty slice with
// accurate totals.
func (s *ModerationService) Queue(requesterEmail string, page, limit int) (*QueuePage, error) {
	submissions, total, err := s.submissionRepo.FindExcludingEmailPage(requesterEmail, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviewer queue: %w", err)
	}
	return &QueuePage{
		Submissions: submissions,
		Total:       total,
		TotalPages:  common.TotalPages(total, limit),
	}, nil
}

// Approve promotes a decided submission into a published blog and records
// the decision in both history logs, all in one transaction. The pending row
// is compare-and-deleted: if another reviewer got there first, the whole
// transaction rolls back with ErrSubmissionNotFound and nothing is
// published twice.
func (s *ModerationService) Approve(submissionID uint64, approverMail string, decided domain.ContentFields) (*domain.Blog, error) {
	var blog *domain.Blog

	err := s.db.Transaction(func(tx *gorm.DB) error {
		rows, err := s.submissionRepo.WithTx(tx).DeleteByID(submissionID)
		if err != nil {
			return fmt.Errorf("clear pending entry: %w", err)
		}
		if rows == 0 {
			return common.ErrSubmissionNotFound
		}

		now := time.Now()
		blog = &domain.Blog{ContentFields: decided}
		if err := s.blogRepo.WithTx(tx).Create(blog); err != nil {
			return fmt.Errorf("publish content: %w", err)
		}

		userRecord := &domain.ApprovalHistory{
			ContentFields: decided,
			Status:        domain.StatusApproved,
			ApprovedAt:    &now,
		}
		if err := s.historyRepo.WithTx(tx).Create(userRecord); err != nil {
			return fmt.Errorf("record user history: %w", err)
		}

		adminRecord := &domain.AdminApprovalHistory{
			ContentFields: decided,
			ApproverMail:  approverMail,
			Status:        domain.StatusApproved,
			ApprovedAt:    &now,
		}
		if err := s.adminHistRepo.WithTx(tx).Create(adminRecord); err != nil {
			return fmt.Errorf("record admin history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blog, nil
}

// Reject records a rejection with reviewer feedback in both history logs and
// clears the pending entry, in one transaction with the same
// compare-and-delete guard as Approve. Nothing is published.
func (s *ModerationService) Reject(submissionID uint64, approverMail, feedback string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		submission, err := s.submissionRepo.WithTx(tx).FindByID(submissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.ErrSubmissionNotFound
			}
			return fmt.Errorf("load submission: %w", err)
		}

		rows, err := s.submissionRepo.WithTx(tx).DeleteByID(submissionID)
		if err != nil {
			return fmt.Errorf("clear pending entry: %w", err)
		}
		if rows == 0 {
			return common.ErrSubmissionNotFound
		}

		now := time.Now()
		userRecord := &domain.ApprovalHistory{
			ContentFields: submission.ContentFields,
			Status:        domain.StatusRejected,
			Feedback:      feedback,
			ApprovedAt:    &now,
		}
		if err := s.historyRepo.WithTx(tx).Create(userRecord); err != nil {
			return fmt.Errorf("record user history: %w", err)
		}

		adminRecord := &domain.AdminApprovalHistory{
			ContentFields: submission.ContentFields,
			ApproverMail:  approverMail,
			Status:        domain.StatusRejected,
			Feedback:      feedback,
			ApprovedAt:    &now,
		}
		if err := s.adminHistRepo.WithTx(tx).Create(adminRecord); err != nil {
			return fmt.Errorf("record admin history: %w", err)
		}
		return nil
	})
}

// Pending returns the whole pending queue, newest first
func (s *ModerationService) Pending() ([]*domain.Submission, error) {
	return s.submissionRepo.FindAll()
}

// ClearPending removes a pending entry without recording a decision and
// reports how many rows matched.
func (s *ModerationService) ClearPending(id uint64) (int64, error) {
	return s.submissionRepo.DeleteByID(id)
}

// UserHistory returns the submitter-facing decision log, newest first
func (s *ModerationService) UserHistory(email string) ([]*domain.ApprovalHistory, error) {
	return s.historyRepo.FindByUserEmail(email)
}

// AdminHistory returns the reviewer-facing decision log, newest first
func (s *ModerationService) AdminHistory(approverMail string) ([]*domain.AdminApprovalHistory, error) {
	return s.adminHistRepo.FindByApproverMail(approverMail)
}
