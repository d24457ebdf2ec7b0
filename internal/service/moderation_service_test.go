package service

import (
	"errors"
	"testing"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Blog{},
		&domain.User{},
		&domain.Submission{},
		&domain.ApprovalHistory{},
		&domain.AdminApprovalHistory{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newModerationService(db *gorm.DB) *ModerationService {
	return NewModerationService(
		db,
		repository.NewSubmissionRepository(db),
		repository.NewBlogRepository(db),
		repository.NewApprovalHistoryRepository(db),
		repository.NewAdminApprovalHistoryRepository(db),
	)
}

func TestSubmitAndQueue(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	_, err := svc.Submit(domain.ContentFields{BlogTitle: "mine", UserEmail: "me@x.com"})
	require.NoError(t, err)
	_, err = svc.Submit(domain.ContentFields{BlogTitle: "theirs-1", UserEmail: "a@x.com"})
	require.NoError(t, err)
	_, err = svc.Submit(domain.ContentFields{BlogTitle: "theirs-2", UserEmail: "b@x.com"})
	require.NoError(t, err)

	page, err := svc.Queue("me@x.com", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Equal(t, int64(1), page.TotalPages)
	assert.Len(t, page.Submissions, 2)
	for _, s := range page.Submissions {
		assert.NotEqual(t, "me@x.com", s.UserEmail)
	}

	pending, err := svc.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestApprovePublishesAndLogs(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	submission, err := svc.Submit(domain.ContentFields{
		BlogTitle:    "pending post",
		BlogCategory: "Health",
		UserEmail:    "author@x.com",
	})
	require.NoError(t, err)

	blog, err := svc.Approve(submission.ID, "admin@x.com", submission.ContentFields)
	require.NoError(t, err)
	assert.Equal(t, "pending post", blog.BlogTitle)

	// Published exactly once
	var blogCount int64
	db.Model(&domain.Blog{}).Count(&blogCount)
	assert.Equal(t, int64(1), blogCount)

	// Pending entry cleared
	var pendingCount int64
	db.Model(&domain.Submission{}).Count(&pendingCount)
	assert.Zero(t, pendingCount)

	// Submitter log records the approval with a decision time
	history, err := svc.UserHistory("author@x.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusApproved, history[0].Status)
	assert.NotNil(t, history[0].ApprovedAt)

	// Reviewer log is keyed by the deciding admin
	adminHistory, err := svc.AdminHistory("admin@x.com")
	require.NoError(t, err)
	require.Len(t, adminHistory, 1)
	assert.Equal(t, domain.StatusApproved, adminHistory[0].Status)
	assert.Equal(t, "admin@x.com", adminHistory[0].ApproverMail)
}

func TestApproveTwiceIsConflict(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	submission, err := svc.Submit(domain.ContentFields{BlogTitle: "once", UserEmail: "author@x.com"})
	require.NoError(t, err)

	_, err = svc.Approve(submission.ID, "admin1@x.com", submission.ContentFields)
	require.NoError(t, err)

	// The pending row is gone, so a second decision loses the race and the
	// whole second transaction rolls back.
	_, err = svc.Approve(submission.ID, "admin2@x.com", submission.ContentFields)
	assert.True(t, errors.Is(err, common.ErrSubmissionNotFound))

	var blogCount int64
	db.Model(&domain.Blog{}).Count(&blogCount)
	assert.Equal(t, int64(1), blogCount)

	var adminCount int64
	db.Model(&domain.AdminApprovalHistory{}).Count(&adminCount)
	assert.Equal(t, int64(1), adminCount)
}

func TestApproveMissingSubmission(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	_, err := svc.Approve(42, "admin@x.com", domain.ContentFields{})
	assert.True(t, errors.Is(err, common.ErrSubmissionNotFound))

	var blogCount int64
	db.Model(&domain.Blog{}).Count(&blogCount)
	assert.Zero(t, blogCount)
}

func TestRejectLogsFeedbackWithoutPublishing(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	submission, err := svc.Submit(domain.ContentFields{BlogTitle: "declined", UserEmail: "author@x.com"})
	require.NoError(t, err)

	err = svc.Reject(submission.ID, "admin@x.com", "needs sources")
	require.NoError(t, err)

	var blogCount int64
	db.Model(&domain.Blog{}).Count(&blogCount)
	assert.Zero(t, blogCount)

	var pendingCount int64
	db.Model(&domain.Submission{}).Count(&pendingCount)
	assert.Zero(t, pendingCount)

	history, err := svc.UserHistory("author@x.com")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusRejected, history[0].Status)
	assert.Equal(t, "needs sources", history[0].Feedback)

	adminHistory, err := svc.AdminHistory("admin@x.com")
	require.NoError(t, err)
	require.Len(t, adminHistory, 1)
	assert.Equal(t, domain.StatusRejected, adminHistory[0].Status)
}

func TestRejectMissingSubmission(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	err := svc.Reject(42, "admin@x.com", "whatever")
	assert.True(t, errors.Is(err, common.ErrSubmissionNotFound))
}

func TestClearPending(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := newModerationService(db)

	submission, err := svc.Submit(domain.ContentFields{BlogTitle: "x", UserEmail: "a@x.com"})
	require.NoError(t, err)

	rows, err := svc.ClearPending(submission.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = svc.ClearPending(submission.ID)
	assert.NoError(t, err)
	assert.Zero(t, rows)
}
