package handler

import (
	"errors"
	"net/http"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/middleware"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/internal/service"
	"github.com/instantr/instantr-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ModerationHandler handles the submission queue, decision endpoints, and
// both history logs.
type ModerationHandler struct {
	moderation    *service.ModerationService
	historyRepo   repository.ApprovalHistoryRepository
	adminHistRepo repository.AdminApprovalHistoryRepository
	blogRepo      repository.BlogRepository
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(
	moderation *service.ModerationService,
	historyRepo repository.ApprovalHistoryRepository,
	adminHistRepo repository.AdminApprovalHistoryRepository,
	blogRepo repository.BlogRepository,
) *ModerationHandler {
	return &ModerationHandler{
		moderation:    moderation,
		historyRepo:   historyRepo,
		adminHistRepo: adminHistRepo,
		blogRepo:      blogRepo,
	}
}

// Submit handles POST /add-blogs-others — a non-admin submission into the
// pending queue.
func (h *ModerationHandler) Submit(c *gin.Context) {
	var content domain.ContentFields
	if err := c.ShouldBindJSON(&content); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	submission, err := h.moderation.Submit(content)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to add blog", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": submission.ID})
}

// Queue handles GET /approval-req?email&page&limit — pending submissions not
// authored by the requesting reviewer.
func (h *ModerationHandler) Queue(c *gin.Context) {
	email := c.Query("email")
	page, limit := ginutil.Page(c, 5)

	result, err := h.moderation.Queue(email, page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": result.Submissions, "totalPages": result.TotalPages})
}

// QueueLength handles GET /approval-req-length — the whole pending queue,
// which the client counts.
func (h *ModerationHandler) QueueLength(c *gin.Context) {
	submissions, err := h.moderation.Pending()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

type approveRequest struct {
	domain.ContentFields
	ApproverMail string `json:"approverMail"`
}

// ApproveSubmission handles POST /approve-submission/:id — publishes the
// pending entry and records the decision in both history logs, atomically.
func (h *ModerationHandler) ApproveSubmission(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusNotFound, "Submission not found")
		return
	}

	var req approveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	blog, err := h.moderation.Approve(id, req.ApproverMail, req.ContentFields)
	if err != nil {
		if errors.Is(err, common.ErrSubmissionNotFound) {
			common.Message(c, http.StatusNotFound, "Submission not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to approve submission", err)
		return
	}
	middleware.CountModerationDecision(domain.StatusApproved)
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": blog.ID})
}

type rejectRequest struct {
	ApproverMail string `json:"approverMail"`
	Feedback     string `json:"feedback"`
}

// RejectSubmission handles POST /reject-submission/:id — records the
// rejection with feedback in both history logs and clears the pending entry.
func (h *ModerationHandler) RejectSubmission(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusNotFound, "Submission not found")
		return
	}

	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.moderation.Reject(id, req.ApproverMail, req.Feedback); err != nil {
		if errors.Is(err, common.ErrSubmissionNotFound) {
			common.Message(c, http.StatusNotFound, "Submission not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to reject submission", err)
		return
	}
	middleware.CountModerationDecision(domain.StatusRejected)
	common.Message(c, http.StatusOK, "Rejected Successfully")
}

// ApproveBlogPost handles POST /approve-blog-post — the admin panel's direct
// copy of a decided payload into the published set.
func (h *ModerationHandler) ApproveBlogPost(c *gin.Context) {
	var content domain.ContentFields
	if err := c.ShouldBindJSON(&content); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	blog := &domain.Blog{ContentFields: content}
	if err := h.blogRepo.Create(blog); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to approve blog post", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": blog.ID})
}

// DeleteAfterApproval handles DELETE /delete-after-approval/:id — clears a
// pending entry once the client has copied it elsewhere.
func (h *ModerationHandler) DeleteAfterApproval(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid submission id")
		return
	}

	rows, err := h.moderation.ClearPending(id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete submission", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": rows > 0, "deletedCount": rows})
}

// AddUserHistory handles POST /add-blogs-others-to-approval-history — the
// submitter-facing history record written at submission time.
func (h *ModerationHandler) AddUserHistory(c *gin.Context) {
	var record domain.ApprovalHistory
	if err := c.ShouldBindJSON(&record); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.historyRepo.Create(&record); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to add history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": record.ID})
}

// AddAdminHistory handles POST /add-blogs-to-admin-history — the
// reviewer-facing history record keyed by the deciding admin's email.
func (h *ModerationHandler) AddAdminHistory(c *gin.Context) {
	var record domain.AdminApprovalHistory
	if err := c.ShouldBindJSON(&record); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.adminHistRepo.Create(&record); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to add history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": record.ID})
}

// UserHistory handles GET /approval-history?email= — the submitter's
// decision log.
func (h *ModerationHandler) UserHistory(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		common.Message(c, http.StatusNotFound, "Not Found")
		return
	}

	records, err := h.moderation.UserHistory(email)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// AdminHistory handles GET /admin-approval-history?email= — the reviewer's
// decision log.
func (h *ModerationHandler) AdminHistory(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		common.Message(c, http.StatusNotFound, "Not Found")
		return
	}

	records, err := h.moderation.AdminHistory(email)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type historyPatchRequest struct {
	Status   string `json:"status"`
	Feedback string `json:"feedback"`
}

func (h *ModerationHandler) patchUserHistory(c *gin.Context, okMessage string) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid history id")
		return
	}

	var req historyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := repository.DecisionPatch{Status: req.Status, Feedback: req.Feedback}
	if err := h.historyRepo.PatchDecision(id, patch); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update history", err)
		return
	}
	common.Message(c, http.StatusOK, okMessage)
}

func (h *ModerationHandler) patchAdminHistory(c *gin.Context, okMessage string) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid history id")
		return
	}

	var req historyPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := repository.DecisionPatch{Status: req.Status, Feedback: req.Feedback}
	if err := h.adminHistRepo.PatchDecision(id, patch); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update history", err)
		return
	}
	common.Message(c, http.StatusOK, okMessage)
}

// PatchUserHistory handles PATCH /approval-history/:id
func (h *ModerationHandler) PatchUserHistory(c *gin.Context) {
	h.patchUserHistory(c, "Approved Successfully")
}

// PatchAdminHistory handles PATCH /admin-approval-history/:id
func (h *ModerationHandler) PatchAdminHistory(c *gin.Context) {
	h.patchAdminHistory(c, "Approved Successfully")
}

// RejectWithFeedback handles PATCH /approval-history-reject/:id
func (h *ModerationHandler) RejectWithFeedback(c *gin.Context) {
	h.patchUserHistory(c, "Rejected Successfully")
}

// AdminRejectHistory handles PATCH /admin-approval-history-reject/:id
func (h *ModerationHandler) AdminRejectHistory(c *gin.Context) {
	h.patchAdminHistory(c, "Rejected Successfully")
}

// DeleteUserHistoryCard handles DELETE /approval-history/:id
func (h *ModerationHandler) DeleteUserHistoryCard(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid history id")
		return
	}

	rows, err := h.historyRepo.DeleteByID(id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": rows > 0, "deletedCount": rows})
}

// DeleteAdminHistoryCard handles DELETE /admin-approval-history/:id
func (h *ModerationHandler) DeleteAdminHistoryCard(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid history id")
		return
	}

	rows, err := h.adminHistRepo.DeleteByID(id)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": rows > 0, "deletedCount": rows})
}
