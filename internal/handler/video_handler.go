package handler

import (
	"net/http"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// VideoHandler handles published-video requests
type VideoHandler struct {
	videoRepo repository.VideoRepository
}

// NewVideoHandler creates a new VideoHandler
func NewVideoHandler(videoRepo repository.VideoRepository) *VideoHandler {
	return &VideoHandler{videoRepo: videoRepo}
}

// Videos handles GET /videos — the full video grid (0-based pages)
func (h *VideoHandler) Videos(c *gin.Context) {
	page := ginutil.QueryInt(c, "page", 0)
	size := ginutil.QueryInt(c, "size", 35)

	videos, total, err := h.videoRepo.FindPage(page, size)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "totalCount": total})
}

// VideoSection handles GET /video-section — the ten newest videos
func (h *VideoHandler) VideoSection(c *gin.Context) {
	videos, err := h.videoRepo.FindLatest(10)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// MyPostedVideos handles GET /my-posted-videos?email&page&limit
func (h *VideoHandler) MyPostedVideos(c *gin.Context) {
	email := c.Query("email")
	page, limit := ginutil.Page(c, 5)

	videos, total, err := h.videoRepo.FindByEmailPage(email, page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "totalPages": common.TotalPages(total, limit)})
}

// OthersPostedVideos handles GET /others-posted-videos?email&page&limit
func (h *VideoHandler) OthersPostedVideos(c *gin.Context) {
	email := c.Query("email")
	page, limit := ginutil.Page(c, 5)

	videos, total, err := h.videoRepo.FindExcludingEmailPage(email, page, limit)
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "totalPages": common.TotalPages(total, limit)})
}

// AddVideo handles POST /add-videos
func (h *VideoHandler) AddVideo(c *gin.Context) {
	var video domain.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.videoRepo.Create(&video); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to add video", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "insertedId": video.ID})
}

// UpdateVideo handles PUT /update-videos/:id — merges the supplied fields
// into the stored video.
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid video id")
		return
	}

	var video domain.Video
	if err := c.ShouldBindJSON(&video); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.videoRepo.UpdateFields(id, &video); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Error updating videos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

// DeleteVideo handles DELETE /delete-video/:id
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid video id")
		return
	}

	if err := h.videoRepo.Delete(id); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to delete video", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true, "deletedCount": 1})
}
