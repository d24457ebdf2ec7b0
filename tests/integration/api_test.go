package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/handler"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/internal/routes"
	"github.com/instantr/instantr-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APISuite exercises the HTTP surface end to end against an in-memory
// database. Every test gets a fresh database so mutations cannot leak
// between tests.
type APISuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(db.AutoMigrate(
		&domain.Blog{},
		&domain.Video{},
		&domain.User{},
		&domain.Submission{},
		&domain.ApprovalHistory{},
		&domain.AdminApprovalHistory{},
	))

	blogRepo := repository.NewBlogRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	userRepo := repository.NewUserRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	historyRepo := repository.NewApprovalHistoryRepository(db)
	adminHistRepo := repository.NewAdminApprovalHistoryRepository(db)

	moderationSvc := service.NewModerationService(db, submissionRepo, blogRepo, historyRepo, adminHistRepo)
	userSvc := service.NewUserService(userRepo, nil)

	s.router = gin.New()
	routes.Setup(s.router,
		handler.NewBlogHandler(blogRepo),
		handler.NewVideoHandler(videoRepo),
		handler.NewUserHandler(userSvc, userRepo),
		handler.NewModerationHandler(moderationSvc, historyRepo, adminHistRepo, blogRepo),
	)
}

func (s *APISuite) seedBlogs(n int, category, email string) {
	for i := 0; i < n; i++ {
		s.Require().NoError(s.db.Create(&domain.Blog{
			ContentFields: domain.ContentFields{
				BlogTitle:    fmt.Sprintf("%s-post-%d", category, i),
				BlogCategory: category,
				UserEmail:    email,
			},
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		}).Error)
	}
}

func (s *APISuite) getJSON(path string) (int, map[string]interface{}) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func (s *APISuite) doJSON(method, path string, payload interface{}) (int, map[string]interface{}) {
	raw, err := json.Marshal(payload)
	s.Require().NoError(err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

// --- Health ---

func (s *APISuite) TestHealthz() {
	code, body := s.getJSON("/healthz")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "ok", body["status"])
}

// --- Blog feeds ---

func (s *APISuite) TestSectionBlogsPagination() {
	s.seedBlogs(7, "Health", "a@x.com")

	code, body := s.getJSON("/section/blogs?page=0&size=5")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), float64(7), body["totalCount"])
	assert.Len(s.T(), body["blogData"], 5)

	code, body = s.getJSON("/section/blogs?page=1&size=5")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Len(s.T(), body["blogData"], 2)

	// Out-of-range page: empty data, accurate total
	code, body = s.getJSON("/section/blogs?page=9&size=5")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Empty(s.T(), body["blogData"])
	assert.Equal(s.T(), float64(7), body["totalCount"])
}

func (s *APISuite) TestSectionByCategoryCaseInsensitive() {
	s.seedBlogs(3, "Health", "a@x.com")
	s.seedBlogs(2, "Food", "a@x.com")

	code, body := s.getJSON("/section/health")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), float64(3), body["totalCount"])

	code, body = s.getJSON("/section/HEALTH")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), float64(3), body["totalCount"])
}

func (s *APISuite) TestSearchRequiresQuery() {
	code, body := s.getJSON("/search")
	assert.Equal(s.T(), http.StatusBadRequest, code)
	assert.Equal(s.T(), "Query parameter is required", body["message"])
}

func (s *APISuite) TestSearchMatches() {
	s.seedBlogs(2, "Health", "a@x.com")
	s.seedBlogs(1, "Food", "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/search?query=food", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var results []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &results))
	assert.Len(s.T(), results, 1)
}

func (s *APISuite) TestBlogDetails() {
	s.seedBlogs(4, "Mind", "a@x.com")

	var first domain.Blog
	s.Require().NoError(s.db.First(&first).Error)

	code, body := s.getJSON(fmt.Sprintf("/blog-details/%d", first.ID))
	assert.Equal(s.T(), http.StatusOK, code)
	assert.NotNil(s.T(), body["selectedBlogForDetails"])

	// Related blogs never include the selected one
	related := body["relatedBlogs"].([]interface{})
	for _, r := range related {
		id := r.(map[string]interface{})["id"].(float64)
		assert.NotEqual(s.T(), float64(first.ID), id)
	}
}

func (s *APISuite) TestBlogDetailsNotFound() {
	code, body := s.getJSON("/blog-details/12345")
	assert.Equal(s.T(), http.StatusNotFound, code)
	assert.Equal(s.T(), "Blog details data not found", body["message"])
}

func (s *APISuite) TestViewCountIncrements() {
	s.seedBlogs(1, "Health", "a@x.com")
	var blog domain.Blog
	s.Require().NoError(s.db.First(&blog).Error)

	code, body := s.doJSON(http.MethodPatch, fmt.Sprintf("/%d", blog.ID), map[string]string{})
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "View count updated", body["message"])
	assert.Equal(s.T(), float64(1), body["blog_viewCount"])

	code, body = s.doJSON(http.MethodPatch, fmt.Sprintf("/%d", blog.ID), map[string]string{})
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), float64(2), body["blog_viewCount"])
}

// --- Users ---

func (s *APISuite) TestCreateUserAndDuplicate() {
	code, body := s.doJSON(http.MethodPost, "/users", map[string]string{"email": "u@x.com", "name": "U"})
	assert.Equal(s.T(), http.StatusCreated, code)
	assert.Equal(s.T(), true, body["acknowledged"])

	code, body = s.doJSON(http.MethodPost, "/users", map[string]string{"email": "u@x.com", "name": "Again"})
	assert.Equal(s.T(), http.StatusBadRequest, code)
	assert.Equal(s.T(), "User with this email already exists", body["message"])
}

func (s *APISuite) TestUserRolePlainText() {
	s.Require().NoError(s.db.Create(&domain.User{Email: "admin@x.com", Role: domain.RoleAdmin}).Error)

	req := httptest.NewRequest(http.MethodGet, "/user-role?email=admin@x.com", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.Equal(s.T(), "admin", w.Body.String())
}

func (s *APISuite) TestUserRoleNotFound() {
	code, body := s.getJSON("/user-role?email=missing@x.com")
	assert.Equal(s.T(), http.StatusNotFound, code)
	assert.Equal(s.T(), "User not found", body["message"])
}

func (s *APISuite) TestDeleteUserNotFound() {
	req := httptest.NewRequest(http.MethodDelete, "/delete-users?email=ghost@x.com", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(s.T(), false, body["success"])
}

// --- Moderation ---

func (s *APISuite) submitPending(title, email string) uint64 {
	code, body := s.doJSON(http.MethodPost, "/add-blogs-others", map[string]string{
		"blog_title":    title,
		"blog_category": "Health",
		"userEmail":     email,
	})
	s.Require().Equal(http.StatusOK, code)
	return uint64(body["insertedId"].(float64))
}

func (s *APISuite) TestQueueExcludesRequester() {
	s.submitPending("mine", "me@x.com")
	s.submitPending("other-1", "a@x.com")
	s.submitPending("other-2", "b@x.com")

	code, body := s.getJSON("/approval-req?email=me@x.com")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Len(s.T(), body["blogs"], 2)
	assert.Equal(s.T(), float64(1), body["totalPages"])
}

func (s *APISuite) TestApproveSubmissionPublishesOnce() {
	id := s.submitPending("pending post", "author@x.com")

	payload := map[string]string{
		"blog_title":    "pending post",
		"blog_category": "Health",
		"userEmail":     "author@x.com",
		"approverMail":  "admin@x.com",
	}

	code, body := s.doJSON(http.MethodPost, fmt.Sprintf("/approve-submission/%d", id), payload)
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), true, body["acknowledged"])

	var blogCount, pendingCount int64
	s.db.Model(&domain.Blog{}).Count(&blogCount)
	s.db.Model(&domain.Submission{}).Count(&pendingCount)
	assert.Equal(s.T(), int64(1), blogCount)
	assert.Zero(s.T(), pendingCount)

	// A second approval of the same submission is a conflict, and nothing
	// gets published twice.
	code, _ = s.doJSON(http.MethodPost, fmt.Sprintf("/approve-submission/%d", id), payload)
	assert.Equal(s.T(), http.StatusNotFound, code)
	s.db.Model(&domain.Blog{}).Count(&blogCount)
	assert.Equal(s.T(), int64(1), blogCount)

	// Both history logs carry the decision
	var userHist []domain.ApprovalHistory
	s.Require().NoError(s.db.Find(&userHist).Error)
	s.Require().Len(userHist, 1)
	assert.Equal(s.T(), domain.StatusApproved, userHist[0].Status)

	var adminHist []domain.AdminApprovalHistory
	s.Require().NoError(s.db.Find(&adminHist).Error)
	s.Require().Len(adminHist, 1)
	assert.Equal(s.T(), "admin@x.com", adminHist[0].ApproverMail)
}

func (s *APISuite) TestRejectSubmissionRecordsFeedback() {
	id := s.submitPending("declined", "author@x.com")

	code, body := s.doJSON(http.MethodPost, fmt.Sprintf("/reject-submission/%d", id), map[string]string{
		"approverMail": "admin@x.com",
		"feedback":     "needs sources",
	})
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "Rejected Successfully", body["message"])

	var blogCount int64
	s.db.Model(&domain.Blog{}).Count(&blogCount)
	assert.Zero(s.T(), blogCount)

	var userHist []domain.ApprovalHistory
	s.Require().NoError(s.db.Find(&userHist).Error)
	s.Require().Len(userHist, 1)
	assert.Equal(s.T(), domain.StatusRejected, userHist[0].Status)
	assert.Equal(s.T(), "needs sources", userHist[0].Feedback)
}

func (s *APISuite) TestApprovalHistoryRequiresEmail() {
	code, body := s.getJSON("/approval-history")
	assert.Equal(s.T(), http.StatusNotFound, code)
	assert.Equal(s.T(), "Not Found", body["message"])
}

// --- Videos ---

func (s *APISuite) TestVideoLifecycle() {
	code, body := s.doJSON(http.MethodPost, "/add-videos", map[string]string{
		"video_title": "clip",
		"video_url":   "https://v.example/1",
		"userEmail":   "a@x.com",
	})
	assert.Equal(s.T(), http.StatusOK, code)
	id := uint64(body["insertedId"].(float64))

	code, body = s.getJSON("/videos")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), float64(1), body["totalCount"])

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/delete-video/%d", id), nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	code, body = s.getJSON("/videos")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), float64(0), body["totalCount"])
}

// --- Original path spellings ---

// The deployed client still calls several endpoints under their original
// names; both spellings must stay routable.
func (s *APISuite) TestOriginalPathSpellings() {
	code, _ := s.doJSON(http.MethodPost, "/users", map[string]string{
		"email": "legacy@x.com",
		"name":  "Before",
	})
	s.Require().Equal(http.StatusCreated, code)

	code, _ = s.doJSON(http.MethodPut, "/update-user?email=legacy@x.com", map[string]string{"name": "After"})
	assert.Equal(s.T(), http.StatusOK, code)

	code, body := s.getJSON("/userData?email=legacy@x.com")
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "After", body["name"])

	code, body = s.doJSON(http.MethodPost, "/add-blogs-others-to-approval-history", map[string]string{
		"blog_title": "pending post",
		"userEmail":  "legacy@x.com",
	})
	assert.Equal(s.T(), http.StatusOK, code)
	userHistID := uint64(body["insertedId"].(float64))

	code, body = s.doJSON(http.MethodPost, "/add-blogs-to-admin-history", map[string]string{
		"blog_title":   "pending post",
		"userEmail":    "legacy@x.com",
		"approverMail": "admin@x.com",
	})
	assert.Equal(s.T(), http.StatusOK, code)
	adminHistID := uint64(body["insertedId"].(float64))

	req := httptest.NewRequest(http.MethodGet, "/get-approval-history-data?email=legacy@x.com", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	var records []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(s.T(), records, 1)

	req = httptest.NewRequest(http.MethodGet, "/get-approval-history-data-for-admin?email=admin@x.com", nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)
	records = nil
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(s.T(), records, 1)

	code, body = s.doJSON(http.MethodPatch, fmt.Sprintf("/reject-with-feedback/%d", userHistID),
		map[string]string{"status": "rejected", "feedback": "too short"})
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "Rejected Successfully", body["message"])

	code, body = s.doJSON(http.MethodPatch, fmt.Sprintf("/admin-reject-history/%d", adminHistID),
		map[string]string{"status": "rejected", "feedback": "too short"})
	assert.Equal(s.T(), http.StatusOK, code)
	assert.Equal(s.T(), "Rejected Successfully", body["message"])

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/delete-others-history-card/%d", userHistID), nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/delete-admin-history-card/%d", adminHistID), nil)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var remaining int64
	s.Require().NoError(s.db.Model(&domain.ApprovalHistory{}).Count(&remaining).Error)
	assert.Equal(s.T(), int64(0), remaining)
}
