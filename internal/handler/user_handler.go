package handler

import (
	"errors"
	"net/http"

	"github.com/instantr/instantr-backend/internal/common"
	"github.com/instantr/instantr-backend/internal/domain"
	"github.com/instantr/instantr-backend/internal/repository"
	"github.com/instantr/instantr-backend/internal/service"
	"github.com/instantr/instantr-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserHandler handles user account requests
type UserHandler struct {
	userService *service.UserService
	userRepo    repository.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userService: userService, userRepo: userRepo}
}

// Users handles GET /users — every registered user
func (h *UserHandler) Users(c *gin.Context) {
	users, err := h.userRepo.FindAll()
	if err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UserRole handles GET /user-role?email= — the bare role string the client
// gates its UI on.
func (h *UserHandler) UserRole(c *gin.Context) {
	email := c.Query("email")
	role, err := h.userService.Role(email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			common.Message(c, http.StatusNotFound, "User not found")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.String(http.StatusOK, role)
}

// UserData handles GET /user-data?email= — the stored profile, or null when
// no account exists for the address.
func (h *UserHandler) UserData(c *gin.Context) {
	email := c.Query("email")
	user, err := h.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to fetch data", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// CreateUser handles POST /users — rejects duplicate emails instead of
// silently overwriting the existing account.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		common.Message(c, http.StatusBadRequest, "Email is required")
		return
	}

	user := &domain.User{
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     req.Role,
	}
	if err := h.userService.Create(user, req.Password); err != nil {
		if errors.Is(err, common.ErrUserAlreadyExists) {
			common.Message(c, http.StatusBadRequest, "User with this email already exists")
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to create user", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"acknowledged": true, "insertedId": user.ID})
}

// UpdateUser handles PUT /update-users?email= — merges the supplied fields
// into the account.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		common.Message(c, http.StatusBadRequest, "Email is required")
		return
	}

	var fields domain.User
	if err := c.ShouldBindJSON(&fields); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.userRepo.UpdateByEmail(email, &fields); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"acknowledged": true})
}

type profileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// UpdateProfile handles PATCH /add-userData/:id — display name and avatar only
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := ginutil.ParamUint64(c, "id")
	if err != nil {
		common.Message(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.userRepo.UpdateProfile(id, req.Name, req.PhotoURL); err != nil {
		common.Fail(c, http.StatusInternalServerError, "Failed to update profile", err)
		return
	}
	common.Message(c, http.StatusOK, "Profile Updated Successfully")
}

// DeleteUser handles DELETE /delete-users?email= — removes the account row
// and then its identity-provider record.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		common.Message(c, http.StatusBadRequest, "Email is required")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), email); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found", "success": false})
			return
		}
		common.Fail(c, http.StatusInternalServerError, "Failed to delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "User deleted successfully",
		"success":      true,
		"deletedCount": 1,
	})
}
