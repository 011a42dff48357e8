package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/middleware"
	"github.com/memonote/memonote-backend/internal/service"
)

// AuthHandler handles registration, login and profile requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrUserAlreadyExists):
			common.ErrorResponse(c, http.StatusConflict, "Username already taken", err)
		case errors.Is(err, common.ErrRegisterClosed):
			common.ErrorResponse(c, http.StatusForbidden, "Registration is closed", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Registration failed", err)
		}
		return
	}

	common.SuccessResponse(c, user, nil)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	common.SuccessResponse(c, resp, nil)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	pair, err := h.service.RefreshToken(req.RefreshToken)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "Invalid refresh token", nil)
		return
	}

	common.SuccessResponse(c, pair, nil)
}

// Profile handles GET /api/v1/users/me
func (h *AuthHandler) Profile(c *gin.Context) {
	user, err := h.service.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load profile", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// UpdateProfile handles PATCH /api/v1/users/me
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Profile update failed", err)
		return
	}

	common.SuccessResponse(c, user, nil)
}

// ChangePassword handles POST /api/v1/users/me/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req domain.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.service.ChangePassword(middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			common.ErrorResponse(c, http.StatusForbidden, "Wrong current password", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Password change failed", err)
		return
	}

	common.SuccessResponse(c, gin.H{"changed": true}, nil)
}
