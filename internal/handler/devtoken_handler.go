package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/middleware"
	"github.com/memonote/memonote-backend/internal/service"
)

// DevTokenHandler handles personal API token requests
type DevTokenHandler struct {
	service service.DevTokenService
}

// NewDevTokenHandler creates a new DevTokenHandler
func NewDevTokenHandler(service service.DevTokenService) *DevTokenHandler {
	return &DevTokenHandler{service: service}
}

// Get handles GET /api/v1/users/me/token
func (h *DevTokenHandler) Get(c *gin.Context) {
	token, err := h.service.Get(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load token", err)
		return
	}

	common.SuccessResponse(c, token, nil)
}

// Enable handles POST /api/v1/users/me/token/enable
func (h *DevTokenHandler) Enable(c *gin.Context) {
	if err := h.service.Enable(middleware.GetUserID(c)); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to enable token", err)
		return
	}

	common.SuccessResponse(c, gin.H{"enabled": true}, nil)
}

// Reset handles POST /api/v1/users/me/token/reset
func (h *DevTokenHandler) Reset(c *gin.Context) {
	token, err := h.service.Reset(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, common.ErrDevTokenNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "No token to reset", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to reset token", err)
		return
	}

	common.SuccessResponse(c, token, nil)
}

// Disable handles POST /api/v1/users/me/token/disable
func (h *DevTokenHandler) Disable(c *gin.Context) {
	if err := h.service.Disable(middleware.GetUserID(c)); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to disable token", err)
		return
	}

	common.SuccessResponse(c, gin.H{"disabled": true}, nil)
}
