package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/service"
)

// SysConfigHandler handles system config requests (admin)
type SysConfigHandler struct {
	service service.SysConfigService
}

// NewSysConfigHandler creates a new SysConfigHandler
func NewSysConfigHandler(service service.SysConfigService) *SysConfigHandler {
	return &SysConfigHandler{service: service}
}

// List handles GET /api/v1/sys-config
func (h *SysConfigHandler) List(c *gin.Context) {
	configs, err := h.service.All()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load config", err)
		return
	}

	common.SuccessResponse(c, configs, nil)
}

// Set handles PUT /api/v1/sys-config
func (h *SysConfigHandler) Set(c *gin.Context) {
	var req domain.SetSysConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.Set(c.Request.Context(), req.Key, req.Value); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update config", err)
		return
	}

	common.SuccessResponse(c, gin.H{"updated": true}, nil)
}
