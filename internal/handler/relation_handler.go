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

// RelationHandler handles like/favorite requests
type RelationHandler struct {
	service service.RelationService
}

// NewRelationHandler creates a new RelationHandler
func NewRelationHandler(service service.RelationService) *RelationHandler {
	return &RelationHandler{service: service}
}

// Update handles POST /api/v1/memos/relation
func (h *RelationHandler) Update(c *gin.Context) {
	var req domain.RelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.service.UpdateRelation(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMemoNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Memo not found", nil)
		case errors.Is(err, common.ErrRelationExists):
			common.ErrorResponse(c, http.StatusConflict, "Relation already exists", nil)
		case errors.Is(err, common.ErrLikeDisabled):
			common.ErrorResponse(c, http.StatusForbidden, "Likes are disabled", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update relation", err)
		}
		return
	}

	common.SuccessResponse(c, gin.H{"ok": true}, nil)
}
