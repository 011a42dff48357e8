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

// TagHandler handles tag requests
type TagHandler struct {
	service service.TagService
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(service service.TagService) *TagHandler {
	return &TagHandler{service: service}
}

// List handles GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.ListTags(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list tags", err)
		return
	}

	common.SuccessResponse(c, tags, nil)
}

// Rename handles POST /api/v1/tags/rename
func (h *TagHandler) Rename(c *gin.Context) {
	var req domain.RenameTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.service.RenameTag(middleware.GetUserID(c), req.Old, req.New)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrTagNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Tag not found", nil)
		case errors.Is(err, common.ErrTagNameExists):
			common.ErrorResponse(c, http.StatusConflict, "Tag name already exists", nil)
		case errors.Is(err, common.ErrInvalidTag):
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid tag name", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to rename tag", err)
		}
		return
	}

	common.SuccessResponse(c, gin.H{"renamed": true}, nil)
}

// Delete handles DELETE /api/v1/tags/:name
func (h *TagHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "Tag name is required", nil)
		return
	}

	if err := h.service.DeleteTag(middleware.GetUserID(c), name); err != nil {
		if errors.Is(err, common.ErrTagNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Tag not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete tag", err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
