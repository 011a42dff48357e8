package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/domain"
	"github.com/memonote/memonote-backend/internal/middleware"
	"github.com/memonote/memonote-backend/internal/service"
)

// CommentHandler handles comment requests
type CommentHandler struct {
	service service.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(service service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Add handles POST /api/v1/comments
func (h *CommentHandler) Add(c *gin.Context) {
	var req domain.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	comment, err := h.service.AddComment(c.Request.Context(), &req, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMemoNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Memo not found", nil)
		case errors.Is(err, common.ErrCommentDisabled):
			common.ErrorResponse(c, http.StatusForbidden, "Comments are disabled", nil)
		case errors.Is(err, common.ErrAnonymousBlocked):
			common.ErrorResponse(c, http.StatusForbidden, "Anonymous comments are not allowed", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to add comment", err)
		}
		return
	}

	common.SuccessResponse(c, comment, nil)
}

// List handles GET /api/v1/comments
func (h *CommentHandler) List(c *gin.Context) {
	var req domain.ListCommentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	comments, total, err := h.service.ListComments(&req, middleware.IsAdmin(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list comments", err)
		return
	}

	common.SuccessResponse(c, comments, &common.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Delete handles DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid comment id", err)
		return
	}

	if err := h.service.DeleteComment(id, middleware.GetUserID(c)); err != nil {
		switch {
		case errors.Is(err, common.ErrCommentNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Comment not found", nil)
		case errors.Is(err, common.ErrForbidden):
			common.ErrorResponse(c, http.StatusForbidden, "Not allowed", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete comment", err)
		}
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Approve handles POST /api/v1/comments/:id/approve (admin)
func (h *CommentHandler) Approve(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid comment id", err)
		return
	}

	if err := h.service.ApproveComment(id); err != nil {
		if errors.Is(err, common.ErrCommentNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Comment not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to approve comment", err)
		return
	}

	common.SuccessResponse(c, gin.H{"approved": true}, nil)
}

// ApproveByMemo handles POST /api/v1/memos/:id/approve-comments (admin)
func (h *CommentHandler) ApproveByMemo(c *gin.Context) {
	memoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid memo id", err)
		return
	}

	if err := h.service.ApproveByMemo(memoID); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to approve comments", err)
		return
	}

	common.SuccessResponse(c, gin.H{"approved": true}, nil)
}
