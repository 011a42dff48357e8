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

// MemoHandler handles memo requests
type MemoHandler struct {
	service service.MemoService
}

// NewMemoHandler creates a new MemoHandler
func NewMemoHandler(service service.MemoService) *MemoHandler {
	return &MemoHandler{service: service}
}

// Create handles POST /api/v1/memos
func (h *MemoHandler) Create(c *gin.Context) {
	var req domain.SaveMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	memo, err := h.service.CreateMemo(middleware.GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, common.ErrEmptyMemo) {
			common.ErrorResponse(c, http.StatusBadRequest, "Memo content is empty", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create memo", err)
		return
	}

	common.SuccessResponse(c, memo, nil)
}

// Update handles PUT /api/v1/memos/:id
func (h *MemoHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid memo id", err)
		return
	}

	var req domain.SaveMemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	memo, err := h.service.UpdateMemo(id, middleware.GetUserID(c), &req)
	if err != nil {
		respondMemoError(c, err, "Failed to update memo")
		return
	}

	common.SuccessResponse(c, memo, nil)
}

// Get handles GET /api/v1/memos/:id
func (h *MemoHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid memo id", err)
		return
	}

	memo, err := h.service.GetMemo(id, middleware.GetUserID(c))
	if err != nil {
		respondMemoError(c, err, "Failed to load memo")
		return
	}

	common.SuccessResponse(c, memo, nil)
}

// List handles GET /api/v1/memos
func (h *MemoHandler) List(c *gin.Context) {
	var req domain.ListMemoRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	memos, total, err := h.service.ListMemos(&req, middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list memos", err)
		return
	}

	common.SuccessResponse(c, memos, &common.Meta{
		Page:  req.Page,
		Limit: req.Limit,
		Total: total,
	})
}

// Delete handles DELETE /api/v1/memos/:id
func (h *MemoHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid memo id", err)
		return
	}

	if err := h.service.DeleteMemo(id, middleware.GetUserID(c)); err != nil {
		respondMemoError(c, err, "Failed to delete memo")
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// Archive handles POST /api/v1/memos/:id/archive
func (h *MemoHandler) Archive(c *gin.Context) {
	h.setStatus(c, h.service.ArchiveMemo)
}

// Restore handles POST /api/v1/memos/:id/restore
func (h *MemoHandler) Restore(c *gin.Context) {
	h.setStatus(c, h.service.RestoreMemo)
}

func (h *MemoHandler) setStatus(c *gin.Context, op func(id, actorID int64) error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid memo id", err)
		return
	}

	if err := op(id, middleware.GetUserID(c)); err != nil {
		respondMemoError(c, err, "Failed to change memo status")
		return
	}

	common.SuccessResponse(c, gin.H{"ok": true}, nil)
}

func respondMemoError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, common.ErrMemoNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Memo not found", nil)
	case errors.Is(err, common.ErrForbidden):
		common.ErrorResponse(c, http.StatusForbidden, "Not allowed", nil)
	case errors.Is(err, common.ErrEmptyMemo):
		common.ErrorResponse(c, http.StatusBadRequest, "Memo content is empty", nil)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, fallback, err)
	}
}
