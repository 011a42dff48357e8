package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/middleware"
	"github.com/memonote/memonote-backend/internal/service"
)

// UserHandler handles user statistics and mention watermark requests
type UserHandler struct {
	statistics service.StatisticsService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(statistics service.StatisticsService) *UserHandler {
	return &UserHandler{statistics: statistics}
}

// Statistics handles GET /api/v1/users/me/statistics
func (h *UserHandler) Statistics(c *gin.Context) {
	snapshot, err := h.statistics.Snapshot(middleware.GetUserID(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute statistics", err)
		return
	}

	common.SuccessResponse(c, snapshot, nil)
}

// Heatmap handles GET /api/v1/users/me/statistics/daily
func (h *UserHandler) Heatmap(c *gin.Context) {
	var begin, end time.Time
	if raw := c.Query("begin"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid begin date", err)
			return
		}
		begin = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid end date", err)
			return
		}
		end = parsed
	}

	heatmap, err := h.statistics.Heatmap(middleware.GetUserID(c), begin, end)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "End date before begin date", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to compute statistics", err)
		return
	}

	common.SuccessResponse(c, heatmap, nil)
}

// MarkMentionedRead handles POST /api/v1/users/me/mentions/read
func (h *UserHandler) MarkMentionedRead(c *gin.Context) {
	err := h.statistics.MarkMentionedRead(middleware.GetUserID(c), time.Now())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark mentions read", err)
		return
	}

	common.SuccessResponse(c, gin.H{"ok": true}, nil)
}
