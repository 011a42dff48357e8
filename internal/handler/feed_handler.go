package handler

import (
	"encoding/xml"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memonote/memonote-backend/internal/common"
	"github.com/memonote/memonote-backend/internal/service"
)

// FeedHandler serves the public RSS feed
type FeedHandler struct {
	service service.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(service service.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// RSS handles GET /rss
func (h *FeedHandler) RSS(c *gin.Context) {
	feed, err := h.service.BuildFeed(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to build feed", err)
		return
	}

	body, err := xml.Marshal(feed)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to render feed", err)
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", append([]byte(xml.Header), body...))
}
