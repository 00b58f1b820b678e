package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/newsdeck/internal/api/middleware"
	"github.com/timmy/newsdeck/internal/domain"
	"github.com/timmy/newsdeck/internal/logger"
)

// NewsLister is the service the news handler reads from.
type NewsLister interface {
	ListNews(ctx context.Context, limit, offset int) ([]domain.NewsItem, error)
	GetNews(ctx context.Context, id string) (*domain.NewsItem, error)
}

// NewsHandler handles news endpoints.
type NewsHandler struct {
	news NewsLister
}

// NewNewsHandler creates a new news handler.
func NewNewsHandler(news NewsLister) *NewsHandler {
	return &NewsHandler{news: news}
}

// ListNews handles GET /api/v1/news?offset=&limit=.
// The body is a JSON array of items, empty past the end of the collection.
func (h *NewsHandler) ListNews(c *gin.Context) {
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	items, err := h.news.ListNews(c.Request.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		middleware.GetLogger(c).WithError(err).Error("Failed to list news")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to list news",
			"request_id": logger.GetRequestID(c.Request.Context()),
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// GetNews handles GET /api/v1/news/:id.
func (h *NewsHandler) GetNews(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "News ID is required"})
		return
	}

	item, err := h.news.GetNews(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "News not found"})
			return
		}
		middleware.GetLogger(c).WithError(err).Error("Failed to get news")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Failed to get news",
			"request_id": logger.GetRequestID(c.Request.Context()),
		})
		return
	}

	c.JSON(http.StatusOK, item)
}

// queryInt parses an optional non-negative integer query parameter. A missing
// parameter yields 0. It writes a 400 response and returns false otherwise.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": name + " must be a non-negative integer",
		})
		return 0, false
	}
	return v, true
}
