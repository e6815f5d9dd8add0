// ABOUTME: HTTP handlers for search, single-article and health endpoints
// ABOUTME: Parse query parameters and delegate to the orchestrator

package handlers

import (
	"context"
	"net/http"
	"time"

	"newslens-api/core/domain"
	coreerrors "newslens-api/core/errors"
	"newslens-api/core/interfaces"
	"newslens-api/pkg/utils/parse"

	"github.com/gin-gonic/gin"
)

// Pipeline is the orchestrator surface the handlers need
type Pipeline interface {
	Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error)
	Article(ctx context.Context, req domain.ArticleRequest) (*domain.ArticleResponse, error)
}

// Handler serves the API endpoints
type Handler struct {
	pipeline Pipeline
	logger   interfaces.Logger
	version  string
	started  time.Time
}

// New creates a Handler
func New(pipeline Pipeline, logger interfaces.Logger, version string) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   interfaces.LoggerOrNop(logger),
		version:  version,
		started:  time.Now(),
	}
}

// Search handles GET /api/v1/search
func (h *Handler) Search(c *gin.Context) {
	limit, err := parse.IntOrDefault(c.Query("limit"), domain.DefaultLimit)
	if err != nil {
		writeError(c, &coreerrors.ValidationError{Field: "limit", Message: "limit must be an integer"})
		return
	}

	req := domain.SearchRequest{
		Query:          c.Query("query"),
		Lang:           c.Query("lang"),
		Country:        c.Query("country"),
		Type:           c.Query("type"),
		IncludeContent: parse.BoolOrDefault(c.Query("include_content"), true),
		Limit:          limit,
	}
	if req.Limit == 0 && c.Query("limit") != "" {
		writeError(c, &coreerrors.ValidationError{Field: "limit", Message: "limit must be between 1 and 50"})
		return
	}

	resp, err := h.pipeline.Search(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Search request failed", map[string]interface{}{
			"query": req.Query,
			"error": err.Error(),
		})
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Article handles GET /api/v1/article
func (h *Handler) Article(c *gin.Context) {
	req := domain.ArticleRequest{
		URL:            c.Query("url"),
		IncludeContent: parse.BoolOrDefault(c.Query("include_content"), true),
	}

	resp, err := h.pipeline.Article(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("Article request failed", map[string]interface{}{
			"url":   req.URL,
			"error": err.Error(),
		})
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Health handles GET /health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        h.version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
