package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/emotiflow/internal/cache"
	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/pipeline"
	"github.com/spacesedan/emotiflow/internal/textutil"
)

const (
	noTextError   = "No text provided."
	internalError = "An internal error occurred during analysis."
)

func (s *Server) handleAnalyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": noTextError})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": noTextError})
		return
	}

	ctx := c.Request.Context()
	// Keyed on the canonical text so inputs differing only in markup share
	// one cache entry.
	key := cache.Key(textutil.Canonical(text))

	if s.cache != nil {
		if result, ok := s.cache.Get(ctx, key); ok {
			slog.Debug("[Server] Returning cached analysis")
			c.JSON(http.StatusOK, result)
			return
		}
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(ctx, text)
	if errors.Is(err, pipeline.ErrEmptyText) {
		c.JSON(http.StatusBadRequest, gin.H{"error": noTextError})
		return
	}
	if err != nil {
		slog.Error("[Server] Analysis failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalError})
		return
	}

	slog.Info("[Server] Analysis complete",
		slog.Int("emotions", len(result.Emotions)),
		slog.Duration("elapsed", time.Since(start)))

	if s.cache != nil {
		s.cache.Set(ctx, key, result)
	}
	if s.publisher != nil {
		s.publisher.PublishAnalysis(text, result)
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":            "ok",
		"remote_refinement": s.opts.RemoteRefinement,
		"sentiment_backend": s.opts.SentimentBackend,
	})
}

func (s *Server) handlePanic(c *gin.Context, err any) {
	slog.Error("[Server] Recovered from panic during analysis",
		slog.Any("panic", err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": internalError})
}
