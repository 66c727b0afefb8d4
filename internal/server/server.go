package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/spacesedan/emotiflow/internal/cache"
	"github.com/spacesedan/emotiflow/internal/events"
	"github.com/spacesedan/emotiflow/internal/models"
)

// Analyzer is the pipeline's surface as the handlers see it.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (models.AnalysisResult, error)
}

// Options carries the startup facts the health endpoint reports.
type Options struct {
	AppEnv           string
	RemoteRefinement bool
	SentimentBackend string
}

type Server struct {
	engine    *gin.Engine
	analyzer  Analyzer
	cache     *cache.Cache
	publisher *events.Publisher
	opts      Options
}

// New builds the router. cache and publisher may be nil; the corresponding
// features are simply skipped.
func New(analyzer Analyzer, analysisCache *cache.Cache, publisher *events.Publisher, opts Options) *Server {
	if opts.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		analyzer:  analyzer,
		cache:     analysisCache,
		publisher: publisher,
		opts:      opts,
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(s.handlePanic))
	// Cross-origin browser clients are supported from any origin.
	r.Use(cors.Default())

	r.POST("/analyze", s.handleAnalyze)
	r.GET("/healthz", s.handleHealthz)

	s.engine = r
	return s
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}
