package main

import (
	"log/slog"
	"os"

	"github.com/spacesedan/emotiflow/config"
	"github.com/spacesedan/emotiflow/internal/cache"
	"github.com/spacesedan/emotiflow/internal/classifiers"
	"github.com/spacesedan/emotiflow/internal/events"
	"github.com/spacesedan/emotiflow/internal/logging"
	"github.com/spacesedan/emotiflow/internal/pipeline"
	"github.com/spacesedan/emotiflow/internal/refine"
	"github.com/spacesedan/emotiflow/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger(env)

	cfg := config.FromEnv()

	session, err := classifiers.NewSession()
	if err != nil {
		slog.Error("[Main] Failed to initialize ONNX session",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer session.Destroy()

	emotionScorer, err := classifiers.NewHugotEmotionClassifier(session, cfg.ModelDir)
	if err != nil {
		slog.Error("[Main] Failed to load emotion classifier",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	var sentimentScorer pipeline.SentimentScorer
	switch cfg.SentimentBackend {
	case "vader":
		sentimentScorer = classifiers.NewVaderSentimentClassifier()
		slog.Info("[Main] Using VADER sentiment backend")
	default:
		sentimentScorer, err = classifiers.NewHugotSentimentClassifier(session, cfg.ModelDir)
		if err != nil {
			slog.Error("[Main] Failed to load sentiment classifier",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var chatClient refine.ChatClient
	if cfg.GroqAPIKey != "" {
		chatClient = refine.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL)
	} else {
		slog.Warn("[Main] GROQ_API_KEY not set, refinement runs in local-only mode")
	}
	refiner := refine.NewRefiner(cfg.Strategy, chatClient, cfg.GroqModel)

	p := pipeline.New(emotionScorer, sentimentScorer, refiner, cfg.TopK)

	var analysisCache *cache.Cache
	if cfg.ValkeyAddr != "" {
		analysisCache, err = cache.New(cfg.ValkeyAddr, cfg.ValkeyPassword, cfg.ValkeyTLS)
		if err != nil {
			slog.Warn("[Main] Analysis cache disabled",
				slog.String("error", err.Error()))
			analysisCache = nil
		} else {
			defer analysisCache.Close()
		}
	}

	var publisher *events.Publisher
	if cfg.KafkaBrokers != "" {
		publisher, err = events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			slog.Warn("[Main] Analysis event publishing disabled",
				slog.String("error", err.Error()))
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	srv := server.New(p, analysisCache, publisher, server.Options{
		AppEnv:           cfg.AppEnv,
		RemoteRefinement: chatClient != nil,
		SentimentBackend: cfg.SentimentBackend,
	})

	slog.Info("[Main] Starting server",
		slog.String("port", cfg.Port),
		slog.String("strategy", cfg.Strategy),
		slog.Int("top_k", cfg.TopK))

	if err := srv.Run(":" + cfg.Port); err != nil {
		slog.Error("[Main] Server exited",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
}
