package refine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spacesedan/emotiflow/config"
	"github.com/spacesedan/emotiflow/internal/models"
)

const (
	// FallbackSummary replaces the summary whenever the remote service
	// cannot produce one.
	FallbackSummary = "Could not generate an AI summary."

	fallbackExplanationFormat = "The overall tone of the text suggests %s."
)

// ExplainedEmotion is one refined candidate with its natural-language
// justification. Scores stay with the original candidate set; refinement
// never emits scores of its own.
type ExplainedEmotion struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
}

// Refinement is the typed outcome of a refinement attempt. Degraded marks
// that at least one remote call failed and a deterministic fallback was
// substituted; callers treat it as informational, never as an error.
type Refinement struct {
	Summary  string
	Emotions []ExplainedEmotion
	Degraded bool
}

// Request carries everything a strategy may use: the normalized input text,
// the top-K candidate emotions (descending by score) and the already-derived
// sentiment for summary context.
type Request struct {
	Text       string
	Candidates []models.EmotionScore
	Sentiment  models.SentimentResult
}

// Refiner turns candidate emotions into explained emotions plus a summary.
// Implementations must not fail: every internal error degrades to fallback
// content instead.
type Refiner interface {
	Refine(ctx context.Context, req Request) Refinement
}

// NewRefiner selects the strategy configured by REFINE_STRATEGY. An unknown
// name falls back to the curated strategy. A nil client is valid and keeps
// every strategy in local-only degraded mode.
func NewRefiner(strategy string, client ChatClient, model string) Refiner {
	switch strategy {
	case config.StrategyCurated:
		return &CuratedRefiner{client: client, model: model}
	case config.StrategyPerLabel:
		return &PerLabelRefiner{client: client, model: model}
	case config.StrategyKeyword:
		return &KeywordRefiner{client: client, model: model}
	default:
		slog.Warn("[Refine] Unknown strategy, using curated",
			slog.String("strategy", strategy))
		return &CuratedRefiner{client: client, model: model}
	}
}

// passthrough returns the unmodified candidate set with templated
// explanations, used whenever the remote service is unavailable or its
// response is unusable.
func passthrough(candidates []models.EmotionScore, summary string) Refinement {
	emotions := make([]ExplainedEmotion, 0, len(candidates))
	for _, c := range candidates {
		emotions = append(emotions, ExplainedEmotion{
			Label:       c.Label,
			Explanation: fallbackExplanation(c.Label),
		})
	}

	return Refinement{
		Summary:  summary,
		Emotions: emotions,
		Degraded: true,
	}
}

func fallbackExplanation(label string) string {
	return fmt.Sprintf(fallbackExplanationFormat, label)
}
