package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spacesedan/emotiflow/internal/emoji"
	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/refine"
	"github.com/spacesedan/emotiflow/internal/textutil"
)

// ErrEmptyText marks input that is empty after normalization; the server
// maps it to a 400 without having touched the classifiers.
var ErrEmptyText = errors.New("no text provided")

const (
	neutralSummary     = "No strong emotions were detected in the text."
	neutralExplanation = "The text appears to be emotionally neutral."
	neutralLabel       = "neutral"
)

// EmotionScorer produces multi-label scores over the full emotion
// vocabulary, unordered.
type EmotionScorer interface {
	Classify(text string) ([]models.EmotionScore, error)
}

// SentimentScorer returns the single best polarity label ("positive" or
// "negative", any casing) and its confidence.
type SentimentScorer interface {
	Classify(text string) (label string, confidence float64, err error)
}

// Pipeline fuses the two local classifiers with the remote refinement
// strategy into one stable response contract.
type Pipeline struct {
	emotions  EmotionScorer
	sentiment SentimentScorer
	refiner   refine.Refiner
	topK      int
}

func New(emotions EmotionScorer, sentiment SentimentScorer, refiner refine.Refiner, topK int) *Pipeline {
	return &Pipeline{
		emotions:  emotions,
		sentiment: sentiment,
		refiner:   refiner,
		topK:      topK,
	}
}

// Analyze runs the full fusion: candidate generation, refinement, score
// renormalization, final ordering and assembly. Refinement failures degrade
// silently; classifier failures are returned to the caller.
func (p *Pipeline) Analyze(ctx context.Context, rawText string) (models.AnalysisResult, error) {
	if strings.TrimSpace(rawText) == "" {
		return models.AnalysisResult{}, ErrEmptyText
	}
	text := textutil.Canonical(rawText)

	candidates, err := p.generateCandidates(text)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	sentiment, err := p.scoreSentiment(text)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	refinement := p.refiner.Refine(ctx, refine.Request{
		Text:       text,
		Candidates: candidates,
		Sentiment:  sentiment,
	})
	if refinement.Degraded {
		slog.Warn("[Pipeline] Refinement degraded, response uses fallback content")
	}

	summary, emotions := p.assemble(candidates, refinement)

	return models.AnalysisResult{
		Sentiment: sentiment,
		Summary:   summary,
		Emotions:  emotions,
	}, nil
}

func (p *Pipeline) generateCandidates(text string) ([]models.EmotionScore, error) {
	scores, err := p.emotions.Classify(text)
	if err != nil {
		return nil, fmt.Errorf("emotion classification failed: %w", err)
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if len(scores) > p.topK {
		scores = scores[:p.topK]
	}

	return scores, nil
}

func (p *Pipeline) scoreSentiment(text string) (models.SentimentResult, error) {
	label, confidence, err := p.sentiment.Classify(text)
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("sentiment classification failed: %w", err)
	}

	result := models.SentimentResult{
		Label: capitalize(label),
		Score: confidence,
	}
	if result.Label == "Negative" {
		result.Score = -result.Score
	}

	return result, nil
}

// assemble filters refined labels against the candidate set, renormalizes
// the retained original scores to sum to 1 and sorts descending. An empty
// retained set collapses to a single neutral emotion.
func (p *Pipeline) assemble(candidates []models.EmotionScore, refinement refine.Refinement) (string, []models.FinalEmotion) {
	rawScores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		rawScores[c.Label] = c.Score
	}

	var final []models.FinalEmotion
	for _, e := range refinement.Emotions {
		score, ok := rawScores[e.Label]
		if !ok {
			slog.Warn("[Pipeline] Dropping label not present in candidate set",
				slog.String("label", e.Label))
			continue
		}
		final = append(final, models.FinalEmotion{
			Label:       e.Label,
			Score:       score,
			Explanation: e.Explanation,
			Emoji:       emoji.ForLabel(e.Label),
		})
	}

	if len(final) == 0 {
		return neutralSummary, []models.FinalEmotion{{
			Label:       neutralLabel,
			Score:       1,
			Explanation: neutralExplanation,
			Emoji:       emoji.ForLabel(neutralLabel),
		}}
	}

	var total float64
	for _, e := range final {
		total += e.Score
	}
	if total > 0 {
		for i := range final {
			final[i].Score /= total
		}
	} else {
		share := 1 / float64(len(final))
		for i := range final {
			final[i].Score = share
		}
	}

	sort.SliceStable(final, func(i, j int) bool {
		return final[i].Score > final[j].Score
	})

	summary := refinement.Summary
	if summary == "" {
		summary = refine.FallbackSummary
	}

	return summary, final
}

func capitalize(s string) string {
	s = strings.ToLower(s)
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
