package refine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const curatedSystemPrompt = `You are an expert emotion analysis AI. You will be given a user's text and a list of candidate emotions detected by a less advanced model. Your tasks are:
1. From the candidate list, identify the 1 to 4 most accurate emotions for the text.
2. For each accurate emotion you identify, provide a simple, one-sentence explanation referencing the text.
3. Write an insightful, user-friendly summary (2-3 sentences) of the overall emotional tone. Describe the primary feeling and how any secondary emotions add complexity.
4. Format your response as a JSON object with two keys: 'summary' and 'emotions'. The 'emotions' key should be an array of objects, where each object has 'label' and 'explanation' keys. Only include the emotions you have identified as accurate.`

// CuratedRefiner asks the model to pick the most accurate candidates in a
// single JSON-mode call. Any failure degrades to the raw candidate set.
type CuratedRefiner struct {
	client ChatClient
	model  string
}

type curatedResponse struct {
	Summary  string             `json:"summary"`
	Emotions []ExplainedEmotion `json:"emotions"`
}

func (r *CuratedRefiner) Refine(ctx context.Context, req Request) Refinement {
	if r.client == nil {
		return passthrough(req.Candidates, FallbackSummary)
	}

	labels := make([]string, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		labels = append(labels, fmt.Sprintf("'%s'", c.Label))
	}
	userPrompt := fmt.Sprintf("Text: %q\nCandidate Emotions: [%s]", req.Text, strings.Join(labels, ", "))

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: curatedSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   300,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		slog.Warn("[Refine] Curated refinement call failed, using candidates as-is",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return passthrough(req.Candidates, FallbackSummary)
	}
	if len(resp.Choices) == 0 {
		slog.Warn("[Refine] Curated refinement returned no choices")
		return passthrough(req.Candidates, FallbackSummary)
	}

	cleaned := cleanModelResponse(resp.Choices[0].Message.Content)

	var refined curatedResponse
	if err := json.Unmarshal([]byte(cleaned), &refined); err != nil {
		slog.Warn("[Refine] Failed to unmarshal curated refinement",
			slog.String("error", err.Error()),
			slog.String("raw_response", resp.Choices[0].Message.Content))
		return passthrough(req.Candidates, FallbackSummary)
	}
	if len(refined.Emotions) == 0 {
		slog.Warn("[Refine] Curated refinement contained no emotions")
		return passthrough(req.Candidates, FallbackSummary)
	}

	summary := refined.Summary
	degraded := false
	if summary == "" {
		slog.Warn("[Refine] Curated refinement returned no summary")
		summary = FallbackSummary
		degraded = true
	}

	return Refinement{
		Summary:  summary,
		Emotions: refined.Emotions,
		Degraded: degraded,
	}
}

// cleanModelResponse strips markdown code fences some models wrap around
// JSON output despite JSON mode being requested.
func cleanModelResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	return strings.TrimSpace(cleaned)
}
