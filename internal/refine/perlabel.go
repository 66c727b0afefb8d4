package refine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

const (
	perLabelSummarySystemPrompt = "You are an emotion analysis assistant. Write an insightful, user-friendly summary (2-3 sentences) of the overall emotional tone of the user's text."

	perLabelExplanationSystemPrompt = "You are an emotion analysis assistant. In one sentence, explain why the given emotion is present in the user's text, referencing the text."
)

// PerLabelRefiner issues one summary call plus one explanation call per
// candidate. Explanation calls run concurrently and are independently
// fault-tolerant: a failing call degrades only its own emotion.
type PerLabelRefiner struct {
	client ChatClient
	model  string
}

func (r *PerLabelRefiner) Refine(ctx context.Context, req Request) Refinement {
	if r.client == nil {
		return passthrough(req.Candidates, FallbackSummary)
	}

	emotions := make([]ExplainedEmotion, len(req.Candidates))
	degraded := false

	var mu sync.Mutex
	var wg sync.WaitGroup

	wg.Add(1)
	summary := FallbackSummary
	go func() {
		defer wg.Done()
		s, err := r.generateSummary(ctx, req)
		if err != nil {
			slog.Warn("[Refine] Summary call failed",
				slog.String("error", err.Error()))
			mu.Lock()
			degraded = true
			mu.Unlock()
			return
		}
		summary = s
	}()

	for i, candidate := range req.Candidates {
		wg.Add(1)
		go func(i int, label string) {
			defer wg.Done()
			explanation, err := r.explainEmotion(ctx, req.Text, label)
			if err != nil {
				slog.Warn("[Refine] Explanation call failed",
					slog.String("label", label),
					slog.String("error", err.Error()))
				explanation = fallbackExplanation(label)
				mu.Lock()
				degraded = true
				mu.Unlock()
			}
			emotions[i] = ExplainedEmotion{Label: label, Explanation: explanation}
		}(i, candidate.Label)
	}

	wg.Wait()

	return Refinement{
		Summary:  summary,
		Emotions: emotions,
		Degraded: degraded,
	}
}

func (r *PerLabelRefiner) generateSummary(ctx context.Context, req Request) (string, error) {
	labels := make([]string, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		labels = append(labels, c.Label)
	}
	userPrompt := fmt.Sprintf("Text: %q\nOverall sentiment: %s\nDominant emotions: %s",
		req.Text, req.Sentiment.Label, strings.Join(labels, ", "))

	return r.complete(ctx, perLabelSummarySystemPrompt, userPrompt)
}

func (r *PerLabelRefiner) explainEmotion(ctx context.Context, text, label string) (string, error) {
	userPrompt := fmt.Sprintf("Text: %q\nEmotion: %s", text, label)

	return r.complete(ctx, perLabelExplanationSystemPrompt, userPrompt)
}

func (r *PerLabelRefiner) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: 0.3,
		MaxTokens:   150,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion response")
	}

	return content, nil
}
