package refine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// emotionKeywords backs the local explanation strategy: the first keyword
// found in the text is quoted verbatim in the explanation.
var emotionKeywords = map[string][]string{
	"admiration":     {"amazing", "impressive", "brilliant", "wonderful"},
	"amusement":      {"funny", "hilarious", "laugh", "lol"},
	"anger":          {"angry", "furious", "hate", "rage", "mad"},
	"annoyance":      {"annoying", "irritating", "bothers", "ugh"},
	"approval":       {"agree", "good idea", "well done", "right"},
	"caring":         {"care", "support", "here for you", "comfort"},
	"confusion":      {"confused", "unclear", "don't understand", "puzzled"},
	"curiosity":      {"curious", "wonder", "interesting", "what if"},
	"desire":         {"want", "wish", "crave", "long for"},
	"disappointment": {"disappointed", "let down", "expected more"},
	"disapproval":    {"disagree", "wrong", "shouldn't", "bad idea"},
	"disgust":        {"disgusting", "gross", "revolting", "sickening"},
	"embarrassment":  {"embarrassed", "awkward", "ashamed", "cringe"},
	"excitement":     {"excited", "can't wait", "thrilled", "pumped"},
	"fear":           {"afraid", "scared", "terrified", "worried"},
	"gratitude":      {"thank", "grateful", "appreciate", "blessed"},
	"grief":          {"loss", "mourning", "passed away", "heartbroken"},
	"joy":            {"happy", "joy", "delighted", "great day"},
	"love":           {"love", "adore", "cherish", "dear"},
	"nervousness":    {"nervous", "anxious", "on edge", "jittery"},
	"optimism":       {"hope", "looking forward", "better days", "optimistic"},
	"pride":          {"proud", "accomplished", "achievement"},
	"realization":    {"realized", "now i see", "it hit me", "turns out"},
	"relief":         {"relieved", "finally", "phew", "glad that's over"},
	"remorse":        {"sorry", "regret", "my fault", "apologize"},
	"sadness":        {"sad", "unhappy", "crying", "miserable"},
	"surprise":       {"surprised", "unexpected", "can't believe", "wow"},
}

// KeywordRefiner explains candidates locally by keyword lookup; only the
// summary needs a remote call, with the usual fault tolerance.
type KeywordRefiner struct {
	client ChatClient
	model  string
}

func (r *KeywordRefiner) Refine(ctx context.Context, req Request) Refinement {
	lowered := strings.ToLower(req.Text)

	emotions := make([]ExplainedEmotion, 0, len(req.Candidates))
	for _, candidate := range req.Candidates {
		emotions = append(emotions, ExplainedEmotion{
			Label:       candidate.Label,
			Explanation: explainByKeyword(lowered, candidate.Label),
		})
	}

	summary, degraded := r.generateSummary(ctx, req)

	return Refinement{
		Summary:  summary,
		Emotions: emotions,
		Degraded: degraded,
	}
}

func explainByKeyword(loweredText, label string) string {
	for _, keyword := range emotionKeywords[label] {
		if strings.Contains(loweredText, keyword) {
			return fmt.Sprintf("The phrase %q in the text points to %s.", keyword, label)
		}
	}

	return fallbackExplanation(label)
}

func (r *KeywordRefiner) generateSummary(ctx context.Context, req Request) (string, bool) {
	if r.client == nil {
		return FallbackSummary, true
	}

	labels := make([]string, 0, len(req.Candidates))
	for _, c := range req.Candidates {
		labels = append(labels, c.Label)
	}
	userPrompt := fmt.Sprintf("Text: %q\nOverall sentiment: %s\nDominant emotions: %s",
		req.Text, req.Sentiment.Label, strings.Join(labels, ", "))

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: perLabelSummarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.3,
		MaxTokens:   150,
	})
	if err != nil {
		slog.Warn("[Refine] Summary call failed",
			slog.String("error", err.Error()))
		return FallbackSummary, true
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		slog.Warn("[Refine] Summary call returned no content")
		return FallbackSummary, true
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), false
}
