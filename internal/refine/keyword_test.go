package refine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordExplainsFromText(t *testing.T) {
	client := &stubChatClient{content: "An upbeat, thankful note."}
	r := &KeywordRefiner{client: client, model: "test-model"}

	got := r.Refine(context.Background(), testRequest())

	assert.False(t, got.Degraded)
	assert.Equal(t, "An upbeat, thankful note.", got.Summary)
	require.Len(t, got.Emotions, len(testCandidates))

	byLabel := make(map[string]string)
	for _, e := range got.Emotions {
		byLabel[e.Label] = e.Explanation
	}
	assert.Contains(t, byLabel["joy"], `"happy"`)
	assert.Contains(t, byLabel["gratitude"], `"grateful"`)
	assert.Equal(t, fallbackExplanation("optimism"), byLabel["optimism"])
}

func TestKeywordExplanationIsDeterministic(t *testing.T) {
	r := &KeywordRefiner{}
	req := testRequest()

	first := r.Refine(context.Background(), req)
	second := r.Refine(context.Background(), req)

	assert.Equal(t, first.Emotions, second.Emotions)
}

func TestKeywordSummaryFailureDegrades(t *testing.T) {
	client := &stubChatClient{err: errors.New("timeout")}
	r := &KeywordRefiner{client: client, model: "test-model"}

	got := r.Refine(context.Background(), testRequest())

	assert.True(t, got.Degraded)
	assert.Equal(t, FallbackSummary, got.Summary)
	// local explanations are unaffected by the remote failure
	require.Len(t, got.Emotions, len(testCandidates))
	assert.Contains(t, got.Emotions[0].Explanation, `"happy"`)
}

func TestKeywordNilClientStillExplains(t *testing.T) {
	r := &KeywordRefiner{}

	got := r.Refine(context.Background(), testRequest())

	assert.True(t, got.Degraded)
	assert.Equal(t, FallbackSummary, got.Summary)
	assert.Len(t, got.Emotions, len(testCandidates))
}
