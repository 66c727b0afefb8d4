package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/emotiflow/internal/models"
	"github.com/spacesedan/emotiflow/internal/pipeline"
)

type mockAnalyzer struct {
	result models.AnalysisResult
	err    error
	calls  int
}

func (m *mockAnalyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	m.calls++
	return m.result, m.err
}

type panickingAnalyzer struct{}

func (p *panickingAnalyzer) Analyze(ctx context.Context, text string) (models.AnalysisResult, error) {
	panic("nil map entry")
}

func happyResult() models.AnalysisResult {
	return models.AnalysisResult{
		Sentiment: models.SentimentResult{Label: "Positive", Score: 0.97},
		Summary:   "A joyful, thankful note.",
		Emotions: []models.FinalEmotion{
			{Label: "joy", Score: 0.6, Explanation: "The text expresses happiness.", Emoji: "😄"},
			{Label: "gratitude", Score: 0.4, Explanation: "The word grateful appears.", Emoji: "🙏"},
		},
	}
}

func newTestServer(analyzer Analyzer) *Server {
	gin.SetMode(gin.TestMode)
	return New(analyzer, nil, nil, Options{AppEnv: "test", SentimentBackend: "onnx"})
}

func postAnalyze(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeSuccess(t *testing.T) {
	analyzer := &mockAnalyzer{result: happyResult()}
	s := newTestServer(analyzer)

	rec := postAnalyze(s, `{"text": "I am so happy and grateful today!"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var got models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Positive", got.Sentiment.Label)
	assert.Greater(t, got.Sentiment.Score, 0.0)
	assert.NotEmpty(t, got.Summary)
	require.Len(t, got.Emotions, 2)
	assert.Equal(t, "joy", got.Emotions[0].Label)
	assert.Equal(t, 1, analyzer.calls)
}

func TestAnalyzeEmptyText(t *testing.T) {
	analyzer := &mockAnalyzer{result: happyResult()}
	s := newTestServer(analyzer)

	for _, body := range []string{`{"text": ""}`, `{"text": "   "}`, `{}`, `{"text": "\n\t"}`} {
		rec := postAnalyze(s, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		assert.JSONEq(t, `{"error": "No text provided."}`, rec.Body.String())
	}
	assert.Zero(t, analyzer.calls, "classifiers must not run for empty input")
}

func TestAnalyzeMalformedBody(t *testing.T) {
	analyzer := &mockAnalyzer{result: happyResult()}
	s := newTestServer(analyzer)

	rec := postAnalyze(s, `this is not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "No text provided."}`, rec.Body.String())
	assert.Zero(t, analyzer.calls)
}

func TestAnalyzePipelineError(t *testing.T) {
	analyzer := &mockAnalyzer{err: errors.New("model exploded")}
	s := newTestServer(analyzer)

	rec := postAnalyze(s, `{"text": "some text"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "An internal error occurred during analysis."}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "model exploded")
}

func TestAnalyzeURLOnlyTextSucceeds(t *testing.T) {
	analyzer := &mockAnalyzer{result: happyResult()}
	s := newTestServer(analyzer)

	rec := postAnalyze(s, `{"text": "https://example.com"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, analyzer.calls)
}

func TestAnalyzeEmptyTextErrorMapsToBadRequest(t *testing.T) {
	analyzer := &mockAnalyzer{err: pipeline.ErrEmptyText}
	s := newTestServer(analyzer)

	rec := postAnalyze(s, `{"text": "some text"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "No text provided."}`, rec.Body.String())
}

func TestAnalyzePanicRecovered(t *testing.T) {
	s := newTestServer(&panickingAnalyzer{})

	rec := postAnalyze(s, `{"text": "some text"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "An internal error occurred during analysis."}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "nil map entry")
}

func TestAnalyzeCORSAllowsAllOrigins(t *testing.T) {
	s := newTestServer(&mockAnalyzer{result: happyResult()})

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(`{"text": "hi there"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&mockAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
