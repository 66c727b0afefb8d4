package refine

import (
	"context"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Remote calls hold the caller's connection open for their full duration,
// so the client enforces a hard timeout.
const remoteRequestTimeout = 10 * time.Second

// ChatClient is the slice of the chat-completion client the strategies use,
// kept narrow so tests can stub it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewGroqClient builds a chat-completion client against Groq's
// OpenAI-compatible endpoint.
func NewGroqClient(apiKey, baseURL string) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL
	config.HTTPClient = &http.Client{
		Timeout: remoteRequestTimeout,
	}

	return openai.NewClientWithConfig(config)
}
