package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletionRequest(t *testing.T) {
	req := NewChatCompletionRequest([]Message{
		SystemMessage("You are a pitch analyst."),
		UserMessage("Analyze this pitch."),
	}).WithMaxTokens(4000).WithTemperature(0).WithJSONResponse()

	msgs := req.Messages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].Role())
	assert.Equal(t, "user", msgs[1].Role())
	assert.Equal(t, 4000, req.MaxTokens())
	assert.Equal(t, float64(0), req.Temperature())
	assert.True(t, req.JSONResponse())
}

func TestChatCompletionRequest_MessagesAreCopied(t *testing.T) {
	original := []Message{UserMessage("hello")}
	req := NewChatCompletionRequest(original)

	original[0] = UserMessage("mutated")
	assert.Equal(t, "hello", req.Messages()[0].Content())
}

func TestProviderError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewProviderError("chat_completion", 429, "too many requests", cause)

	assert.Equal(t, "chat_completion", err.Operation())
	assert.Equal(t, 429, err.StatusCode())
	assert.True(t, err.IsRateLimited())
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "too many requests")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestProviderError_NoCause(t *testing.T) {
	err := NewProviderError("chat_completion", 0, "no choices in response", nil)

	assert.Equal(t, "no choices in response", err.Error())
	assert.False(t, err.IsRateLimited())
}

func TestProviderError_SentinelMatching(t *testing.T) {
	rateLimited := NewProviderError("chat_completion", 429, "too many requests", nil)
	serverErr := NewProviderError("chat_completion", 500, "model overloaded", nil)

	assert.ErrorIs(t, rateLimited, ErrRateLimited)
	assert.ErrorIs(t, rateLimited, ErrProviderError)
	assert.ErrorIs(t, serverErr, ErrProviderError)
	assert.NotErrorIs(t, serverErr, ErrRateLimited)
}

func TestUsage(t *testing.T) {
	u := NewUsage(100, 50, 150)

	assert.Equal(t, 100, u.PromptTokens())
	assert.Equal(t, 50, u.CompletionTokens())
	assert.Equal(t, 150, u.TotalTokens())
}

func TestNewOpenAIProviderDefaults(t *testing.T) {
	p := NewOpenAIProvider("sk-test", WithChatModel("gpt-4.1-mini"))

	assert.Equal(t, "gpt-4.1-mini", p.chatModel)
	assert.Zero(t, p.maxRetries)
}

func TestWithRetry_DisabledRunsOnce(t *testing.T) {
	p := NewOpenAIProvider("sk-test")

	calls := 0
	rateLimited := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}
	err := p.withRetry(context.Background(), func() error {
		calls++
		return rateLimited
	})

	require.ErrorIs(t, err, rateLimited)
	assert.Equal(t, 1, calls)
	assert.NotContains(t, err.Error(), "max retries")
}

func TestWithRetry_OptIn(t *testing.T) {
	p := NewOpenAIProvider("sk-test",
		WithOpenAIMaxRetries(2),
		WithOpenAIInitialDelay(time.Millisecond),
	)

	calls := 0
	err := p.withRetry(context.Background(), func() error {
		calls++
		return &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "max retries")
}

func TestWithRetry_NonRetryableStopsImmediately(t *testing.T) {
	p := NewOpenAIProvider("sk-test",
		WithOpenAIMaxRetries(2),
		WithOpenAIInitialDelay(time.Millisecond),
	)

	calls := 0
	err := p.withRetry(context.Background(), func() error {
		calls++
		return &openai.APIError{HTTPStatusCode: http.StatusUnauthorized}
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
