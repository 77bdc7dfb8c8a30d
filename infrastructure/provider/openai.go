package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/adavadkardhruv13/Polaris-backend/internal/config"
)

// OpenAIProvider implements TextGenerator against any OpenAI-compatible API.
type OpenAIProvider struct {
	client        *openai.Client
	chatModel     string
	maxRetries    int
	initialDelay  time.Duration
	backoffFactor float64
}

// OpenAIProviderOption is a functional option for OpenAIProvider.
type OpenAIProviderOption func(*OpenAIProvider)

// WithChatModel sets the chat completion model.
func WithChatModel(model string) OpenAIProviderOption {
	return func(p *OpenAIProvider) { p.chatModel = model }
}

// WithOpenAIMaxRetries sets the maximum retry count.
func WithOpenAIMaxRetries(n int) OpenAIProviderOption {
	return func(p *OpenAIProvider) { p.maxRetries = n }
}

// WithOpenAIInitialDelay sets the initial retry delay.
func WithOpenAIInitialDelay(d time.Duration) OpenAIProviderOption {
	return func(p *OpenAIProvider) { p.initialDelay = d }
}

// WithOpenAIBackoffFactor sets the backoff multiplier.
func WithOpenAIBackoffFactor(f float64) OpenAIProviderOption {
	return func(p *OpenAIProvider) { p.backoffFactor = f }
}

// NewOpenAIProvider creates a new OpenAI provider. Retries are disabled by
// default: a failed completion is reported to the caller, never repeated
// identically. WithOpenAIMaxRetries opts in to the backoff loop.
func NewOpenAIProvider(apiKey string, opts ...OpenAIProviderOption) *OpenAIProvider {
	p := &OpenAIProvider{
		client:        openai.NewClient(apiKey),
		chatModel:     "gpt-4.1",
		maxRetries:    0,
		initialDelay:  2 * time.Second,
		backoffFactor: 2.0,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewOpenAIProviderFromEndpoint creates a provider from endpoint configuration.
func NewOpenAIProviderFromEndpoint(endpoint config.Endpoint) *OpenAIProvider {
	cfg := openai.DefaultConfig(endpoint.APIKey())

	if endpoint.BaseURL() != "" {
		cfg.BaseURL = endpoint.BaseURL()
	}
	if endpoint.Timeout() > 0 {
		cfg.HTTPClient = &http.Client{
			Timeout: endpoint.Timeout(),
		}
	}

	return &OpenAIProvider{
		client:        openai.NewClientWithConfig(cfg),
		chatModel:     endpoint.Model(),
		maxRetries:    endpoint.MaxRetries(),
		initialDelay:  endpoint.InitialDelay(),
		backoffFactor: endpoint.BackoffFactor(),
	}
}

// ChatCompletion generates a chat completion.
func (p *OpenAIProvider) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (ChatCompletionResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages()))
	for i, m := range req.Messages() {
		messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role(),
			Content: m.Content(),
		}
	}

	openaiReq := openai.ChatCompletionRequest{
		Model:    p.chatModel,
		Messages: messages,
	}

	if req.MaxTokens() > 0 {
		openaiReq.MaxTokens = req.MaxTokens()
	}
	if req.Temperature() > 0 {
		openaiReq.Temperature = float32(req.Temperature())
	} else {
		// The client omits a zero temperature, so the smallest non-zero
		// value is sent to pin deterministic output.
		openaiReq.Temperature = math.SmallestNonzeroFloat32
	}
	if req.JSONResponse() {
		openaiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var resp openai.ChatCompletionResponse
	var err error

	err = p.withRetry(ctx, func() error {
		resp, err = p.client.CreateChatCompletion(ctx, openaiReq)
		return err
	})
	if err != nil {
		return ChatCompletionResponse{}, p.wrapError("chat_completion", err)
	}

	if len(resp.Choices) == 0 {
		return ChatCompletionResponse{}, NewProviderError(
			"chat_completion", 0, "no choices in response", nil,
		)
	}

	usage := NewUsage(
		resp.Usage.PromptTokens,
		resp.Usage.CompletionTokens,
		resp.Usage.TotalTokens,
	)

	return NewChatCompletionResponse(
		resp.Choices[0].Message.Content,
		string(resp.Choices[0].FinishReason),
		usage,
	), nil
}

// withRetry executes the function, retrying with exponential backoff when
// maxRetries is positive. With maxRetries zero the function runs exactly
// once and its error is returned as-is.
func (p *OpenAIProvider) withRetry(ctx context.Context, fn func() error) error {
	delay := p.initialDelay
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !p.isRetryable(lastErr) {
			return lastErr
		}

		if attempt < p.maxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * p.backoffFactor)
			}
		}
	}

	if p.maxRetries > 0 {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return lastErr
}

// isRetryable determines if an error should be retried.
func (p *OpenAIProvider) isRetryable(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		// Network errors are retryable
		return true
	}

	return false
}

// wrapError wraps an OpenAI error into a ProviderError.
func (p *OpenAIProvider) wrapError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return NewProviderError(operation, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return NewProviderError(operation, reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return NewProviderError(operation, 0, err.Error(), err)
}

// Ensure OpenAIProvider implements the interface.
var _ TextGenerator = (*OpenAIProvider)(nil)
