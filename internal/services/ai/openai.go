package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/campaignkit/marketing-api/internal/logger"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL points at the local inference server's OpenAI-compatible API
	DefaultBaseURL = "http://localhost:8000/v1"
	// DefaultModel is the model name the local server exposes
	DefaultModel = "phi-3-mini-4k-instruct"
	// DefaultTimeout bounds a single inference round trip
	DefaultTimeout = 120 * time.Second

	// ErrNoChoicesInResponse is returned when the API response has no choices
	ErrNoChoicesInResponse = "no choices in response"
)

// OpenAIProvider implements TextGenerator against an OpenAI-compatible
// completions API. The model is hosted locally; the server loads it once and
// this client holds no per-call state, so concurrent calls are safe.
type OpenAIProvider struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	debugMode bool
}

var _ TextGenerator = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider for the given server and model
func NewOpenAIProvider(apiKey, baseURL, model string, log *zap.Logger, debugMode bool) *OpenAIProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	httpClient := &http.Client{
		Timeout: DefaultTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &OpenAIProvider{
		client:    client,
		model:     model,
		logger:    log,
		debugMode: debugMode,
	}
}

// Generate runs one sampling-mode completion and returns the raw text
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	params = params.withDefaults()

	req := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(p.model),
		Messages:    []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		MaxTokens:   openai.Int(int64(params.MaxNewTokens)),
		Temperature: openai.Float(params.Temperature),
		TopP:        openai.Float(params.TopP),
	}

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_request",
			zap.String("model", p.model),
			zap.Int("max_new_tokens", params.MaxNewTokens),
			zap.Float64("temperature", params.Temperature),
			zap.Float64("top_p", params.TopP),
			zap.String("prompt_preview", logger.SanitizePreview(prompt)),
		)
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, req)
	latency := time.Since(start)

	if err != nil {
		if p.logger != nil && p.debugMode {
			p.logger.Debug("llm_api_error",
				zap.String("model", p.model),
				zap.Error(err),
				zap.Int64("latency_ms", latency.Milliseconds()),
			)
		}
		return "", fmt.Errorf("failed to generate completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New(ErrNoChoicesInResponse)
	}

	content := resp.Choices[0].Message.Content

	if p.logger != nil && p.debugMode {
		p.logger.Debug("llm_api_response",
			zap.String("model", p.model),
			zap.Int("response_length", len(content)),
			zap.String("response_preview", logger.SanitizePreview(content)),
			zap.Int64("latency_ms", latency.Milliseconds()),
		)
	}

	return content, nil
}
