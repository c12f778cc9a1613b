package ai

import (
	"context"
	"strings"

	"github.com/campaignkit/marketing-api/internal/logger"
	"github.com/campaignkit/marketing-api/internal/metrics"
	"go.uber.org/zap"
)

// RejectionKind tags the guardrail that rejected a generation
type RejectionKind string

const (
	RejectionEmptyPrompt    RejectionKind = "empty_prompt"
	RejectionMetaLeakage    RejectionKind = "meta_leakage"
	RejectionNearDuplicate  RejectionKind = "near_duplicate"
	RejectionInferenceError RejectionKind = "inference_error"
)

// rejectionMessages are the user-displayable reasons per kind
var rejectionMessages = map[RejectionKind]string{
	RejectionEmptyPrompt:    "[Error] Prompt is empty. Please provide a meaningful request.",
	RejectionMetaLeakage:    "[Error] Insufficient or unclear prompt content. Please rephrase or provide more specific details.",
	RejectionNearDuplicate:  "[Error] Generated output too similar to input. Add more detail.",
	RejectionInferenceError: "[Error] Exception during generation.",
}

// metaMarkers flag outputs that echo instructions instead of fulfilling them
var metaMarkers = []string{
	"write", "create", "include", "generate", "describe",
	"your task", "the prompt should", "you are tasked to",
}

// nearDuplicateMaxLen is the length under which a prompt-substring output is rejected
const nearDuplicateMaxLen = 25

// Result is the outcome of a generation: either text or a tagged rejection.
// Callers branch on Rejected rather than on errors.
type Result struct {
	Text string
	Kind RejectionKind
}

// Rejected reports whether the generation was rejected
func (r Result) Rejected() bool {
	return r.Kind != ""
}

// Message returns the text for display: the generated copy on success, the
// rejection reason otherwise.
func (r Result) Message() string {
	if r.Rejected() {
		return rejectionMessages[r.Kind]
	}
	return r.Text
}

func reject(kind RejectionKind) Result {
	return Result{Kind: kind}
}

// Generator validates prompts, runs model inference, and screens the output.
// Inference faults become inference_error results; nothing propagates to the caller.
type Generator struct {
	provider TextGenerator
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

// NewGenerator creates a generator over the given model provider
func NewGenerator(provider TextGenerator, log *zap.Logger, m *metrics.Metrics) *Generator {
	return &Generator{provider: provider, logger: log, metrics: m}
}

// Generate runs the guardrail pipeline: empty-prompt check, inference, echo
// stripping, meta-leakage screening, near-duplicate screening.
func (g *Generator) Generate(ctx context.Context, promptText string, params GenerationParams) Result {
	g.metrics.RequestCount.Inc()

	trimmedPrompt := strings.TrimSpace(promptText)
	if trimmedPrompt == "" {
		g.metrics.ErrorCount.Inc()
		g.logger.Error("prompt_is_empty")
		return reject(RejectionEmptyPrompt)
	}

	raw, err := g.provider.Generate(ctx, promptText, params)
	if err != nil {
		g.metrics.ErrorCount.Inc()
		g.logger.Error("inference_failed", zap.Error(err))
		return reject(RejectionInferenceError)
	}

	output := strings.TrimSpace(raw)
	if strings.HasPrefix(output, trimmedPrompt) {
		output = strings.TrimSpace(output[len(trimmedPrompt):])
	}

	outputLower := strings.ToLower(output)
	if output == "" || startsWithMetaMarker(outputLower) {
		g.metrics.ErrorCount.Inc()
		g.logger.Error("output_insufficient_or_unclear",
			zap.String("prompt_preview", logger.SanitizePreview(promptText)),
		)
		return reject(RejectionMetaLeakage)
	}

	if len(output) < nearDuplicateMaxLen && strings.Contains(strings.ToLower(trimmedPrompt), outputLower) {
		g.metrics.ErrorCount.Inc()
		g.logger.Error("output_too_similar_to_input",
			zap.String("prompt_preview", logger.SanitizePreview(promptText)),
		)
		return reject(RejectionNearDuplicate)
	}

	g.logger.Info("generated_response",
		zap.String("prompt_preview", logger.SanitizePreview(promptText)),
		zap.Int("output_length", len(output)),
	)

	return Result{Text: output}
}

func startsWithMetaMarker(outputLower string) bool {
	for _, marker := range metaMarkers {
		if strings.HasPrefix(outputLower, marker) {
			return true
		}
	}
	return false
}
