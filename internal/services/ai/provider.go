package ai

import (
	"context"
)

// GenerationParams control sampling for a single inference call
type GenerationParams struct {
	// MaxNewTokens caps the generated token count
	MaxNewTokens int
	// Temperature scales sampling randomness
	Temperature float64
	// TopP is the nucleus-sampling threshold
	TopP float64
}

const (
	// DefaultMaxNewTokens is the token budget when none is requested
	DefaultMaxNewTokens = 50
	// DefaultTemperature is the sampling temperature when none is requested
	DefaultTemperature = 0.5
	// DefaultTopP is the nucleus-sampling threshold when none is requested
	DefaultTopP = 0.9
)

// withDefaults fills zero-valued params
func (p GenerationParams) withDefaults() GenerationParams {
	if p.MaxNewTokens <= 0 {
		p.MaxNewTokens = DefaultMaxNewTokens
	}
	if p.Temperature <= 0 {
		p.Temperature = DefaultTemperature
	}
	if p.TopP <= 0 {
		p.TopP = DefaultTopP
	}
	return p
}

// TextGenerator is the interface to the underlying language model. The
// production implementation talks to a locally hosted OpenAI-compatible
// inference server; tests substitute stubs.
type TextGenerator interface {
	// Generate runs one sampling-mode inference call and returns the raw model output
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
