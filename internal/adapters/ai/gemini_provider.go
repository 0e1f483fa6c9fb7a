package ai

import (
	"context"
	"strings"
	"time"

	"finadvisor/pkg/errors"
)

// GeminiProvider implements Google Gemini metadata.
type GeminiProvider struct {
	apiKey  string
	timeout time.Duration
	models  []ModelInfo
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(apiKey string, timeout time.Duration) *GeminiProvider {
	return &GeminiProvider{apiKey: apiKey, timeout: timeout, models: geminiModels()}
}

// Name returns provider name.
func (p *GeminiProvider) Name() string { return ProviderNameGoogle.String() }

// GetModel returns model info by name.
func (p *GeminiProvider) GetModel(_ context.Context, model string) (ModelInfo, error) {
	for _, m := range p.models {
		if strings.EqualFold(m.Name, model) {
			return m, nil
		}
	}
	return ModelInfo{}, errors.Wrapf(errors.ErrModelNotFound, "gemini model %s not found", model)
}

// ListModels lists available models.
func (p *GeminiProvider) ListModels(_ context.Context) ([]ModelInfo, error) {
	return p.models, nil
}

// SupportsStreaming indicates streaming support.
func (p *GeminiProvider) SupportsStreaming() bool { return true }

// SupportsTools indicates tool calling support.
func (p *GeminiProvider) SupportsTools() bool { return true }

func geminiModels() []ModelInfo {
	return []ModelInfo{
		{
			Provider:          ProviderNameGoogle,
			Name:              string(ModelGeminiFlash),
			Family:            "gemini-2.5",
			MaxTokens:         1048576,
			InputCostPer1K:    0.0003,
			OutputCostPer1K:   0.0025,
			SupportsImages:    true,
			SupportsAudio:     true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameGoogle,
			Name:              string(ModelGeminiPro),
			Family:            "gemini-2.5",
			MaxTokens:         1048576,
			InputCostPer1K:    0.00125,
			OutputCostPer1K:   0.01,
			SupportsImages:    true,
			SupportsAudio:     true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
		{
			Provider:          ProviderNameGoogle,
			Name:              string(ModelGeminiLite),
			Family:            "gemini-2.0",
			MaxTokens:         1048576,
			InputCostPer1K:    0.0001,
			OutputCostPer1K:   0.0004,
			SupportsImages:    true,
			SupportsAudio:     true,
			SupportsTools:     true,
			SupportsStreaming: true,
		},
	}
}
