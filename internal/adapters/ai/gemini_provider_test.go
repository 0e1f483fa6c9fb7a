package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/pkg/errors"
)

func TestGeminiProviderGetModel(t *testing.T) {
	p := NewGeminiProvider("key", 30*time.Second)

	info, err := p.GetModel(context.Background(), "gemini-2.5-flash")
	require.NoError(t, err)

	assert.Equal(t, ProviderNameGoogle, info.Provider)
	assert.Equal(t, "gemini-2.5", info.Family)
	assert.True(t, info.SupportsTools)
	assert.Positive(t, info.InputCostPer1K)
	assert.Positive(t, info.OutputCostPer1K)
}

func TestGeminiProviderGetModelCaseInsensitive(t *testing.T) {
	p := NewGeminiProvider("key", 30*time.Second)

	info, err := p.GetModel(context.Background(), "Gemini-2.5-Pro")
	require.NoError(t, err)
	assert.Equal(t, string(ModelGeminiPro), info.Name)
}

func TestGeminiProviderUnknownModel(t *testing.T) {
	p := NewGeminiProvider("key", 30*time.Second)

	_, err := p.GetModel(context.Background(), "gemini-0.1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrModelNotFound))
}

func TestGeminiProviderListModels(t *testing.T) {
	p := NewGeminiProvider("key", 30*time.Second)

	models, err := p.ListModels(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, models)

	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, string(ModelGeminiFlash))
	assert.Contains(t, names, string(ModelGeminiPro))
}

func TestProviderNameIsValid(t *testing.T) {
	assert.True(t, ProviderNameGoogle.IsValid())
	assert.False(t, ProviderName("openai").IsValid())
	assert.False(t, ProviderName("").IsValid())
}
