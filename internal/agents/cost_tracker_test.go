package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/adapters/ai"
)

func flashModelInfo() ai.ModelInfo {
	return ai.ModelInfo{
		Provider:        ai.ProviderNameGoogle,
		Name:            "gemini-2.5-flash",
		InputCostPer1K:  0.0003,
		OutputCostPer1K: 0.0025,
	}
}

func proModelInfo() ai.ModelInfo {
	return ai.ModelInfo{
		Provider:        ai.ProviderNameGoogle,
		Name:            "gemini-2.5-pro",
		InputCostPer1K:  0.00125,
		OutputCostPer1K: 0.01,
	}
}

func TestCalculateCost(t *testing.T) {
	assert.InDelta(t, 0.0028, CalculateCost(flashModelInfo(), 1000, 1000), 1e-9)
	assert.InDelta(t, 0.0003*1.5+0.0025*0.5, CalculateCost(flashModelInfo(), 1500, 500), 1e-9)
	assert.Zero(t, CalculateCost(flashModelInfo(), 0, 0))
}

func TestRecordUsageAccumulates(t *testing.T) {
	tracker := NewCostTracker()
	tracker.RecordUsage(flashModelInfo(), 1000, 200)
	tracker.RecordUsage(flashModelInfo(), 2000, 300)

	cost, ok := tracker.GetCost("google", "gemini-2.5-flash")
	require.True(t, ok)

	assert.Equal(t, int64(3000), cost.InputTokens)
	assert.Equal(t, int64(500), cost.OutputTokens)
	assert.Equal(t, int64(2), cost.CallCount)
	assert.InDelta(t, 0.0003*3+0.0025*0.5, cost.TotalCostUSD, 1e-9)
}

func TestGetCostUnknownModel(t *testing.T) {
	tracker := NewCostTracker()

	_, ok := tracker.GetCost("google", "gemini-2.5-flash")
	assert.False(t, ok)
}

func TestGetAllCostsSortedByKey(t *testing.T) {
	tracker := NewCostTracker()
	tracker.RecordUsage(proModelInfo(), 100, 100)
	tracker.RecordUsage(flashModelInfo(), 100, 100)

	all := tracker.GetAllCosts()
	require.Len(t, all, 2)

	assert.Equal(t, "gemini-2.5-flash", all[0].Model)
	assert.Equal(t, "gemini-2.5-pro", all[1].Model)
}

func TestTotalCostAndReset(t *testing.T) {
	tracker := NewCostTracker()
	tracker.RecordUsage(flashModelInfo(), 1000, 1000)
	tracker.RecordUsage(proModelInfo(), 1000, 1000)

	assert.InDelta(t, 0.0028+0.01125, tracker.TotalCost(), 1e-9)

	tracker.Reset()
	assert.Zero(t, tracker.TotalCost())
	assert.Empty(t, tracker.GetAllCosts())
}
