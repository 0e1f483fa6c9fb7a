package agents

import (
	"sort"
	"sync"

	"finadvisor/internal/adapters/ai"
)

// ModelCost accumulates usage for one provider/model pair.
type ModelCost struct {
	Provider     string
	Model        string
	InputTokens  int64
	OutputTokens int64
	TotalCostUSD float64
	CallCount    int64
}

// CostTracker aggregates model spend across advisory runs. Safe for
// concurrent use.
type CostTracker struct {
	mu    sync.RWMutex
	costs map[string]*ModelCost
}

// NewCostTracker returns an empty tracker.
func NewCostTracker() *CostTracker {
	return &CostTracker{costs: make(map[string]*ModelCost)}
}

// CalculateCost prices a single call against the model's per-1K rates.
func CalculateCost(modelInfo ai.ModelInfo, inputTokens, outputTokens int) float64 {
	inputCost := float64(inputTokens) / 1000 * modelInfo.InputCostPer1K
	outputCost := float64(outputTokens) / 1000 * modelInfo.OutputCostPer1K
	return inputCost + outputCost
}

// RecordUsage adds one call's token counts to the running totals.
func (t *CostTracker) RecordUsage(modelInfo ai.ModelInfo, inputTokens, outputTokens int) {
	key := modelInfo.Provider.String() + "/" + modelInfo.Name

	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.costs[key]
	if !ok {
		entry = &ModelCost{
			Provider: modelInfo.Provider.String(),
			Model:    modelInfo.Name,
		}
		t.costs[key] = entry
	}

	entry.InputTokens += int64(inputTokens)
	entry.OutputTokens += int64(outputTokens)
	entry.TotalCostUSD += CalculateCost(modelInfo, inputTokens, outputTokens)
	entry.CallCount++
}

// GetCost returns the accumulated cost for one provider/model pair.
func (t *CostTracker) GetCost(provider, model string) (ModelCost, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entry, ok := t.costs[provider+"/"+model]
	if !ok {
		return ModelCost{}, false
	}
	return *entry, true
}

// GetAllCosts returns a snapshot of every tracked model, sorted by
// provider/model key for stable output.
func (t *CostTracker) GetAllCosts() []ModelCost {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.costs))
	for key := range t.costs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]ModelCost, 0, len(keys))
	for _, key := range keys {
		out = append(out, *t.costs[key])
	}
	return out
}

// TotalCost sums spend across all models.
func (t *CostTracker) TotalCost() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var total float64
	for _, entry := range t.costs {
		total += entry.TotalCostUSD
	}
	return total
}

// Reset clears all accumulated usage.
func (t *CostTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.costs = make(map[string]*ModelCost)
}
