package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finadvisor/internal/adapters/ai"
	"finadvisor/pkg/errors"
)

type failingLimiter struct{}

func (failingLimiter) Wait(context.Context) error { return assert.AnError }
func (failingLimiter) Allow() bool                { return false }
func (failingLimiter) Limit() float64             { return 0 }

func newTestRunner(t *testing.T, limiter ai.RateLimiter) *AdvisorRunner {
	t.Helper()

	factory := newTestFactory(t)
	advisor, err := factory.CreateAdvisor(context.Background(),
		ai.ProviderNameGoogle.String(), string(ai.ModelGeminiFlash))
	require.NoError(t, err)

	r, err := NewAdvisorRunner(RunnerConfig{
		Agent:       advisor,
		ModelInfo:   flashModelInfo(),
		RateLimiter: limiter,
	})
	require.NoError(t, err)
	return r
}

func TestNewAdvisorRunnerRequiresAgent(t *testing.T) {
	_, err := NewAdvisorRunner(RunnerConfig{})
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestNewAdvisorRunnerDefaults(t *testing.T) {
	r := newTestRunner(t, nil)

	assert.Equal(t, defaultAppName, r.appName)
	assert.Equal(t, defaultRunLimit, r.timeout)
	assert.NotNil(t, r.rateLimiter)
	assert.NotNil(t, r.costTracker)
	assert.Zero(t, r.TotalCost())
}

func TestExecuteRequiresRequest(t *testing.T) {
	r := newTestRunner(t, nil)

	_, err := r.Execute(context.Background(), ExecutionInput{Request: "   "})
	require.ErrorIs(t, err, errors.ErrInvalidInput)
}

func TestExecuteStopsOnRateLimiterFailure(t *testing.T) {
	r := newTestRunner(t, failingLimiter{})

	_, err := r.Execute(context.Background(), ExecutionInput{
		UserID:  "user-1",
		Request: "AAPL 투자 의견을 알려줘",
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "rate limit")
}
