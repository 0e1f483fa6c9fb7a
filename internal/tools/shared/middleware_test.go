package shared

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"google.golang.org/adk/tool"

	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
)

// testContext reuses the timeout overlay to satisfy tool.Context in tests:
// only the embedded context methods are ever called by the middleware.
func testContext(ctx context.Context) tool.Context {
	return timeoutContext{std: ctx}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		calls++
		if calls < 3 {
			return nil, errors.Newf("transient %d", calls)
		}
		return map[string]interface{}{"ok": true}, nil
	}

	wrapped := wrapWithRetry(RetryMiddleware{Attempts: 3, Backoff: time.Millisecond}, fn)

	result, err := wrapped(testContext(context.Background()), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ok": true}, result)
	assert.Equal(t, 3, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		calls++
		return nil, errors.Newf("always fails")
	}

	wrapped := wrapWithRetry(RetryMiddleware{Attempts: 2, Backoff: time.Millisecond}, fn)

	_, err := wrapped(testContext(context.Background()), nil)
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		calls++
		return nil, errors.Newf("fail")
	}

	wrapped := wrapWithRetry(RetryMiddleware{}, fn)

	_, err := wrapped(testContext(context.Background()), nil)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryAbortsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		calls++
		cancel()
		return nil, errors.Newf("fail then cancel")
	}

	wrapped := wrapWithRetry(RetryMiddleware{Attempts: 5, Backoff: time.Hour}, fn)

	done := make(chan struct{})
	var err error
	go func() {
		_, err = wrapped(testContext(ctx), nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not abort on context cancellation")
	}

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestTimeoutDeadlineReachesFunc(t *testing.T) {
	fn := func(ctx tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		_, ok := ctx.Deadline()
		require.True(t, ok, "timeout middleware must set a deadline")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return map[string]interface{}{"ok": true}, nil
		}
	}

	wrapped := wrapWithTimeout(TimeoutMiddleware{Timeout: 50 * time.Millisecond}, fn)

	start := time.Now()
	_, err := wrapped(testContext(context.Background()), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestTimeoutLeavesFastFuncAlone(t *testing.T) {
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"ok": true}, nil
	}

	wrapped := wrapWithTimeout(TimeoutMiddleware{Timeout: time.Second}, fn)

	result, err := wrapped(testContext(context.Background()), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ok": true}, result)
}

func TestStatsPassesThroughResultAndError(t *testing.T) {
	okFn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"ok": true}, nil
	}
	failFn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		return nil, errors.Newf("boom")
	}

	result, err := wrapWithStats("ok_tool", nil, okFn)(testContext(context.Background()), nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"ok": true}, result)

	_, err = wrapWithStats("fail_tool", nil, failFn)(testContext(context.Background()), nil)
	require.Error(t, err)
}

func TestStatsCountsEachExecutionOnce(t *testing.T) {
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"ok": true}, nil
	}

	counter := metrics.ToolExecutions.WithLabelValues("counted_tool", "success")
	before := testutil.ToFloat64(counter)

	wrapped := wrapWithStats("counted_tool", nil, fn)
	_, err := wrapped(testContext(context.Background()), nil)
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestBuilderProducesNamedTool(t *testing.T) {
	fn := func(_ tool.Context, _ map[string]interface{}) (map[string]interface{}, error) {
		return map[string]interface{}{"ok": true}, nil
	}

	built := NewToolBuilder("sample_tool", "설명", fn, Deps{}).
		WithRetry(2, time.Millisecond).
		WithTimeout(time.Second).
		WithStats().
		Build()

	require.NotNil(t, built)
	assert.Equal(t, "sample_tool", built.Name())
	assert.Equal(t, "설명", built.Description())
	assert.False(t, built.IsLongRunning())
}
