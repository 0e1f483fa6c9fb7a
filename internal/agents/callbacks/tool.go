package callbacks

import (
	"time"

	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/tool"

	"finadvisor/internal/agents/state"
	"finadvisor/pkg/logger"
)

// BeforeToolAudit stamps the tool start time for latency measurement.
func BeforeToolAudit() llmagent.BeforeToolCallback {
	return func(ctx tool.Context, t tool.Tool, args map[string]any) (map[string]any, error) {
		log := logger.Get().With("component", "tool_audit", "tool", t.Name())

		if err := state.SetToolStart(ctx.State(), time.Now()); err != nil {
			log.Warnf("Failed to record tool start: %v", err)
		}
		log.Debugf("Tool invoked with %d arguments (session=%s)", len(args), ctx.SessionID())
		return nil, nil
	}
}

// AfterToolAudit logs the outcome of every tool call. Execution metrics
// are recorded by the tool middleware, not here.
func AfterToolAudit() llmagent.AfterToolCallback {
	return func(ctx tool.Context, t tool.Tool, args, result map[string]any, err error) (map[string]any, error) {
		log := logger.Get().With("component", "tool_audit", "tool", t.Name())

		var latency time.Duration
		if start, ok := state.ToolStart(ctx.State()); ok {
			latency = time.Since(start)
		}

		if err != nil {
			log.Errorf("Tool failed after %s: %v", latency.Round(time.Millisecond), err)
			return nil, nil
		}
		log.Debugf("Tool completed in %s", latency.Round(time.Millisecond))
		return nil, nil
	}
}
