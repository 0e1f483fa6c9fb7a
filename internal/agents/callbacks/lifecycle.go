// Package callbacks provides cross-cutting hooks attached to every
// advisory agent: invocation timing, token accounting, and tool audit
// logging. The hooks only observe; none of them short-circuits the
// agent by returning content.
package callbacks

import (
	"time"

	"google.golang.org/adk/agent"
	"google.golang.org/genai"

	"finadvisor/internal/agents/state"
	"finadvisor/pkg/logger"
)

// BeforeAgentLifecycle stamps the invocation start and the user's most
// recent activity before the agent begins reasoning.
func BeforeAgentLifecycle() agent.BeforeAgentCallback {
	return func(ctx agent.CallbackContext) (*genai.Content, error) {
		log := logger.Get().With("component", "agent_lifecycle", "agent", ctx.AgentName())

		now := time.Now()
		if err := state.SetInvocationStart(ctx.State(), now); err != nil {
			log.Warnf("Failed to record invocation start: %v", err)
		}
		if err := state.SetUserLastActivity(ctx.State(), now); err != nil {
			log.Warnf("Failed to record user activity: %v", err)
		}

		log.Debugf("Agent invocation started (session=%s)", ctx.SessionID())
		return nil, nil
	}
}

// AfterAgentLifecycle logs how long the invocation ran.
func AfterAgentLifecycle() agent.AfterAgentCallback {
	return func(ctx agent.CallbackContext) (*genai.Content, error) {
		log := logger.Get().With("component", "agent_lifecycle", "agent", ctx.AgentName())

		if start, ok := state.InvocationStart(ctx.State()); ok {
			log.Infof("Agent invocation finished in %s", time.Since(start).Round(time.Millisecond))
		} else {
			log.Infof("Agent invocation finished")
		}
		return nil, nil
	}
}
