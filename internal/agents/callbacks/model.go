package callbacks

import (
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"

	"finadvisor/internal/agents/state"
	"finadvisor/pkg/logger"
)

// AfterModelAccounting records the token usage of each model response
// in temp state so cost tracking can read it without re-parsing events.
func AfterModelAccounting() llmagent.AfterModelCallback {
	return func(ctx agent.CallbackContext, resp *model.LLMResponse, respErr error) (*model.LLMResponse, error) {
		log := logger.Get().With("component", "model_accounting", "agent", ctx.AgentName())

		if respErr != nil {
			log.Warnf("Model call failed: %v", respErr)
			return nil, nil
		}
		if resp == nil || resp.UsageMetadata == nil {
			return nil, nil
		}

		prompt := int(resp.UsageMetadata.PromptTokenCount)
		completion := int(resp.UsageMetadata.CandidatesTokenCount)
		if err := state.SetPromptTokens(ctx.State(), prompt); err != nil {
			log.Warnf("Failed to record prompt tokens: %v", err)
		}
		if err := state.SetCompletionTokens(ctx.State(), completion); err != nil {
			log.Warnf("Failed to record completion tokens: %v", err)
		}

		log.Debugf("Model call used %d prompt + %d completion tokens", prompt, completion)
		return nil, nil
	}
}
