package agents

import (
	"context"

	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/tool"
	"google.golang.org/adk/tool/agenttool"
	"google.golang.org/genai"

	"finadvisor/internal/adapters/ai"
	"finadvisor/internal/agents/callbacks"
	"finadvisor/internal/tools"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

// FactoryDeps carries the services agent construction needs.
type FactoryDeps struct {
	AIRegistry   *ai.ProviderRegistry
	ToolRegistry *tools.Registry
	// GeminiAPIKey authenticates the Google model binding. When empty
	// the genai client falls back to its own credential discovery.
	GeminiAPIKey string
	Log          *logger.Logger
}

// Factory builds advisory agents from declarative configs.
type Factory struct {
	deps FactoryDeps
	log  *logger.Logger
}

// NewFactory validates dependencies and returns an agent factory.
func NewFactory(deps FactoryDeps) (*Factory, error) {
	if deps.AIRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "ai provider registry is required")
	}
	if deps.ToolRegistry == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "tool registry is required")
	}
	log := deps.Log
	if log == nil {
		log = logger.Get()
	}
	return &Factory{deps: deps, log: log.With("component", "agent_factory")}, nil
}

// CreateAgent builds a single LLM agent from its config. Tools are
// resolved from the registry by the names listed in the config.
func (f *Factory) CreateAgent(ctx context.Context, cfg AgentConfig) (agent.Agent, error) {
	toolList, err := f.deps.ToolRegistry.Resolve(cfg.Tools...)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving tools for agent %s", cfg.Name)
	}
	return f.build(ctx, cfg, toolList)
}

// CreateAdvisor assembles the four analysts and the coordinating
// advisor that drives them as agent tools alongside the report tool.
func (f *Factory) CreateAdvisor(ctx context.Context, provider, model string) (agent.Agent, error) {
	coordTools := make([]tool.Tool, 0, len(AnalystTypes())+1)
	for _, analystType := range AnalystTypes() {
		cfg, ok := DefaultAgentConfigs[analystType]
		if !ok {
			return nil, errors.Wrapf(errors.ErrAgentNotFound, "no config for agent type %s", analystType)
		}
		cfg.AIProvider = provider
		cfg.Model = model

		analyst, err := f.CreateAgent(ctx, cfg)
		if err != nil {
			return nil, err
		}
		coordTools = append(coordTools, agenttool.New(analyst, nil))
	}

	coordCfg, ok := DefaultAgentConfigs[AgentCoordinator]
	if !ok {
		return nil, errors.Wrapf(errors.ErrAgentNotFound, "no config for agent type %s", AgentCoordinator)
	}
	coordCfg.AIProvider = provider
	coordCfg.Model = model

	reportTools, err := f.deps.ToolRegistry.Resolve(coordCfg.Tools...)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving tools for agent %s", coordCfg.Name)
	}
	coordTools = append(coordTools, reportTools...)

	return f.build(ctx, coordCfg, coordTools)
}

func (f *Factory) build(ctx context.Context, cfg AgentConfig, toolList []tool.Tool) (agent.Agent, error) {
	modelInfo, err := f.deps.AIRegistry.ResolveModel(ctx, cfg.AIProvider, cfg.Model)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving model %s/%s for agent %s", cfg.AIProvider, cfg.Model, cfg.Name)
	}

	llmModel, err := f.modelBinding(ctx, modelInfo)
	if err != nil {
		return nil, errors.Wrapf(err, "binding model %s for agent %s", modelInfo.Name, cfg.Name)
	}

	a, err := llmagent.New(llmagent.Config{
		Name:        cfg.Name,
		Description: cfg.Description,
		Model:       llmModel,
		Instruction: cfg.Instruction,
		Tools:       toolList,
		OutputKey:   cfg.OutputKey,

		BeforeAgentCallbacks: []agent.BeforeAgentCallback{callbacks.BeforeAgentLifecycle()},
		AfterAgentCallbacks:  []agent.AfterAgentCallback{callbacks.AfterAgentLifecycle()},
		AfterModelCallbacks:  []llmagent.AfterModelCallback{callbacks.AfterModelAccounting()},
		BeforeToolCallbacks:  []llmagent.BeforeToolCallback{callbacks.BeforeToolAudit()},
		AfterToolCallbacks:   []llmagent.AfterToolCallback{callbacks.AfterToolAudit()},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "building agent %s", cfg.Name)
	}

	f.log.Debugf("Created agent %s (model=%s, tools=%d)", cfg.Name, modelInfo.Name, len(toolList))
	return a, nil
}

func (f *Factory) modelBinding(ctx context.Context, modelInfo ai.ModelInfo) (model.LLM, error) {
	switch modelInfo.Provider {
	case ai.ProviderNameGoogle:
		return gemini.NewModel(ctx, modelInfo.Name, &genai.ClientConfig{
			APIKey: f.deps.GeminiAPIKey,
		})
	default:
		return nil, errors.Wrapf(errors.ErrModelNotFound, "no model binding for provider %s", modelInfo.Provider)
	}
}
