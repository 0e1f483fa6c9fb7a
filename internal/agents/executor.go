package agents

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"

	"finadvisor/internal/adapters/ai"
	"finadvisor/internal/metrics"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

const (
	defaultAppName  = "finadvisor"
	defaultUserID   = "local"
	defaultRunLimit = 5 * time.Minute
)

// ExecutionInput describes one advisory request.
type ExecutionInput struct {
	UserID string
	// Request is the user's question, e.g. a ticker plus investment goals.
	Request string
	// SessionID resumes an existing conversation; a fresh session is
	// created when empty.
	SessionID string
	// Timeout overrides the runner's default execution limit when >0.
	Timeout time.Duration
}

// ExecutionOutput summarizes a completed advisory run.
type ExecutionOutput struct {
	Answer        string
	SessionID     string
	InputTokens   int
	OutputTokens  int
	TokensUsed    int
	ToolCallCount int
	CostUSD       float64
	Duration      time.Duration
}

// RunnerConfig wires an assembled advisor agent into an executable
// runner.
type RunnerConfig struct {
	AppName        string
	Agent          agent.Agent
	SessionService session.Service
	ModelInfo      ai.ModelInfo
	RateLimiter    ai.RateLimiter
	CostTracker    *CostTracker
	DefaultTimeout time.Duration
	Log            *logger.Logger
}

// AdvisorRunner executes advisory requests against the coordinator
// agent and accounts for tokens and spend.
type AdvisorRunner struct {
	runner      *runner.Runner
	agentName   string
	appName     string
	modelInfo   ai.ModelInfo
	rateLimiter ai.RateLimiter
	costTracker *CostTracker
	timeout     time.Duration
	log         *logger.Logger
}

// NewAdvisorRunner builds a runner for the given agent. A nil session
// service falls back to the in-memory implementation.
func NewAdvisorRunner(cfg RunnerConfig) (*AdvisorRunner, error) {
	if cfg.Agent == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "agent is required")
	}

	appName := cfg.AppName
	if appName == "" {
		appName = defaultAppName
	}
	sessionService := cfg.SessionService
	if sessionService == nil {
		sessionService = session.InMemoryService()
	}
	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimiter = ai.NewNoOpLimiter()
	}
	costTracker := cfg.CostTracker
	if costTracker == nil {
		costTracker = NewCostTracker()
	}
	timeout := cfg.DefaultTimeout
	if timeout <= 0 {
		timeout = defaultRunLimit
	}
	log := cfg.Log
	if log == nil {
		log = logger.Get()
	}

	r, err := runner.New(runner.Config{
		AppName:        appName,
		Agent:          cfg.Agent,
		SessionService: sessionService,
	})
	if err != nil {
		return nil, errors.Wrap(err, "building agent runner")
	}

	return &AdvisorRunner{
		runner:      r,
		agentName:   cfg.Agent.Name(),
		appName:     appName,
		modelInfo:   cfg.ModelInfo,
		rateLimiter: rateLimiter,
		costTracker: costTracker,
		timeout:     timeout,
		log:         log.With("component", "advisor_runner"),
	}, nil
}

// Execute runs a single advisory request to completion and returns the
// coordinator's final answer.
func (r *AdvisorRunner) Execute(ctx context.Context, input ExecutionInput) (*ExecutionOutput, error) {
	if strings.TrimSpace(input.Request) == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "request is required")
	}

	userID := input.UserID
	if userID == "" {
		userID = defaultUserID
	}
	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	timeout := r.timeout
	if input.Timeout > 0 {
		timeout = input.Timeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := r.rateLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "waiting for provider rate limit")
	}

	r.log.Infof("Executing advisory request (user=%s, session=%s)", userID, sessionID)
	start := time.Now()

	var (
		inputTokens  int
		outputTokens int
		toolCalls    int
		final        *session.Event
	)

	userContent := genai.NewContentFromText(input.Request, genai.RoleUser)
	runConfig := agent.RunConfig{
		StreamingMode:             agent.StreamingModeSSE,
		SaveInputBlobsAsArtifacts: false,
	}

	for event, err := range r.runner.Run(ctx, userID, sessionID, userContent, runConfig) {
		if err != nil {
			metrics.RecordAgentCall(r.agentName, r.modelInfo.Name, time.Since(start), 0, inputTokens, outputTokens, err)
			return nil, errors.Wrapf(err, "advisory run failed (session=%s)", sessionID)
		}
		if event == nil || event.Partial {
			continue
		}

		if event.UsageMetadata != nil {
			inputTokens += int(event.UsageMetadata.PromptTokenCount)
			outputTokens += int(event.UsageMetadata.CandidatesTokenCount)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.FunctionCall != nil {
					toolCalls++
				}
			}
		}

		if event.TurnComplete && event.IsFinalResponse() {
			final = event
			break
		}
	}

	duration := time.Since(start)

	if final == nil {
		metrics.RecordAgentCall(r.agentName, r.modelInfo.Name, duration, 0, inputTokens, outputTokens, errors.ErrNoFinalResponse)
		return nil, errors.Wrapf(errors.ErrNoFinalResponse, "session %s produced no final response", sessionID)
	}

	var answer strings.Builder
	if final.Content != nil {
		for _, part := range final.Content.Parts {
			answer.WriteString(part.Text)
		}
	}

	cost := CalculateCost(r.modelInfo, inputTokens, outputTokens)
	r.costTracker.RecordUsage(r.modelInfo, inputTokens, outputTokens)
	metrics.RecordAgentCall(r.agentName, r.modelInfo.Name, duration, cost, inputTokens, outputTokens, nil)

	r.log.Infof("Advisory request complete in %s (tokens=%d, tools=%d, cost=$%.4f)",
		duration.Round(time.Millisecond), inputTokens+outputTokens, toolCalls, cost)

	return &ExecutionOutput{
		Answer:        answer.String(),
		SessionID:     sessionID,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		TokensUsed:    inputTokens + outputTokens,
		ToolCallCount: toolCalls,
		CostUSD:       cost,
		Duration:      duration,
	}, nil
}

// TotalCost reports the accumulated spend across every run so far.
func (r *AdvisorRunner) TotalCost() float64 {
	return r.costTracker.TotalCost()
}
