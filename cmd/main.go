package main

import (
	"context"
	"flag"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"google.golang.org/adk/agent"
	adklauncher "google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"

	adkadapter "finadvisor/internal/adapters/adk"
	"finadvisor/internal/adapters/ai"
	"finadvisor/internal/adapters/config"
	"finadvisor/internal/adapters/errors/noop"
	"finadvisor/internal/adapters/errors/sentry"
	"finadvisor/internal/adapters/firecrawl"
	"finadvisor/internal/adapters/postgres"
	"finadvisor/internal/adapters/redis"
	"finadvisor/internal/adapters/yahoo"
	"finadvisor/internal/agents"
	agentstate "finadvisor/internal/agents/state"
	"finadvisor/internal/domain/advice"
	"finadvisor/internal/domain/session"
	"finadvisor/internal/metrics"
	"finadvisor/internal/report"
	memoryrepo "finadvisor/internal/repository/memory"
	postgresrepo "finadvisor/internal/repository/postgres"
	redisrepo "finadvisor/internal/repository/redis"
	"finadvisor/internal/tools"
	"finadvisor/internal/tools/shared"
	"finadvisor/pkg/errors"
	"finadvisor/pkg/logger"
)

func main() {
	userFlag := flag.String("user", "local", "user id that owns the session")
	sessionFlag := flag.String("session", "", "resume an existing session id")
	flag.Parse()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)
	defer flushTracker(errorTracker, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize storage, tools, agents
	app, err := initApp(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	// Expose Prometheus metrics when enabled
	if cfg.Metrics.Enabled {
		metrics.Init()
		app.registerCollectors()
		go metrics.Serve(ctx, cfg.Metrics.Addr, log)
	}

	log.Info("System initialized successfully")

	// `finadvisor ask "<request>"` runs one advisory session and exits;
	// anything else is handed to the ADK launcher (web, api, console).
	args := flag.Args()
	if len(args) > 0 && args[0] == "ask" {
		question := strings.TrimSpace(strings.Join(args[1:], " "))
		if question == "" {
			log.Fatalf("Usage: %s ask \"<request>\"", cfg.App.Name)
		}
		if err := runOnce(ctx, app, question, *userFlag, *sessionFlag); err != nil {
			log.Fatalf("Advisory request failed: %v", err)
		}
		return
	}

	runLauncher(ctx, app, log)
}

// loadConfig loads application configuration from environment
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// initLogger initializes structured logging
func initLogger(cfg *config.Config) error {
	return logger.Init(cfg.App.LogLevel, cfg.App.Env)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// app bundles the initialized components that main works with.
type app struct {
	cfg       *config.Config
	advisor   *agents.AdvisorRunner
	root      agent.Agent
	sessions  *session.Service
	artifacts *report.FilesystemStore
	pg        *postgres.Client
	rds       *redis.Client
	log       *logger.Logger
}

// initApp wires clients, storage, tools, and the agent tree.
func initApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	marketClient := yahoo.NewClient(cfg.Yahoo, log)
	searchClient := firecrawl.NewClient(cfg.Firecrawl, log)
	artifactStore := report.NewFilesystemStore(cfg.Advisor.ReportDir, log)
	a.artifacts = artifactStore

	// Report archive is optional; without PostgreSQL the advisor still
	// writes artifacts to disk.
	var adviceRepo advice.Repository
	if cfg.Postgres.Enabled() {
		pgClient, err := postgres.NewClient(cfg.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to postgres")
		}
		a.pg = pgClient

		repo := postgresrepo.NewAdviceRepository(pgClient.DB())
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, errors.Wrap(err, "preparing advice archive schema")
		}
		adviceRepo = repo
		log.Info("Advice archive enabled (PostgreSQL)")
	}

	// Sessions persist across restarts only when Redis is configured.
	var sessionRepo session.Repository
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to redis")
		}
		a.rds = redisClient
		sessionRepo = redisrepo.NewSessionRepository(redisClient.Client(), cfg.Advisor.SessionTTL)
		log.Info("Session persistence enabled (Redis)")
	} else {
		sessionRepo = memoryrepo.NewSessionRepository()
		log.Info("Using in-memory sessions")
	}
	a.sessions = session.NewService(sessionRepo)
	sessionService := adkadapter.NewSessionService(a.sessions)

	toolRegistry := tools.NewRegistry()
	tools.RegisterAllTools(toolRegistry, shared.Deps{
		AppName:    cfg.App.Name,
		Market:     marketClient,
		Search:     searchClient,
		Artifacts:  artifactStore,
		AdviceRepo: adviceRepo,
		Log:        log,
	})

	providers := ai.NewProviderRegistry()
	if err := providers.Register(ai.NewGeminiProvider(cfg.AI.GeminiKey, time.Minute)); err != nil {
		return nil, errors.Wrap(err, "registering gemini provider")
	}

	modelInfo, err := providers.ResolveModel(ctx, cfg.AI.Provider, cfg.AI.Model)
	if err != nil {
		return nil, err
	}

	factory, err := agents.NewFactory(agents.FactoryDeps{
		AIRegistry:   providers,
		ToolRegistry: toolRegistry,
		GeminiAPIKey: cfg.AI.GeminiKey,
		Log:          log,
	})
	if err != nil {
		return nil, err
	}

	rootAgent, err := factory.CreateAdvisor(ctx, cfg.AI.Provider, cfg.AI.Model)
	if err != nil {
		return nil, err
	}
	a.root = rootAgent

	limits := ai.DefaultRateLimits()
	limiter := ai.GetRateLimiter(ai.ProviderName(cfg.AI.Provider), limits[ai.ProviderName(cfg.AI.Provider)])

	runner, err := agents.NewAdvisorRunner(agents.RunnerConfig{
		AppName:        cfg.App.Name,
		Agent:          rootAgent,
		SessionService: sessionService,
		ModelInfo:      modelInfo,
		RateLimiter:    limiter,
		DefaultTimeout: cfg.Advisor.ExecutionTimeout,
		Log:            log,
	})
	if err != nil {
		return nil, err
	}
	a.advisor = runner

	return a, nil
}

// registerCollectors adds storage gauges for whichever backends are up.
func (a *app) registerCollectors() {
	if a.pg == nil && a.rds == nil {
		return
	}

	var pgDB *sqlx.DB
	if a.pg != nil {
		pgDB = a.pg.DB()
	}
	var rdsClient *goredis.Client
	if a.rds != nil {
		rdsClient = a.rds.Client()
	}

	prometheus.MustRegister(metrics.NewCustomCollector(a.log, pgDB, rdsClient))
}

// Close releases storage connections.
func (a *app) Close() {
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.log.Warnf("Closing postgres: %v", err)
		}
	}
	if a.rds != nil {
		if err := a.rds.Close(); err != nil {
			a.log.Warnf("Closing redis: %v", err)
		}
	}
}

// runOnce executes a single advisory request and prints the result.
func runOnce(ctx context.Context, a *app, question, userID, sessionID string) error {
	out, err := a.advisor.Execute(ctx, agents.ExecutionInput{
		UserID:    userID,
		Request:   question,
		SessionID: sessionID,
	})
	if err != nil {
		return err
	}

	fmt.Println(out.Answer)
	fmt.Println()
	if path, size, ok := a.savedReport(ctx, userID, out.SessionID); ok {
		fmt.Printf("report:  %s (%s)\n", path, humanize.Bytes(size))
	}
	fmt.Printf("session: %s\n", out.SessionID)
	fmt.Printf("tokens:  %s in / %s out, %d tool calls\n",
		humanize.Comma(int64(out.InputTokens)),
		humanize.Comma(int64(out.OutputTokens)),
		out.ToolCallCount)
	fmt.Printf("cost:    $%.4f in %s\n", out.CostUSD, out.Duration.Round(time.Millisecond))
	return nil
}

// savedReport resolves the artifact written during the run, if any.
func (a *app) savedReport(ctx context.Context, userID, sessionID string) (string, uint64, bool) {
	sess, err := a.sessions.GetSession(ctx, a.cfg.App.Name, userID, sessionID, nil)
	if err != nil || sess == nil {
		return "", 0, false
	}

	name, ok := sess.State[agentstate.KeyReportFilename].(string)
	if !ok || name == "" {
		return "", 0, false
	}
	doc, _ := sess.State[agentstate.KeyReport].(string)

	scope := report.Scope{AppName: a.cfg.App.Name, UserID: userID, SessionID: sessionID}
	return a.artifacts.Path(scope, name), uint64(len(doc)), true
}

// runLauncher hands the agent tree to the ADK launcher (web, api,
// console) with any remaining CLI arguments.
func runLauncher(ctx context.Context, a *app, log *logger.Logger) {
	launcherConfig := &adklauncher.Config{
		AgentLoader: agent.NewSingleLoader(a.root),
	}

	l := full.NewLauncher()
	if err := l.Execute(ctx, launcherConfig, flag.Args()); err != nil {
		log.Fatalf("Launcher failed: %v\n\n%s", err, l.CommandLineSyntax())
	}
}

// flushTracker drains pending error reports before exit.
func flushTracker(tracker errors.Tracker, log *logger.Logger) {
	if tracker == nil {
		return
	}
	if err := tracker.Flush(context.Background()); err != nil {
		log.Warnf("Failed to flush error tracker: %v", err)
	}
}
