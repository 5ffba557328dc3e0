package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/jeanpaul/swarm/internal/agent"
	"github.com/jeanpaul/swarm/internal/config"
	"github.com/jeanpaul/swarm/internal/interrupt"
	"github.com/jeanpaul/swarm/internal/logging"
	"github.com/jeanpaul/swarm/internal/metrics"
	"github.com/jeanpaul/swarm/internal/provider"
	"github.com/jeanpaul/swarm/internal/schema"
	"github.com/jeanpaul/swarm/internal/subagent"
	"github.com/jeanpaul/swarm/internal/tui"
)

const providerRetries = 3

// app is everything a command needs, built from the configuration.
type app struct {
	cfg       *config.Config
	log       *logging.Logger
	metrics   *metrics.Metrics
	validator *schema.Validator
	launcher  *subagent.Launcher
	factory   *agent.Factory
	workDir   string

	metricsSrv *http.Server
	stop       context.CancelFunc
}

// newApp wires the application and starts interrupt handling. The returned
// context is cancelled on Ctrl-C when no session is listening for it.
func newApp(ctx context.Context) (*app, context.Context, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(logging.Config{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		return nil, nil, err
	}

	name := providerName
	if name == "" {
		name = cfg.DefaultProvider
	}
	model := modelName
	if model == "" {
		model = cfg.DefaultModel
	}
	prov, err := makeProvider(cfg, name, model)
	if err != nil {
		logger.Close()
		return nil, nil, err
	}

	workDir, err := os.Getwd()
	if err != nil {
		logger.Close()
		return nil, nil, err
	}

	a := &app{
		cfg:       cfg,
		log:       logger,
		metrics:   metrics.New(),
		validator: schema.NewValidator(),
		workDir:   workDir,
	}

	broadcaster := interrupt.NewBroadcaster()
	opts := []subagent.Option{
		subagent.WithLogger(logger.Logger),
		subagent.WithMetrics(a.metrics),
		subagent.WithSpinner(cfg.Orchestrator.ShowProgress && isTerminal(os.Stderr)),
	}
	if cfg.Orchestrator.DebugLogs {
		opts = append(opts, subagent.WithDiagnostics(subagent.FileDiagnostics{Dir: cfg.Orchestrator.DebugDir}))
	}

	a.factory = &agent.Factory{
		Provider:      prov,
		Profiles:      config.DefaultProfileStore(),
		MaxTurns:      cfg.MaxTurns,
		ContextTokens: cfg.MaxTokens,
		Logger:        logger.Logger,
	}
	a.launcher = subagent.NewLauncher(a.factory, broadcaster, opts...)
	a.factory.Tools = agent.DefaultTools(a.launcher, a.validator)

	if cfg.Metrics.Addr != "" {
		a.serveMetrics(cfg.Metrics.Addr)
	}

	ctx, a.stop = context.WithCancel(ctx)
	go broadcaster.Listen(ctx, a.stop)

	logger.Info().
		Str("provider", prov.Name()).
		Str("model", prov.ModelName()).
		Str("work_dir", workDir).
		Msg("swarm started")
	return a, ctx, nil
}

func (a *app) serveMetrics(addr string) {
	a.metricsSrv = &http.Server{
		Addr:              addr,
		Handler:           a.metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
	a.log.Info().Str("addr", addr).Msg("serving metrics")
}

func (a *app) Close() {
	a.stop()
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		a.metricsSrv.Shutdown(ctx)
	}
	a.log.Close()
}

// answerWriter is where final answers go: rendered markdown on a terminal
// unless --raw, plain stdout otherwise.
func (a *app) answerWriter() io.Writer {
	if rawOutput || !isTerminal(os.Stdout) {
		return os.Stdout
	}
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	md, err := tui.NewMarkdownWriter(os.Stdout, width)
	if err != nil {
		a.log.Warn().Err(err).Msg("markdown renderer unavailable")
		return os.Stdout
	}
	return md
}

func makeProvider(cfg *config.Config, name, model string) (provider.Provider, error) {
	// Env overrides for any OpenAI-compatible endpoint
	if baseURL := os.Getenv("SWARM_BASE_URL"); baseURL != "" {
		return provider.WithRetry(provider.NewOpenAI(name, baseURL, os.Getenv("SWARM_API_KEY"), model), providerRetries), nil
	}

	pcfg, ok := cfg.ProviderFor(name)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q, configure it in %s/config.yaml", name, config.Dir())
	}
	if model == "" {
		model = pcfg.Model
	}

	var p provider.Provider
	switch pcfg.Type {
	case "openai":
		p = provider.NewOpenAI(name, pcfg.BaseURL, pcfg.APIKey, model)
	case "anthropic":
		if pcfg.APIKey == "" || pcfg.APIKey == "$ANTHROPIC_API_KEY" {
			return nil, fmt.Errorf("anthropic requires api_key (set ANTHROPIC_API_KEY)")
		}
		p = provider.NewAnthropic(pcfg.BaseURL, pcfg.APIKey, model)
	default:
		return nil, fmt.Errorf("unknown provider type %q", pcfg.Type)
	}
	return provider.WithRetry(p, providerRetries), nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
