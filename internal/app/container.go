package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/doeshing/goterm/internal/application/session"
	"github.com/doeshing/goterm/internal/domain"
	"github.com/doeshing/goterm/internal/infrastructure/config"
	"github.com/doeshing/goterm/internal/infrastructure/executor"
	"github.com/doeshing/goterm/internal/infrastructure/history"
	"github.com/doeshing/goterm/internal/infrastructure/metrics"
	"github.com/doeshing/goterm/internal/pkg/logger"
	"github.com/doeshing/goterm/internal/ports"
)

// Container wires up the session core with infrastructure adapters.
// The line reader is attached later by the CLI layer, which knows whether
// stdin is a terminal.
type Container struct {
	Session      *session.Service
	Config       domain.Config
	ConfigLoader *config.FileLoader
	HistoryStore ports.HistoryStore
	Metrics      ports.MetricsProvider
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)

	var historyStore ports.HistoryStore
	if cfg.History.Backend == "sqlite" {
		historyStore = history.NewSQLiteStore()
	} else {
		historyStore = history.NewFileStore(cfg.History.Path)
	}

	metricsProvider := metrics.Select(cfg.Metrics.Provider, log)
	log.Debug("metrics provider selected", map[string]interface{}{"provider": metricsProvider.Name()})

	svc := session.New()
	svc.Config = cfg
	svc.History = historyStore
	svc.Metrics = metricsProvider
	svc.Executor = executor.NewLocalExecutor()
	svc.Logger = log
	svc.SessionID = uuid.NewString()

	return &Container{
		Session:      svc,
		Config:       cfg,
		ConfigLoader: cfgLoader,
		HistoryStore: historyStore,
		Metrics:      metricsProvider,
		Logger:       log,
	}, nil
}
