package app

import (
	"context"
	"time"

	"github.com/doeshing/relay-go/internal/application/check"
	"github.com/doeshing/relay-go/internal/application/dispatch"
	"github.com/doeshing/relay-go/internal/infrastructure/cache"
	"github.com/doeshing/relay-go/internal/infrastructure/config"
	"github.com/doeshing/relay-go/internal/infrastructure/executor"
	"github.com/doeshing/relay-go/internal/infrastructure/filters"
	"github.com/doeshing/relay-go/internal/infrastructure/history"
	"github.com/doeshing/relay-go/internal/pkg/logger"
	"github.com/doeshing/relay-go/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	DispatchService *dispatch.Service
	CheckService    *check.Service
	ConfigProvider  ports.ConfigProvider
	ConfigLoader    *config.FileLoader
	InvocationStore ports.InvocationStore
	ResultCache     ports.ResultCache
	FilterFactory   ports.FilterFactory
	Logger          ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.NewStd(verbose)
	store := history.NewSQLiteStore()
	resultCache := cache.NewFileCache(
		cfg.GetCacheMaxEntries(),
		time.Duration(cfg.GetCacheTTLSeconds())*time.Second,
	)
	factory := filters.NewFactory(resultCache, log)
	runner := executor.NewLocalRunner(cfg.GetExecutionShell())

	dispatchService := &dispatch.Service{
		ConfigProvider: cfgLoader,
		FilterFactory:  factory,
		Runner:         runner,
		Store:          store,
		Logger:         log,
	}

	checkService := &check.Service{
		ConfigProvider: cfgLoader,
		FilterFactory:  factory,
		Store:          store,
	}

	return &Container{
		DispatchService: dispatchService,
		CheckService:    checkService,
		ConfigProvider:  cfgLoader,
		ConfigLoader:    cfgLoader,
		InvocationStore: store,
		ResultCache:     resultCache,
		FilterFactory:   factory,
		Logger:          log,
	}, nil
}
