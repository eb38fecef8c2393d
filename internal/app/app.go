package app

import (
	"context"
	"fmt"
	"os"

	httpx "github.com/coursekg/coursekg-backend/internal/http"
	"github.com/coursekg/coursekg-backend/internal/observability"
	"github.com/coursekg/coursekg-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  Clients
	Services Services
	Server   *httpx.Server

	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	cfg := LoadConfig()

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "coursekg-backend",
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	svcs, err := wireServices(log, cfg, clients)
	if err != nil {
		log.Sync()
		return nil, err
	}

	server := httpx.NewServer(wireRouterConfig(log, svcs))

	return &App{
		Log:          log,
		Cfg:          cfg,
		Clients:      clients,
		Services:     svcs,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run() error {
	addr := ":" + a.Cfg.Port
	a.Log.Info("starting API server", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Clients.Cache != nil {
		_ = a.Clients.Cache.Close()
	}
	if a.Clients.Neo4j != nil {
		if err := a.Clients.Neo4j.Close(ctx); err != nil {
			a.Log.Warn("neo4j close failed", "error", err)
		}
	}
	a.Log.Sync()
}
