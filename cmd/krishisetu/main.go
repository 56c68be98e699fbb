package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krishisetu/krishisetu/advisor"
	"github.com/krishisetu/krishisetu/analysis"
	"github.com/krishisetu/krishisetu/config"
	"github.com/krishisetu/krishisetu/crew"
	"github.com/krishisetu/krishisetu/external"
	"github.com/krishisetu/krishisetu/pkg/logging"
	"github.com/krishisetu/krishisetu/pkg/telemetry"
	"github.com/krishisetu/krishisetu/provider/claude"
	"github.com/krishisetu/krishisetu/provider/gemini"
	"github.com/krishisetu/krishisetu/provider/openai"
	"github.com/krishisetu/krishisetu/querylog"
	"github.com/krishisetu/krishisetu/server"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "path to TOML configuration file")
	flag.Parse()

	logger := logging.WithComponent("main")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("configuration failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "krishisetu",
		ServiceVersion: version,
		Environment:    cfg.Telemetry.Environment,
		Disable:        cfg.Telemetry.Disable,
	})
	if err != nil {
		logger.Error("telemetry initialization failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	store, err := querylog.NewStore(cfg.Store)
	if err != nil {
		logger.Error("query log store failed", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	var weatherSvc advisor.WeatherService
	if cfg.External.WeatherAPIKey != "" {
		weatherSvc = external.NewWeatherClient(cfg.External.WeatherBaseURL, cfg.External.WeatherAPIKey)
	} else {
		logger.Warn("weather API key not set, weather advisor runs degraded")
	}

	var dataProvider external.Provider
	if cfg.External.MCPEndpoint != "" {
		mcpProvider, err := external.NewMCPProvider(ctx, cfg.External.MCPEndpoint)
		if err != nil {
			logger.Error("MCP connection failed", "endpoint", cfg.External.MCPEndpoint, "error", err)
			os.Exit(1)
		}
		defer mcpProvider.Close()
		dataProvider = mcpProvider
	} else {
		logger.Warn("MCP endpoint not set, comprehensive queries skip external data")
	}

	llm, closeLLM, err := newLLMClient(ctx, cfg.LLM)
	if err != nil {
		logger.Error("LLM client failed", "provider", cfg.LLM.Provider, "error", err)
		os.Exit(1)
	}
	if closeLLM != nil {
		defer closeLLM()
	}

	weather := advisor.NewWeatherAdvisor(weatherSvc)
	crop := advisor.NewCropAdvisor()
	finance := advisor.NewFinanceAdvisor()

	crewOpts := []crew.Option{}
	if llm != nil {
		crewOpts = append(crewOpts, crew.WithSummarizer(llm))
	}
	agriCrew := crew.New(weather, crop, finance, dataProvider, crewOpts...)

	analysisSvc, err := analysis.NewService(llm)
	if err != nil {
		logger.Error("analysis service failed", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg.Server, server.Deps{
		Crew:     agriCrew,
		Weather:  weather,
		Crop:     crop,
		Finance:  finance,
		Analysis: analysisSvc,
		Store:    store,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port,
			"llm", cfg.LLM.Provider, "store", cfg.Store.Backend)
		errCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
		return
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(stopCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// newLLMClient builds the configured completion backend. A "none" provider
// returns a nil client, which downstream components treat as running in
// direct-processing mode.
func newLLMClient(ctx context.Context, cfg config.LLM) (analysis.Client, func() error, error) {
	switch cfg.Provider {
	case "openai":
		c := openai.New(&openai.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model})
		return c, nil, nil
	case "claude":
		c := claude.New(&claude.Config{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Model: cfg.Model})
		return c, nil, nil
	case "gemini":
		c, err := gemini.New(ctx, &gemini.Config{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	default:
		return nil, nil, nil
	}
}
