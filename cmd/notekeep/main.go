package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/config"
	"github.com/kailas-cloud/notekeep/internal/db"
	dbRedis "github.com/kailas-cloud/notekeep/internal/db/redis"
	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/engine/generative"
	"github.com/kailas-cloud/notekeep/internal/engine/heuristic"
	logpkg "github.com/kailas-cloud/notekeep/internal/logger"
	"github.com/kailas-cloud/notekeep/internal/metrics"
	budgetrepo "github.com/kailas-cloud/notekeep/internal/repository/budget"
	noterepo "github.com/kailas-cloud/notekeep/internal/repository/note"
	chiTransport "github.com/kailas-cloud/notekeep/internal/transport/chi"
	"github.com/kailas-cloud/notekeep/internal/transport/gemini"
	openaiGen "github.com/kailas-cloud/notekeep/internal/transport/openai"
	enrichmentuc "github.com/kailas-cloud/notekeep/internal/usecase/enrichment"
	healthuc "github.com/kailas-cloud/notekeep/internal/usecase/health"
	noteuc "github.com/kailas-cloud/notekeep/internal/usecase/note"
	usageuc "github.com/kailas-cloud/notekeep/internal/usecase/usage"
	"github.com/kailas-cloud/notekeep/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting notekeep API server", append(version.Fields(),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine", cfg.Enrichment.Engine),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)...)

	metrics.Register()

	ctx := context.Background()

	// Optional KV store for persisted budget counters.
	var store db.Store
	if cfg.Database.Enabled() {
		store, err = openStore(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")
	}

	var budget *enrichmentuc.BudgetTracker
	if cfg.Enrichment.Generative() {
		budget = newBudgetTracker(ctx, cfg.Enrichment, store, logger)
	}

	engine, err := buildEngine(ctx, cfg.Enrichment, budget, logger)
	if err != nil {
		logger.Fatal("Failed to create enrichment engine", zap.Error(err))
	}

	// Pass nil interfaces, not typed nil pointers.
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	var modelChecker healthuc.ModelChecker
	if hc, ok := engine.(domain.HealthChecker); ok {
		modelChecker = hc
	}

	noteSvc := noteuc.New(noterepo.New(), engine)
	usageSvc := usageuc.New(budgetReader)
	healthSvc := healthuc.New(pinger, modelChecker)

	server := chiTransport.NewServer(noteSvc, usageSvc, healthSvc, logger)
	router := chiTransport.NewRouter(server, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
	if budget != nil {
		budget.Flush()
	}

	logger.Info("Server stopped gracefully")
}

// openStore connects to Valkey or Redis. Both speak RESP and share the rueidis client.
func openStore(cfg config.DatabaseConfig) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverValkey, config.DriverRedis:
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	s, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func newBudgetTracker(
	ctx context.Context, cfg config.EnrichmentConfig, store db.Store, logger *zap.Logger,
) *enrichmentuc.BudgetTracker {
	action := enrichmentuc.BudgetActionWarn
	if cfg.Budget.Action == string(enrichmentuc.BudgetActionReject) {
		action = enrichmentuc.BudgetActionReject
	}
	budget := enrichmentuc.NewBudgetTracker(
		cfg.Engine, cfg.Budget.DailyTokenLimit, cfg.Budget.MonthlyTokenLimit, action, logger,
	)
	if store != nil {
		budget.WithStore(ctx, budgetrepo.New(store))
	}
	return budget
}

// buildEngine assembles the enrichment engine: heuristic, or provider -> instrumented -> generative.
func buildEngine(
	ctx context.Context, cfg config.EnrichmentConfig,
	budget *enrichmentuc.BudgetTracker, logger *zap.Logger,
) (domain.Engine, error) {
	if !cfg.Generative() {
		latency := time.Duration(*cfg.StubLatencyMs) * time.Millisecond
		return heuristic.New(heuristic.WithLatency(latency), heuristic.WithLogger(logger)), nil
	}

	var model domain.TextGenerator
	switch cfg.Engine {
	case config.EngineGemini:
		g, err := gemini.New(ctx, cfg.APIKey, gemini.WithModel(cfg.Model), gemini.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		model = g
	case config.EngineOpenAI:
		model = openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.BaseURL,
			Model:    cfg.Model,
			User:     "notekeep",
			Provider: cfg.Engine,
			Logger:   logger,
		})
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine)
	}

	var budgetChecker enrichmentuc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}
	instrumented := enrichmentuc.NewInstrumentedModel(model, cfg.Engine, budgetChecker, logger)

	settings := generative.DefaultSettings()
	if cfg.Temperature > 0 {
		settings.Temperature = cfg.Temperature
	}
	if cfg.TopP > 0 {
		settings.TopP = cfg.TopP
	}
	if cfg.TopK > 0 {
		settings.TopK = cfg.TopK
	}
	if cfg.MaxOutputTokens > 0 {
		settings.MaxOutputTokens = cfg.MaxOutputTokens
	}

	return generative.New(instrumented,
		generative.WithSettings(settings),
		generative.WithTimeout(time.Duration(cfg.TimeoutSec)*time.Second),
		generative.WithLogger(logger),
	)
}
