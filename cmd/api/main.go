package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/analytics"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/auth"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/chat"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http/router"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/hubspot"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/scheduler"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/anthropic"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/db"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, cfg.MigrationsDir)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	aiClient := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
	})
	log.Info("chat completion client initialized", "model", aiClient.Model())

	// File analysis runs on Anthropic; chat works without it.
	var analyzer chat.FileAnalyzer
	if cfg.IsFileAnalysisEnabled() {
		analyzer = anthropic.NewAnalyzer(cfg)
		log.Info("file analysis enabled", "model", cfg.FileAnalysisModel)
	} else {
		log.Warn("ANTHROPIC_API_KEY not configured; file uploads disabled")
	}

	catalog := geo.NewCatalog()
	resolver := geo.NewResolver(catalog, cfg, log)

	// CRM sync runs through the task queue when Redis is configured,
	// inline otherwise.
	enqueuer, closeEnqueuer := initTaskEnqueuer(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	recommendModule := recommend.NewModule(resolver, catalog, cfg, log)
	leadsModule := leads.NewModule(pool, aiClient, recommendModule.Service(), eventBus, val, log)
	chatModule := chat.NewModule(pool, aiClient, analyzer, recommendModule.Service(), eventBus, val, log)
	hubspotModule := hubspot.NewModule(cfg, chatModule.Service(), chatModule.Repository(), eventBus, enqueuer, val, log)
	authModule := auth.NewModule(pool, chatModule.Repository(), cfg, val, log)
	analyticsModule := analytics.NewModule(pool, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			chatModule,
			leadsModule,
			recommendModule,
			hubspotModule,
			analyticsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initTaskEnqueuer(cfg config.SchedulerConfig, log *logger.Logger) (hubspot.TaskEnqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; CRM sync runs inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
