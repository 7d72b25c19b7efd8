// The crm-worker binary consumes queued CRM sync tasks and pushes them
// to HubSpot, keeping API latency out of the chat path.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/chat"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/hubspot"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/scheduler"
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
	log.Info("starting crm worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	aiClient := openai.NewClient(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.ChatModel,
	})

	catalog := geo.NewCatalog()
	resolver := geo.NewResolver(catalog, cfg, log)
	recommendModule := recommend.NewModule(resolver, catalog, cfg, log)

	// The worker answers webhook-originated messages itself, so it
	// needs the full chat stack but no HTTP handlers.
	chatModule := chat.NewModule(pool, aiClient, nil, recommendModule.Service(), eventBus, val, log)
	hubspotModule := hubspot.NewModule(cfg, chatModule.Service(), chatModule.Repository(), eventBus, nil, val, log)

	worker, err := scheduler.NewWorker(cfg, hubspotModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize crm worker", "error", err)
		panic("failed to initialize crm worker: " + err.Error())
	}

	worker.Run(ctx)
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
