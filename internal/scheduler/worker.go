package scheduler

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/hubspot"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

// Worker consumes CRM sync tasks and drives the HubSpot service.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	crm    *hubspot.Service
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, crm *hubspot.Service, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		crm:    crm,
		log:    log,
	}

	mux.HandleFunc(TaskContactSync, w.handleContactSync)
	mux.HandleFunc(TaskLeadSync, w.handleLeadSync)
	mux.HandleFunc(TaskActivityLog, w.handleActivityLog)

	return w, nil
}

func (w *Worker) handleContactSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseContactSyncPayload(task)
	if err != nil {
		return err
	}
	if payload.Email == "" {
		return nil
	}
	return w.crm.SyncContactFromChat(ctx, payload.Email, payload.Message)
}

func (w *Worker) handleLeadSync(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseLeadSyncPayload(task)
	if err != nil {
		return err
	}
	if payload.Event.Email == "" {
		return nil
	}
	return w.crm.SyncContactFromLead(ctx, payload.Event)
}

func (w *Worker) handleActivityLog(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseActivityLogPayload(task)
	if err != nil {
		return err
	}
	if payload.Email == "" {
		return nil
	}
	return w.crm.LogActivity(ctx, payload.Email, payload.ActivityType, payload.Details)
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
