package hubspot

import (
	"context"
	"fmt"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
)

// TaskEnqueuer hands CRM sync work to the background queue. When no
// queue is configured the sync runs inline on the event handler
// goroutine instead.
type TaskEnqueuer interface {
	EnqueueContactSync(ctx context.Context, email, message string) error
	EnqueueLeadSync(ctx context.Context, event events.LeadCaptured) error
	EnqueueActivityLog(ctx context.Context, email, activityType string, details map[string]any) error
}

// RegisterEventHandlers subscribes the CRM sync reactions to the
// domain events. Sync failures are logged, never propagated back to
// the publishing request.
func (s *Service) RegisterEventHandlers(bus events.Bus, enqueuer TaskEnqueuer) {
	bus.Subscribe(events.ChatMessageStored{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		stored, ok := event.(events.ChatMessageStored)
		if !ok {
			return fmt.Errorf("unexpected event type %T", event)
		}
		return s.handleChatMessage(ctx, stored, enqueuer)
	}))

	bus.Subscribe(events.LeadCaptured{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		captured, ok := event.(events.LeadCaptured)
		if !ok {
			return fmt.Errorf("unexpected event type %T", event)
		}
		if enqueuer != nil {
			return enqueuer.EnqueueLeadSync(ctx, captured)
		}
		return s.SyncContactFromLead(ctx, captured)
	}))

	bus.Subscribe(events.LeadQualified{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		qualified, ok := event.(events.LeadQualified)
		if !ok {
			return fmt.Errorf("unexpected event type %T", event)
		}
		details := map[string]any{"score": qualified.Score, "summary": qualified.Summary}
		if enqueuer != nil {
			return enqueuer.EnqueueActivityLog(ctx, qualified.Email, "lead_qualified", details)
		}
		return s.LogActivity(ctx, qualified.Email, "lead_qualified", details)
	}))
}

func (s *Service) handleChatMessage(ctx context.Context, event events.ChatMessageStored, enqueuer TaskEnqueuer) error {
	// Webhook-originated exchanges would loop back into the CRM.
	if event.Platform == "hubspot" {
		return nil
	}

	if enqueuer != nil {
		if err := enqueuer.EnqueueContactSync(ctx, event.Email, event.Message); err != nil {
			return err
		}
		return enqueuer.EnqueueActivityLog(ctx, event.Email, "chat_message", map[string]any{
			"message_length": len(event.Message),
			"platform":       event.Platform,
		})
	}

	if err := s.SyncContactFromChat(ctx, event.Email, event.Message); err != nil {
		return err
	}
	return s.LogActivity(ctx, event.Email, "chat_message", map[string]any{
		"message_length": len(event.Message),
		"platform":       event.Platform,
	})
}
