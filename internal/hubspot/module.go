package hubspot

import (
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

// Module is the CRM integration bounded context implementing http.Module.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule wires the CRM client and subscribes the sync handlers to
// the event bus. enqueuer may be nil to run sync inline.
func NewModule(cfg config.HubSpotConfig, responder ChatResponder, history ChatHistory, eventBus events.Bus, enqueuer TaskEnqueuer, val *validator.Validator, log *logger.Logger) *Module {
	client := NewClient(cfg)
	svc := NewService(client, responder, history, log)

	if svc.Enabled() {
		svc.RegisterEventHandlers(eventBus, enqueuer)
	} else {
		log.Warn("hubspot integration disabled, no access token configured")
	}

	return &Module{
		service: svc,
		handler: NewHandler(svc, client, val, cfg.GetHubSpotWebhookTargetURL()),
	}
}

// Service exposes CRM sync to the background worker.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "hubspot"
}

// RegisterRoutes mounts the CRM routes. Contact management requires an
// authenticated operator; the webhook stays public for HubSpot.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/hubspot")
	group.POST("/webhook", m.handler.Webhook)

	protected := ctx.Protected.Group("/hubspot")
	protected.GET("/contacts", m.handler.ListContacts)
	protected.POST("/contacts", m.handler.CreateContact)
	protected.GET("/contacts/:contactId", m.handler.GetContact)
	protected.PATCH("/contacts/:contactId", m.handler.UpdateContact)
	protected.POST("/configure-webhook", m.handler.ConfigureWebhook)
	protected.GET("/conversation-history/:email", m.handler.ConversationHistory)
}
