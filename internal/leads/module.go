// Package leads provides the lead management bounded context module.
// It captures leads from chat, qualifies them against configurable
// criteria and generates new prospects with AI assistance.
package leads

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/handler"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/repository"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/scoring"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/service"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

// Module is the leads bounded context implementing http.Module.
type Module struct {
	service *service.Service
	handler *handler.Handler
}

// NewModule wires the leads repository, scorer and AI client together.
func NewModule(pool *pgxpool.Pool, ai service.AIClient, recs *recommend.Service, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	scorer := scoring.NewService(log)
	svc := service.New(repo, scorer, ai, recs, eventBus, log)

	return &Module{
		service: svc,
		handler: handler.New(svc, val),
	}
}

// Service exposes the leads service to the chat module.
func (m *Module) Service() *service.Service {
	return m.service
}

func (m *Module) Name() string {
	return "leads"
}

// RegisterRoutes mounts the lead management routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/leads")
	group.POST("/qualify", m.handler.Qualify)
	group.POST("/create-and-qualify", m.handler.CreateAndQualify)
	group.GET("/qualification-criteria", m.handler.QualificationCriteria)
	group.POST("/chatbot-to-lead", m.handler.ChatbotToLead)
	group.POST("/generate", m.handler.Generate)
	group.POST("/generate-and-qualify", m.handler.GenerateAndQualify)
	group.POST("/enrich", m.handler.Enrich)
	group.POST("/personalized-outreach", m.handler.PersonalizedOutreach)

	// Listing stored leads requires an authenticated operator.
	protected := ctx.Protected.Group("/leads")
	protected.GET("", m.handler.List)
}
