package chat

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

// Module is the chat bounded context implementing http.Module.
type Module struct {
	repo    *Repository
	service *Service
	handler *Handler
}

// NewModule wires chat persistence, the AI clients and the
// recommendation service. analyzer may be nil when file analysis is
// not configured.
func NewModule(pool *pgxpool.Pool, ai AIClient, analyzer FileAnalyzer, recs *recommend.Service, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, ai, analyzer, recs, eventBus, log)

	return &Module{
		repo:    repo,
		service: svc,
		handler: NewHandler(svc, val),
	}
}

// Repository exposes chat persistence to sibling modules that merge or
// delete conversation history.
func (m *Module) Repository() *Repository {
	return m.repo
}

// Service exposes the chat service so the CRM module can answer
// webhook-originated messages.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "chat"
}

// RegisterRoutes mounts the chat routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/chat")
	group.POST("", m.handler.Chat)
	group.POST("/extension", m.handler.Extension)
	group.POST("/product-recommendations", m.handler.ProductRecommendations)
	group.POST("/file-upload", m.handler.FileUpload)

	ctx.V1.GET("/users/:id/chat-history", m.handler.History)
}
