package analytics

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

// Module is the analytics bounded context implementing http.Module.
type Module struct {
	handler *Handler
}

func NewModule(pool *pgxpool.Pool, val *validator.Validator) *Module {
	repo := NewRepository(pool)
	return &Module{handler: NewHandler(repo, val)}
}

func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes mounts the metrics endpoints behind authentication
// and the feedback and FAQ endpoints on the public surface.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/analytics")
	group.GET("/chat-metrics", m.handler.ChatMetrics)
	group.GET("/user-metrics", m.handler.UserMetrics)

	ctx.V1.POST("/feedback", m.handler.SubmitFeedback)
	ctx.V1.GET("/faq", m.handler.FAQ)
}
