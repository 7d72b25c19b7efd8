package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

// Module is the auth bounded context implementing http.Module.
type Module struct {
	service *Service
	handler *Handler
}

func NewModule(pool *pgxpool.Pool, logs ChatLogs, cfg config.AuthServiceConfig, val *validator.Validator, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	svc := NewService(repo, logs, cfg, log)

	return &Module{
		service: svc,
		handler: NewHandler(svc, val),
	}
}

func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes mounts signup and login under the chat prefix, with
// the stricter auth rate limit, and the account data endpoints behind
// authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/chat")
	group.Use(ctx.AuthRateLimiter.RateLimit())
	group.POST("/signup", m.handler.SignUp)
	group.POST("/login", m.handler.Login)

	users := ctx.Protected.Group("/users")
	users.GET("/:id/export-data", m.handler.ExportData)
	users.DELETE("/:id", m.handler.DeleteAccount)
}
