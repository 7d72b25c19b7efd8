// Package recommend provides the location-based recommendation module.
package recommend

import (
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	apphttp "github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/http"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

// Module is the recommendation bounded context implementing http.Module.
type Module struct {
	service *Service
	handler *Handler
}

// NewModule wires the geo resolver and catalog into the recommendation service.
func NewModule(resolver *geo.Resolver, catalog *geo.Catalog, cfg config.GeoConfig, log *logger.Logger) *Module {
	service := NewService(resolver, catalog, cfg, log)
	handler := NewHandler(service, log)

	return &Module{
		service: service,
		handler: handler,
	}
}

// Service exposes the recommendation service for other modules.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) Name() string {
	return "recommend"
}

// RegisterRoutes mounts the public recommendation routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/products/nearby", m.handler.NearbyProducts)
	ctx.V1.GET("/user/ip-info", m.handler.UserIPInfo)
}
