package recommend

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/httpkit"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// NearbyProducts returns catalog locations around the caller's
// resolved position, closest first.
func (h *Handler) NearbyProducts(c *gin.Context) {
	radiusKm := RecommendationRadiusKm
	if raw := c.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			httpkit.Error(c, http.StatusBadRequest, "radius_km must be a non-negative number", nil)
			return
		}
		radiusKm = parsed
	}

	payload := h.service.Nearby(c.Request.Context(), c.ClientIP(), radiusKm)
	httpkit.JSON(c, http.StatusOK, gin.H{
		"user_location":   payload.UserLocation,
		"recommendations": payload.Recommendations,
	})
}

// UserIPInfo exposes the resolved geolocation record for debugging
// and client personalization.
func (h *Handler) UserIPInfo(c *gin.Context) {
	resolution, detected := h.service.IPInfo(c.Request.Context(), c.ClientIP())
	httpkit.JSON(c, http.StatusOK, gin.H{
		"ip_info":            resolution.Record,
		"source":             resolution.Source,
		"detected_client_ip": detected,
	})
}
