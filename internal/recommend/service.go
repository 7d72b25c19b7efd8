// Package recommend turns a caller's IP address into location-aware
// product suggestions from the Chennai catalog.
package recommend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

// RecommendationRadiusKm bounds the nearby product search on every
// recommendation surface.
const RecommendationRadiusKm = 15.0

// UserLocation is the resolved caller location in the response payload.
type UserLocation struct {
	IP          string `json:"ip"`
	City        string `json:"city"`
	Area        string `json:"area"`
	Coordinates string `json:"coordinates"`
}

// Recommendation is one nearby product location.
type Recommendation struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Distance            string `json:"distance"`
	Address             string `json:"address"`
	EstimatedTravelTime string `json:"estimated_travel_time"`
}

// Payload is the full recommendation response.
type Payload struct {
	UserLocation       UserLocation     `json:"user_location"`
	Recommendations    []Recommendation `json:"recommendations"`
	RecommendationTime time.Time        `json:"recommendation_time"`
}

// Service resolves IPs and matches catalog locations around them.
type Service struct {
	resolver *geo.Resolver
	catalog  *geo.Catalog
	probeIP  string
	log      *logger.Logger
}

func NewService(resolver *geo.Resolver, catalog *geo.Catalog, cfg config.GeoConfig, log *logger.Logger) *Service {
	return &Service{
		resolver: resolver,
		catalog:  catalog,
		probeIP:  cfg.GetGeoProbeIP(),
		log:      log,
	}
}

// NormalizeIP swaps loopback addresses for the configured probe IP so
// local development still resolves to a useful region.
func (s *Service) NormalizeIP(ip string) string {
	switch ip {
	case "", "127.0.0.1", "::1", "localhost":
		return s.probeIP
	}
	return ip
}

// IPInfo resolves the caller's IP, never failing thanks to the
// synthetic fallback in the resolver.
func (s *Service) IPInfo(ctx context.Context, ip string) (geo.Resolution, string) {
	normalized := s.NormalizeIP(ip)
	return s.resolver.Resolve(ctx, normalized), normalized
}

// Nearby builds the location-based recommendation payload for the IP.
func (s *Service) Nearby(ctx context.Context, ip string, radiusKm float64) Payload {
	if radiusKm <= 0 {
		radiusKm = RecommendationRadiusKm
	}

	resolution, normalized := s.IPInfo(ctx, ip)
	record := resolution.Record
	coord := record.Coordinate

	matches := s.catalog.FindNearby(coord, radiusKm)
	recommendations := make([]Recommendation, 0, len(matches))
	for _, match := range matches {
		recommendations = append(recommendations, Recommendation{
			Name:                match.Location.Name,
			Type:                match.Location.Category,
			Distance:            formatFloat(match.DistanceKm) + " km",
			Address:             match.Location.Address,
			EstimatedTravelTime: fmt.Sprintf("%d minutes", int(match.DistanceKm*3)),
		})
	}

	s.log.Info("location based recommendations generated",
		"ip", normalized,
		"area", record.Area,
		"source", resolution.Source,
		"matches", len(recommendations),
	)

	return Payload{
		UserLocation: UserLocation{
			IP:          record.IP,
			City:        record.City,
			Area:        record.Area,
			Coordinates: formatFloat(coord.Lat) + "," + formatFloat(coord.Lon),
		},
		Recommendations:    recommendations,
		RecommendationTime: time.Now().UTC(),
	}
}

// formatFloat renders a float the way the API has always shown it, with
// no trailing zeros.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
