package recommend

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

type geoConfigStub struct{}

func (geoConfigStub) GetIPInfoToken() string   { return "" }
func (geoConfigStub) GetIPInfoBaseURL() string { return "https://ipinfo.invalid" }
func (geoConfigStub) GetGeoProbeIP() string    { return "103.48.198.141" }

func newTestService(t *testing.T) *Service {
	t.Helper()
	log := logger.New("test")
	catalog := geo.NewCatalog()
	resolver := geo.NewResolver(catalog, geoConfigStub{}, log)
	return NewService(resolver, catalog, geoConfigStub{}, log)
}

func TestNormalizeIPSwapsLoopback(t *testing.T) {
	svc := newTestService(t)

	for _, ip := range []string{"", "127.0.0.1", "::1", "localhost"} {
		if got := svc.NormalizeIP(ip); got != "103.48.198.141" {
			t.Fatalf("NormalizeIP(%q) = %q, want probe IP", ip, got)
		}
	}
	if got := svc.NormalizeIP("8.8.8.8"); got != "8.8.8.8" {
		t.Fatalf("NormalizeIP passed-through IP = %q", got)
	}
}

func TestNearbyPayloadShape(t *testing.T) {
	svc := newTestService(t)

	payload := svc.Nearby(context.Background(), "127.0.0.1", 100)
	if payload.UserLocation.City != "Chennai" {
		t.Fatalf("city = %q, want Chennai", payload.UserLocation.City)
	}
	if payload.UserLocation.Area == "" {
		t.Fatal("area is empty")
	}
	if len(payload.Recommendations) == 0 {
		t.Fatal("expected recommendations within 100 km of a Chennai area")
	}

	for _, rec := range payload.Recommendations {
		if !strings.HasSuffix(rec.Distance, " km") {
			t.Fatalf("distance %q missing km suffix", rec.Distance)
		}
		if !strings.HasSuffix(rec.EstimatedTravelTime, " minutes") {
			t.Fatalf("travel time %q missing minutes suffix", rec.EstimatedTravelTime)
		}
		if rec.Name == "" || rec.Type == "" || rec.Address == "" {
			t.Fatalf("incomplete recommendation: %+v", rec)
		}
	}
}

func TestNearbyTravelTimeIsThreeMinutesPerKm(t *testing.T) {
	svc := newTestService(t)

	payload := svc.Nearby(context.Background(), "", 100)
	for _, rec := range payload.Recommendations {
		km, err := strconv.ParseFloat(strings.TrimSuffix(rec.Distance, " km"), 64)
		if err != nil {
			t.Fatalf("parse distance %q: %v", rec.Distance, err)
		}
		minutes, err := strconv.Atoi(strings.TrimSuffix(rec.EstimatedTravelTime, " minutes"))
		if err != nil {
			t.Fatalf("parse travel time %q: %v", rec.EstimatedTravelTime, err)
		}
		if want := int(km * 3); minutes != want {
			t.Fatalf("travel time %d for %.2f km, want %d", minutes, km, want)
		}
	}
}

func TestNearbySortedClosestFirst(t *testing.T) {
	svc := newTestService(t)

	payload := svc.Nearby(context.Background(), "", 100)
	var prev float64 = -1
	for _, rec := range payload.Recommendations {
		km, err := strconv.ParseFloat(strings.TrimSuffix(rec.Distance, " km"), 64)
		if err != nil {
			t.Fatalf("parse distance %q: %v", rec.Distance, err)
		}
		if km < prev {
			t.Fatalf("recommendations not sorted ascending: %v before %v", prev, km)
		}
		prev = km
	}
}

func TestRecommendationRadiusCoversMetroArea(t *testing.T) {
	// Every recommendation surface shares the 15 km radius.
	if RecommendationRadiusKm != 15.0 {
		t.Fatalf("RecommendationRadiusKm = %v, want 15", RecommendationRadiusKm)
	}
}

func TestNearbyZeroRadiusUsesDefault(t *testing.T) {
	svc := newTestService(t)

	payload := svc.Nearby(context.Background(), "", 0)
	// The synthetic location sits on a catalog area, so the default
	// radius always covers at least one product location.
	if len(payload.Recommendations) == 0 {
		t.Fatal("default radius produced no recommendations")
	}
}
