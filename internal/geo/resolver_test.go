package geo

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

type geoConfigStub struct {
	token   string
	baseURL string
}

func (c geoConfigStub) GetIPInfoToken() string   { return c.token }
func (c geoConfigStub) GetIPInfoBaseURL() string { return c.baseURL }
func (c geoConfigStub) GetGeoProbeIP() string    { return "103.48.198.141" }

func TestResolveFromUpstream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"ip": "103.48.198.141",
			"city": "Chennai",
			"region": "Tamil Nadu",
			"country": "IN",
			"loc": "13.0891,80.2107",
			"org": "AS24560 Bharti Airtel Ltd.",
			"timezone": "Asia/Kolkata"
		}`))
	}))
	defer server.Close()

	resolver := NewResolver(NewCatalog(), geoConfigStub{token: "test", baseURL: server.URL}, nil)
	res := resolver.Resolve(context.Background(), "103.48.198.141")

	if res.Source != SourceIPInfo {
		t.Fatalf("source = %q, want %q", res.Source, SourceIPInfo)
	}
	if res.Record.Area != "Anna Nagar" {
		t.Errorf("area = %q, want Anna Nagar", res.Record.Area)
	}
	if res.Record.IP != "103.48.198.141" {
		t.Errorf("ip = %q, want 103.48.198.141", res.Record.IP)
	}
}

func TestResolveMalformedLocUsesDefaultArea(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip": "1.2.3.4", "city": "Chennai", "loc": "not-a-position"}`))
	}))
	defer server.Close()

	resolver := NewResolver(NewCatalog(), geoConfigStub{token: "test", baseURL: server.URL}, nil)
	res := resolver.Resolve(context.Background(), "1.2.3.4")

	if res.Source != SourceIPInfo {
		t.Fatalf("source = %q, want %q", res.Source, SourceIPInfo)
	}
	if res.Record.Area != "Ambattur" {
		t.Errorf("area = %q, want default Ambattur", res.Record.Area)
	}
}

func TestResolveFallsBackOnUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	catalog := NewCatalog()
	resolver := NewResolver(catalog, geoConfigStub{token: "test", baseURL: server.URL}, nil)
	res := resolver.Resolve(context.Background(), "103.48.198.141")

	if !res.Synthetic() {
		t.Fatalf("source = %q, want synthetic", res.Source)
	}
	if res.Reason == "" {
		t.Error("synthetic resolution missing reason")
	}

	assertSyntheticRecord(t, catalog, res.Record)
}

func TestResolveDisabledWithoutToken(t *testing.T) {
	catalog := NewCatalog()
	resolver := NewResolver(catalog, geoConfigStub{}, nil)

	res := resolver.Resolve(context.Background(), "8.8.8.8")
	if !res.Synthetic() {
		t.Fatalf("source = %q, want synthetic", res.Source)
	}

	assertSyntheticRecord(t, catalog, res.Record)
}

func TestResolveSyntheticRecordsVary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	catalog := NewCatalog()
	resolver := NewResolver(catalog, geoConfigStub{token: "test", baseURL: server.URL}, nil)

	first := resolver.Resolve(context.Background(), "103.48.198.141").Record
	second := resolver.Resolve(context.Background(), "103.48.198.141").Record

	// Identical IP, hostname, org and position across two synthetic records
	// would mean the randomization is broken.
	if first.IP == second.IP && first.Hostname == second.Hostname &&
		first.Org == second.Org && first.Loc == second.Loc {
		t.Errorf("two synthetic records are identical: %+v", first)
	}

	assertSyntheticRecord(t, catalog, first)
	assertSyntheticRecord(t, catalog, second)
}

func assertSyntheticRecord(t *testing.T, catalog *Catalog, record IPGeoRecord) {
	t.Helper()

	var area *Area
	for i, a := range catalog.Areas() {
		if a.Name == record.Area {
			area = &catalog.Areas()[i]
			break
		}
	}
	if area == nil {
		t.Fatalf("synthetic area %q is not a catalog area", record.Area)
	}

	const eps = 1e-9
	if math.Abs(record.Coordinate.Lat-area.Coordinate.Lat) > jitterDegrees+eps {
		t.Errorf("lat %v jittered beyond %v from %v", record.Coordinate.Lat, jitterDegrees, area.Coordinate.Lat)
	}
	if math.Abs(record.Coordinate.Lon-area.Coordinate.Lon) > jitterDegrees+eps {
		t.Errorf("lon %v jittered beyond %v from %v", record.Coordinate.Lon, jitterDegrees, area.Coordinate.Lon)
	}

	if record.City != "Chennai" || record.Timezone != "Asia/Kolkata" {
		t.Errorf("synthetic record not in region: city=%q timezone=%q", record.City, record.Timezone)
	}
}
