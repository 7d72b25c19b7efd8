package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

// Resolution sources. Synthetic records are generated locally when the
// upstream lookup is disabled or fails.
const (
	SourceIPInfo    = "ipinfo"
	SourceSynthetic = "synthetic"
)

// jitterDegrees is the maximum offset applied per axis to synthetic
// coordinates so repeated fallbacks do not collide.
const jitterDegrees = 0.01

// IPGeoRecord is the geolocation data for an IP address.
type IPGeoRecord struct {
	IP         string     `json:"ip"`
	Hostname   string     `json:"hostname,omitempty"`
	City       string     `json:"city"`
	Region     string     `json:"region"`
	Country    string     `json:"country"`
	Loc        string     `json:"loc"`
	Org        string     `json:"org,omitempty"`
	Postal     string     `json:"postal,omitempty"`
	Timezone   string     `json:"timezone,omitempty"`
	Area       string     `json:"area"`
	Coordinate Coordinate `json:"-"`
}

// Resolution is the outcome of an IP lookup. Source tells callers whether
// the record came from the upstream provider or was synthesized locally;
// Reason explains a synthetic fallback.
type Resolution struct {
	Record IPGeoRecord
	Source string
	Reason string
}

// Synthetic reports whether the record was generated locally.
func (r Resolution) Synthetic() bool {
	return r.Source == SourceSynthetic
}

// Resolver looks up IP geolocation via an ipinfo-compatible API and
// degrades to synthetic in-region records on any failure. Resolve never
// returns an error.
type Resolver struct {
	catalog *Catalog
	client  *http.Client
	baseURL string
	token   string
	log     *logger.Logger
}

// NewResolver creates a resolver backed by the given catalog.
func NewResolver(catalog *Catalog, cfg config.GeoConfig, log *logger.Logger) *Resolver {
	baseURL := strings.TrimRight(cfg.GetIPInfoBaseURL(), "/")
	if baseURL == "" {
		baseURL = "https://ipinfo.io"
	}
	return &Resolver{
		catalog: catalog,
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: baseURL,
		token:   cfg.GetIPInfoToken(),
		log:     log,
	}
}

// Resolve returns the geolocation for the IP. On any upstream problem it
// falls back to a synthetic record and records the reason.
func (r *Resolver) Resolve(ctx context.Context, ip string) Resolution {
	if r.token == "" {
		return r.fallback(ip, "lookup disabled: no token configured")
	}

	record, err := r.lookup(ctx, ip)
	if err != nil {
		return r.fallback(ip, err.Error())
	}

	return Resolution{Record: record, Source: SourceIPInfo}
}

func (r *Resolver) lookup(ctx context.Context, ip string) (IPGeoRecord, error) {
	reqURL := fmt.Sprintf("%s/%s?token=%s", r.baseURL, ip, r.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return IPGeoRecord{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return IPGeoRecord{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return IPGeoRecord{}, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var record IPGeoRecord
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return IPGeoRecord{}, err
	}

	record.Coordinate, record.Area = r.classify(record.Loc)
	return record, nil
}

// classify parses a "lat,lon" string and names the nearest catalog area.
// Malformed positions map to the default area and its center.
func (r *Resolver) classify(loc string) (Coordinate, string) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		fallbackArea := r.catalog.DefaultArea()
		return fallbackArea.Coordinate, fallbackArea.Name
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLat != nil || errLon != nil {
		fallbackArea := r.catalog.DefaultArea()
		return fallbackArea.Coordinate, fallbackArea.Name
	}

	coord := Coordinate{Lat: lat, Lon: lon}
	return coord, r.catalog.NearestArea(coord).Name
}

func (r *Resolver) fallback(requestedIP, reason string) Resolution {
	record := r.syntheticRecord()
	if r.log != nil {
		r.log.GeoFallback(requestedIP, record.Area, reason)
	}
	return Resolution{Record: record, Source: SourceSynthetic, Reason: reason}
}

// syntheticRecord fabricates a plausible in-region record: a random
// catalog area with jittered coordinates and carrier-shaped metadata.
func (r *Resolver) syntheticRecord() IPGeoRecord {
	region := r.catalog.Region()
	areas := r.catalog.Areas()
	area := areas[rand.IntN(len(areas))]

	coord := Coordinate{
		Lat: area.Coordinate.Lat + randomJitter(),
		Lon: area.Coordinate.Lon + randomJitter(),
	}

	return IPGeoRecord{
		IP:         fmt.Sprintf("103.%d.%d.%d", rand.IntN(256), rand.IntN(256), rand.IntN(256)),
		Hostname:   fmt.Sprintf("host-%d.airtel.net.in", 100+rand.IntN(900)),
		City:       region.City,
		Region:     region.State,
		Country:    region.Country,
		Loc:        fmt.Sprintf("%.4f,%.4f", coord.Lat, coord.Lon),
		Org:        fmt.Sprintf("AS%d Bharti Airtel Ltd.", 10000+rand.IntN(90000)),
		Postal:     fmt.Sprintf("6000%d", 10+rand.IntN(90)),
		Timezone:   "Asia/Kolkata",
		Area:       area.Name,
		Coordinate: coord,
	}
}

func randomJitter() float64 {
	return (rand.Float64()*2 - 1) * jitterDegrees
}
