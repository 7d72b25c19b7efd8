package geo

import (
	"math"
	"testing"
)

func TestHaversineZeroForIdenticalPoints(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lon: 0},
		{Lat: 13.0827, Lon: 80.2707},
		{Lat: -33.8688, Lon: 151.2093},
		{Lat: 89.9, Lon: -179.9},
	}

	for _, p := range points {
		if d := Haversine(p, p); d != 0 {
			t.Errorf("Haversine(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Lat: 13.0827, Lon: 80.2707}, {Lat: 13.1143, Lon: 80.1548}},
		{{Lat: 12.9815, Lon: 80.2180}, {Lat: 13.0891, Lon: 80.2107}},
		{{Lat: 51.5074, Lon: -0.1278}, {Lat: 40.7128, Lon: -74.0060}},
	}

	for _, pair := range pairs {
		forward := Haversine(pair[0], pair[1])
		backward := Haversine(pair[1], pair[0])
		if math.Abs(forward-backward) > 1e-9 {
			t.Errorf("Haversine not symmetric: %v vs %v", forward, backward)
		}
		if forward < 0 {
			t.Errorf("Haversine(%v, %v) = %v, want non-negative", pair[0], pair[1], forward)
		}
	}
}

func TestHaversineLatitudeDegree(t *testing.T) {
	// 0.01 degrees of latitude is roughly 1.11 km anywhere on Earth.
	a := Coordinate{Lat: 13.08, Lon: 80.27}
	b := Coordinate{Lat: 13.09, Lon: 80.27}

	got := Haversine(a, b)
	if math.Abs(got-1.11) > 0.05 {
		t.Errorf("Haversine 0.01 deg latitude = %v km, want 1.11 +/- 0.05", got)
	}
}
