package geo

import "testing"

func TestFindNearbySortedAscending(t *testing.T) {
	catalog := NewCatalog()
	matches := catalog.FindNearby(catalog.Region().Center, 100)

	if len(matches) != len(catalog.Locations()) {
		t.Fatalf("got %d matches, want all %d locations within 100 km", len(matches), len(catalog.Locations()))
	}

	for i := 1; i < len(matches); i++ {
		if matches[i].DistanceKm < matches[i-1].DistanceKm {
			t.Errorf("matches not sorted: %v before %v", matches[i-1].DistanceKm, matches[i].DistanceKm)
		}
	}
}

func TestFindNearbyRespectsRadius(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		name   string
		coord  Coordinate
		radius float64
	}{
		{"default radius from center", catalog.Region().Center, DefaultSearchRadiusKm},
		{"tight radius from Ambattur", Coordinate{Lat: 13.1143, Lon: 80.1548}, 2},
		{"zero radius offset from all locations", Coordinate{Lat: 13.05, Lon: 80.20}, 0},
	}

	for _, tc := range tests {
		matches := catalog.FindNearby(tc.coord, tc.radius)
		if len(matches) > len(catalog.Locations()) {
			t.Errorf("%s: %d matches exceeds catalog size", tc.name, len(matches))
		}
		for _, m := range matches {
			if m.DistanceKm > tc.radius {
				t.Errorf("%s: match %q at %v km exceeds radius %v", tc.name, m.Location.Name, m.DistanceKm, tc.radius)
			}
		}
	}
}

func TestFindNearbyZeroRadiusExactLocation(t *testing.T) {
	catalog := NewCatalog()
	target := catalog.Locations()[0]

	matches := catalog.FindNearby(target.Coordinate, 0)

	if len(matches) != 1 {
		t.Fatalf("got %d matches at exact location with radius 0, want 1", len(matches))
	}
	if matches[0].Location.Name != target.Name {
		t.Errorf("got %q, want %q", matches[0].Location.Name, target.Name)
	}
	if matches[0].DistanceKm != 0 {
		t.Errorf("got distance %v, want 0", matches[0].DistanceKm)
	}
}

func TestFindNearbyNearestFirst(t *testing.T) {
	catalog := NewCatalog()
	// Right next to the Ambattur industrial estate.
	matches := catalog.FindNearby(Coordinate{Lat: 13.1130, Lon: 80.1540}, DefaultSearchRadiusKm)

	if len(matches) == 0 {
		t.Fatal("expected at least one match near Ambattur")
	}
	if matches[0].Location.Name != "Chennai Office Solutions" {
		t.Errorf("nearest match = %q, want Chennai Office Solutions", matches[0].Location.Name)
	}
}

func TestNearestArea(t *testing.T) {
	catalog := NewCatalog()

	tests := []struct {
		coord Coordinate
		want  string
	}{
		{Coordinate{Lat: 13.1143, Lon: 80.1548}, "Ambattur"},
		{Coordinate{Lat: 13.0891, Lon: 80.2107}, "Anna Nagar"},
		{Coordinate{Lat: 12.99, Lon: 80.22}, "Velachery"},
	}

	for _, tc := range tests {
		if got := catalog.NearestArea(tc.coord).Name; got != tc.want {
			t.Errorf("NearestArea(%v) = %q, want %q", tc.coord, got, tc.want)
		}
	}
}
