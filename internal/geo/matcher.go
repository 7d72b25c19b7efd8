package geo

import (
	"math"
	"sort"
)

// DefaultSearchRadiusKm is the radius used when the caller does not
// specify one.
const DefaultSearchRadiusKm = 10.0

// Match is a product location within the search radius.
type Match struct {
	Location   ProductLocation
	DistanceKm float64
}

// FindNearby returns the catalog locations within maxDistanceKm of the
// coordinate, sorted by ascending distance. Distances are rounded to two
// decimals before filtering and sorting, so the reported values are
// consistent with the ordering. Equidistant locations keep catalog order.
func (c *Catalog) FindNearby(coord Coordinate, maxDistanceKm float64) []Match {
	matches := make([]Match, 0, len(c.locations))
	for _, loc := range c.locations {
		distance := roundKm(Haversine(coord, loc.Coordinate))
		if distance <= maxDistanceKm {
			matches = append(matches, Match{Location: loc, DistanceKm: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
