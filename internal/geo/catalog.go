// Package geo provides geographic primitives: coordinates, distance
// calculation, the region catalog, IP geolocation and nearby-location
// matching.
package geo

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Area is a named neighborhood inside the service region.
type Area struct {
	Name       string
	Coordinate Coordinate
}

// ProductLocation is a physical store or office that can be recommended.
type ProductLocation struct {
	Name       string
	Category   string
	Coordinate Coordinate
	Address    string
}

// Region describes the supported service region.
type Region struct {
	City    string
	State   string
	Country string
	Center  Coordinate
}

// Catalog holds the immutable region data the service operates on.
// It is built once at startup and shared by handle.
type Catalog struct {
	region    Region
	areas     []Area
	locations []ProductLocation
}

// NewCatalog builds the catalog for the Chennai service region.
func NewCatalog() *Catalog {
	return &Catalog{
		region: Region{
			City:    "Chennai",
			State:   "Tamil Nadu",
			Country: "India",
			Center:  Coordinate{Lat: 13.0827, Lon: 80.2707},
		},
		areas: []Area{
			{Name: "Ambattur", Coordinate: Coordinate{Lat: 13.1143, Lon: 80.1548}},
			{Name: "Anna Nagar", Coordinate: Coordinate{Lat: 13.0891, Lon: 80.2107}},
			{Name: "T Nagar", Coordinate: Coordinate{Lat: 13.0418, Lon: 80.2341}},
			{Name: "Velachery", Coordinate: Coordinate{Lat: 12.9815, Lon: 80.2180}},
			{Name: "Adyar", Coordinate: Coordinate{Lat: 13.0012, Lon: 80.2565}},
			{Name: "Porur", Coordinate: Coordinate{Lat: 13.0359, Lon: 80.1567}},
			{Name: "Guindy", Coordinate: Coordinate{Lat: 13.0070, Lon: 80.2143}},
		},
		locations: []ProductLocation{
			{
				Name:       "Chennai Office Solutions",
				Category:   "office_supplies",
				Coordinate: Coordinate{Lat: 13.1133, Lon: 80.1538},
				Address:    "23 Ambattur Industrial Estate, Chennai",
			},
			{
				Name:       "TechHub Chennai",
				Category:   "electronics",
				Coordinate: Coordinate{Lat: 13.0881, Lon: 80.2117},
				Address:    "45 Anna Nagar East, Chennai",
			},
			{
				Name:       "Mega Retail Center",
				Category:   "retail",
				Coordinate: Coordinate{Lat: 13.0408, Lon: 80.2351},
				Address:    "78 T Nagar Main Road, Chennai",
			},
			{
				Name:       "Chennai Business Park",
				Category:   "office_space",
				Coordinate: Coordinate{Lat: 13.0349, Lon: 80.1577},
				Address:    "120 Porur Highway, Chennai",
			},
			{
				Name:       "IT Solutions Center",
				Category:   "software",
				Coordinate: Coordinate{Lat: 13.0060, Lon: 80.2153},
				Address:    "56 Guindy Industrial Area, Chennai",
			},
		},
	}
}

// Region returns the service region.
func (c *Catalog) Region() Region {
	return c.region
}

// Areas returns the named areas of the region.
// Callers must not mutate the returned slice.
func (c *Catalog) Areas() []Area {
	return c.areas
}

// Locations returns the product locations of the region.
// Callers must not mutate the returned slice.
func (c *Catalog) Locations() []ProductLocation {
	return c.locations
}

// DefaultArea returns the area used when a position cannot be classified.
func (c *Catalog) DefaultArea() Area {
	return c.areas[0]
}

// NearestArea returns the area whose center is closest to the coordinate.
// Ties keep the first area in catalog order.
func (c *Catalog) NearestArea(coord Coordinate) Area {
	nearest := c.areas[0]
	best := Haversine(coord, nearest.Coordinate)
	for _, area := range c.areas[1:] {
		if d := Haversine(coord, area.Coordinate); d < best {
			nearest = area
			best = d
		}
	}
	return nearest
}
