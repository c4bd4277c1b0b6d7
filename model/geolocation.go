package model

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// InBounds reports whether the point lies within WGS84 coordinate bounds.
func (p GeoPoint) InBounds() bool {
	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// GeoBox is a bounding box given by its four edge coordinates.
type GeoBox struct {
	West  float64
	East  float64
	South float64
	North float64
}

// GeoLocation describes where a resource was collected or what area it
// covers. Any combination of place name, point, box, and polygon may be
// present on the same entry; each sub-shape is exported independently.
type GeoLocation struct {
	Place   string
	Point   *GeoPoint
	Box     *GeoBox
	Polygon []GeoPoint
	// InPolygonPoint marks a point inside the polygon, distinguishing the
	// enclosed area from its complement for polygons spanning the antimeridian.
	InPolygonPoint *GeoPoint
}

// HasShape reports whether the geolocation carries any exportable content.
func (g *GeoLocation) HasShape() bool {
	return g.Place != "" || g.Point != nil || g.Box != nil || len(g.Polygon) >= 3
}
