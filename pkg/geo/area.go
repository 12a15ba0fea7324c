// Package geo holds the field-boundary geometry used by the field pages:
// area on the sphere, GeoJSON/WKT encoding, centroid and bounding box.
package geo

import "math"

const (
	// EarthRadiusM is the mean earth radius used by the spherical-excess formula.
	EarthRadiusM = 6371000.0

	sqMetersPerHectare = 10000.0
	acresPerHectare    = 2.471
)

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FieldPolygon is an ordered ring of vertices. The last vertex connects back
// to the first; callers do not repeat the first vertex.
type FieldPolygon []GeoPoint

// MinVertices is the smallest ring that encloses an area.
const MinVertices = 3

// ComputeAreaHectares returns the area enclosed by poly on a sphere of radius
// EarthRadiusM, in hectares. Rings with fewer than MinVertices vertices, or
// with a non-finite coordinate, have no computable area and yield 0.
func ComputeAreaHectares(poly FieldPolygon) float64 {
	n := len(poly)
	if n < MinVertices {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		p1, p2 := poly[i], poly[(i+1)%n]
		lat1, lat2 := toRad(p1.Lat), toRad(p2.Lat)
		sum += (toRad(p2.Lng) - toRad(p1.Lng)) * (2 + math.Sin(lat1) + math.Sin(lat2))
	}
	area := math.Abs(sum*EarthRadiusM*EarthRadiusM/2) / sqMetersPerHectare
	if math.IsNaN(area) || math.IsInf(area, 0) {
		return 0
	}
	return area
}

// HectaresToAcres converts with the factor shown on the field pages.
func HectaresToAcres(ha float64) float64 { return ha * acresPerHectare }

// FromPairs builds a polygon from [lat, lng] pairs as drawn on the map.
func FromPairs(pairs [][2]float64) FieldPolygon {
	out := make(FieldPolygon, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, GeoPoint{Lat: p[0], Lng: p[1]})
	}
	return out
}

// Pairs is the inverse of FromPairs.
func (p FieldPolygon) Pairs() [][2]float64 {
	out := make([][2]float64, 0, len(p))
	for _, pt := range p {
		out = append(out, [2]float64{pt.Lat, pt.Lng})
	}
	return out
}

// Open drops a repeated closing vertex, if present.
func (p FieldPolygon) Open() FieldPolygon {
	if len(p) > 1 && p[0] == p[len(p)-1] {
		return p[:len(p)-1]
	}
	return p
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
