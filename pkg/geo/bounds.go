package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Bounds is the lat/lng bounding box of a ring.
type Bounds struct {
	SouthWest GeoPoint `json:"south_west"`
	NorthEast GeoPoint `json:"north_east"`
}

// Centroid returns the planar centroid of the ring in degree space, which is
// close enough for a map label on a single field. Degenerate rings fall back
// to the mean of their vertices.
func Centroid(p FieldPolygon) GeoPoint {
	ring := p.Open()
	if len(ring) == 0 {
		return GeoPoint{}
	}
	if len(ring) < MinVertices {
		var lat, lng float64
		for _, pt := range ring {
			lat += pt.Lat
			lng += pt.Lng
		}
		n := float64(len(ring))
		return GeoPoint{Lat: lat / n, Lng: lng / n}
	}
	c, _ := planar.CentroidArea(orb.Polygon{toRing(ring)})
	return GeoPoint{Lat: c.Lat(), Lng: c.Lon()}
}

// BoundingBox returns the smallest lat/lng box that holds every vertex.
func BoundingBox(p FieldPolygon) Bounds {
	if len(p) == 0 {
		return Bounds{}
	}
	b := toRing(p.Open()).Bound()
	return Bounds{
		SouthWest: GeoPoint{Lat: b.Min.Lat(), Lng: b.Min.Lon()},
		NorthEast: GeoPoint{Lat: b.Max.Lat(), Lng: b.Max.Lon()},
	}
}

func toRing(p FieldPolygon) orb.Ring {
	r := make(orb.Ring, 0, len(p)+1)
	for _, pt := range p {
		r = append(r, orb.Point{pt.Lng, pt.Lat})
	}
	if len(r) > 0 {
		r = append(r, r[0])
	}
	return r
}
