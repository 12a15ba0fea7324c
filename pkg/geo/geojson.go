package geo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkt"
)

// ErrNotPolygon is returned when an encoded geometry is not a polygon.
var ErrNotPolygon = errors.New("geometry is not a Polygon")

// PolygonFromGeoJSON reads the outer ring of a GeoJSON Polygon, either bare or
// wrapped in a Feature. GeoJSON stores positions as [lng, lat].
func PolygonFromGeoJSON(data []byte) (FieldPolygon, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	var g geom.T
	if head.Type == "Feature" {
		var f geojson.Feature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode geojson feature: %w", err)
		}
		g = f.Geometry
	} else if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode geojson geometry: %w", err)
	}
	return fromGeom(g)
}

// Feature wraps the ring in a GeoJSON Feature with the given id and properties.
func (p FieldPolygon) Feature(id string, props map[string]interface{}) ([]byte, error) {
	poly, err := p.geom()
	if err != nil {
		return nil, err
	}
	return json.Marshal(&geojson.Feature{ID: id, Geometry: poly, Properties: props})
}

// WKT encodes the ring as a closed WKT POLYGON.
func (p FieldPolygon) WKT() (string, error) {
	poly, err := p.geom()
	if err != nil {
		return "", err
	}
	return wkt.Marshal(poly)
}

// PolygonFromWKT is the inverse of FieldPolygon.WKT.
func PolygonFromWKT(s string) (FieldPolygon, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, fmt.Errorf("decode wkt: %w", err)
	}
	return fromGeom(g)
}

func (p FieldPolygon) geom() (*geom.Polygon, error) {
	ring := p.Open()
	if len(ring) == 0 {
		return geom.NewPolygon(geom.XY), nil
	}
	coords := make([]geom.Coord, 0, len(ring)+1)
	for _, pt := range ring {
		coords = append(coords, geom.Coord{pt.Lng, pt.Lat})
	}
	coords = append(coords, geom.Coord{ring[0].Lng, ring[0].Lat})
	return geom.NewPolygon(geom.XY).SetCoords([][]geom.Coord{coords})
}

func fromGeom(g geom.T) (FieldPolygon, error) {
	poly, ok := g.(*geom.Polygon)
	if !ok || poly == nil {
		return nil, ErrNotPolygon
	}
	if poly.NumLinearRings() == 0 {
		return FieldPolygon{}, nil
	}
	coords := poly.LinearRing(0).Coords()
	out := make(FieldPolygon, 0, len(coords))
	for _, c := range coords {
		out = append(out, GeoPoint{Lat: c.Y(), Lng: c.X()})
	}
	return out.Open(), nil
}
