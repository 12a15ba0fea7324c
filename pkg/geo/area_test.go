package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// areaTolerance is the accepted error in hectares against planar reference values.
const areaTolerance = 1e-3

func equatorSquare() FieldPolygon {
	return FieldPolygon{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 0.001},
		{Lat: 0.001, Lng: 0.001},
		{Lat: 0.001, Lng: 0},
	}
}

func bangkokBlock() FieldPolygon {
	return FieldPolygon{
		{Lat: 13.75, Lng: 100.5},
		{Lat: 13.75, Lng: 100.51},
		{Lat: 13.76, Lng: 100.51},
		{Lat: 13.76, Lng: 100.5},
	}
}

func reversed(p FieldPolygon) FieldPolygon {
	out := make(FieldPolygon, len(p))
	for i := range p {
		out[len(p)-1-i] = p[i]
	}
	return out
}

func rotated(p FieldPolygon, k int) FieldPolygon {
	out := make(FieldPolygon, 0, len(p))
	out = append(out, p[k:]...)
	return append(out, p[:k]...)
}

func TestComputeAreaHectares_EquatorSquare(t *testing.T) {
	// 0.001° of arc is ~111.195 m on this sphere, so the planar square is ~1.2364 ha.
	got := ComputeAreaHectares(equatorSquare())
	assert.InDelta(t, 1.2364, got, areaTolerance)
}

func TestComputeAreaHectares_KnownField(t *testing.T) {
	assert.InDelta(t, 120.0972, ComputeAreaHectares(bangkokBlock()), areaTolerance)

	tri := FieldPolygon{{Lat: 10, Lng: 20}, {Lat: 10, Lng: 20.01}, {Lat: 10.005, Lng: 20.005}}
	assert.InDelta(t, 30.4409, ComputeAreaHectares(tri), areaTolerance)
}

func TestComputeAreaHectares_TooFewVertices(t *testing.T) {
	cases := map[string]FieldPolygon{
		"nil":   nil,
		"one":   {{Lat: 1, Lng: 1}},
		"two":   {{Lat: 0, Lng: 0}, {Lat: 0, Lng: 0.001}},
		"empty": {},
	}
	for name, poly := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 0.0, ComputeAreaHectares(poly))
		})
	}
}

func TestComputeAreaHectares_WindingAndRotation(t *testing.T) {
	for _, poly := range []FieldPolygon{equatorSquare(), bangkokBlock()} {
		want := ComputeAreaHectares(poly)
		assert.InDelta(t, want, ComputeAreaHectares(reversed(poly)), 1e-9)
		for k := 1; k < len(poly); k++ {
			assert.InDelta(t, want, ComputeAreaHectares(rotated(poly, k)), 1e-9)
			assert.InDelta(t, want, ComputeAreaHectares(reversed(rotated(poly, k))), 1e-9)
		}
	}
}

func TestComputeAreaHectares_NonFinite(t *testing.T) {
	poly := equatorSquare()
	poly[2].Lat = math.NaN()
	assert.Equal(t, 0.0, ComputeAreaHectares(poly))

	poly = equatorSquare()
	poly[1].Lng = math.Inf(1)
	assert.Equal(t, 0.0, ComputeAreaHectares(poly))
}

func TestComputeAreaHectares_DoesNotMutateInput(t *testing.T) {
	poly := bangkokBlock()
	before := append(FieldPolygon(nil), poly...)
	_ = ComputeAreaHectares(poly)
	assert.Equal(t, before, poly)
}

func TestPairsRoundTrip(t *testing.T) {
	pairs := [][2]float64{{13.75, 100.5}, {13.75, 100.51}, {13.76, 100.51}}
	poly := FromPairs(pairs)
	assert.Equal(t, GeoPoint{Lat: 13.75, Lng: 100.51}, poly[1])
	assert.Equal(t, pairs, poly.Pairs())
}

func TestOpen(t *testing.T) {
	closed := append(equatorSquare(), GeoPoint{Lat: 0, Lng: 0})
	assert.Len(t, closed.Open(), 4)
	assert.Len(t, equatorSquare().Open(), 4)
	assert.InDelta(t, ComputeAreaHectares(equatorSquare()), ComputeAreaHectares(closed), 1e-9)
}

func TestHectaresToAcres(t *testing.T) {
	assert.InDelta(t, 24.71, HectaresToAcres(10), 1e-9)
}
