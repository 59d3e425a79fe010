package cleaner

import (
	"math"

	"github.com/golang/geo/s2"
)

// BoundingBox is an inclusive latitude/longitude rectangle.
type BoundingBox struct {
	rect s2.Rect
}

func NewBoundingBox(minLat, maxLat, minLon, maxLon float64) BoundingBox {
	rect := s2.RectFromLatLng(s2.LatLngFromDegrees(minLat, minLon)).
		AddPoint(s2.LatLngFromDegrees(maxLat, maxLon))
	return BoundingBox{rect: rect}
}

// SanFrancisco covers the city proper.
var SanFrancisco = NewBoundingBox(37.70, 37.83, -122.52, -122.36)

// Contains reports whether the point lies inside the box or on its edge.
// NaN and out-of-range coordinates are never contained.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return b.rect.ContainsLatLng(s2.LatLngFromDegrees(lat, lon))
}

const binsPerDegree = 100

// GridBin floors a coordinate to its 0.01° cell. The small tolerance keeps
// values written on the grid (37.70, -122.40) in their own cell despite
// binary rounding of the product.
func GridBin(deg float64) float64 {
	return math.Floor(deg*binsPerDegree+1e-9) / binsPerDegree
}
