package geo

import "math"

// BBox is an axis-aligned bounding box over WGS84 positions. The zero-position
// box is the canonical invalid state: south-west starts at +Inf and north-east
// at -Inf so that the first Extend always snaps to the extended position.
type BBox struct {
	SouthWest Position `json:"southWest" groups:"basic"`
	NorthEast Position `json:"northEast" groups:"basic"`
}

func NewBBox(positions ...Position) BBox {
	bbox := BBox{
		SouthWest: Position{Longitude: math.Inf(1), Latitude: math.Inf(1)},
		NorthEast: Position{Longitude: math.Inf(-1), Latitude: math.Inf(-1)},
	}

	for _, position := range positions {
		bbox.Extend(position)
	}

	return bbox
}

// Extend grows the box to include position. It never shrinks the box.
func (b *BBox) Extend(position Position) {
	if !position.IsValid() {
		return
	}

	b.SouthWest.Longitude = math.Min(b.SouthWest.Longitude, position.Longitude)
	b.SouthWest.Latitude = math.Min(b.SouthWest.Latitude, position.Latitude)
	b.NorthEast.Longitude = math.Max(b.NorthEast.Longitude, position.Longitude)
	b.NorthEast.Latitude = math.Max(b.NorthEast.Latitude, position.Latitude)
}

func (b *BBox) IsValid() bool {
	return b.SouthWest.IsValid() && b.NorthEast.IsValid() &&
		b.SouthWest.Longitude <= b.NorthEast.Longitude &&
		b.SouthWest.Latitude <= b.NorthEast.Latitude
}

func (b *BBox) Center() Position {
	return Position{
		Longitude: (b.SouthWest.Longitude + b.NorthEast.Longitude) / 2,
		Latitude:  (b.SouthWest.Latitude + b.NorthEast.Latitude) / 2,
	}
}

func (b *BBox) Contains(position Position) bool {
	return b.IsValid() &&
		position.Longitude >= b.SouthWest.Longitude && position.Longitude <= b.NorthEast.Longitude &&
		position.Latitude >= b.SouthWest.Latitude && position.Latitude <= b.NorthEast.Latitude
}

// AsFlatCoordinates returns [minLon, minLat, maxLon, maxLat], the order used
// by GeoJSON bbox members and map fit-bounds calls.
func (b *BBox) AsFlatCoordinates() []float64 {
	return []float64{
		b.SouthWest.Longitude, b.SouthWest.Latitude,
		b.NorthEast.Longitude, b.NorthEast.Latitude,
	}
}
