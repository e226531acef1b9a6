package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusMeters = 6_371_000

// Position is a WGS84 coordinate pair. The zero value is valid input for
// NewPosition but fails IsValid until both members are finite.
type Position struct {
	Longitude float64 `json:"longitude" groups:"basic"`
	Latitude  float64 `json:"latitude" groups:"basic"`
}

func NewPosition(longitude float64, latitude float64) Position {
	return Position{Longitude: longitude, Latitude: latitude}
}

// ParsePosition parses a "longitude,latitude" pair as used in from/to/via
// query parameters.
func ParsePosition(text string) (Position, error) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("coordinate pair must be longitude,latitude: %q", text)
	}

	longitude, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
	}
	latitude, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Position{}, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
	}

	return Position{Longitude: longitude, Latitude: latitude}, nil
}

func (p Position) IsValid() bool {
	return !math.IsNaN(p.Longitude) && !math.IsInf(p.Longitude, 0) &&
		!math.IsNaN(p.Latitude) && !math.IsInf(p.Latitude, 0)
}

// DistanceTo returns the great-circle distance in meters.
func (p Position) DistanceTo(other Position) float64 {
	dLat := toRad(other.Latitude - p.Latitude)
	dLon := toRad(other.Longitude - p.Longitude)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(p.Latitude))*math.Cos(toRad(other.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// AsLonLatString renders the position the way the wire format and cache keys
// expect it, longitude first.
func (p Position) AsLonLatString() string {
	return strconv.FormatFloat(p.Longitude, 'f', 6, 64) + "," + strconv.FormatFloat(p.Latitude, 'f', 6, 64)
}

func (p Position) Equals(other Position) bool {
	return p.Longitude == other.Longitude && p.Latitude == other.Latitude
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
