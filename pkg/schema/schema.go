// Package schema holds the normalized, version-independent intermediate
// shapes produced by the version bridge. Both wire generations map into these
// structs; everything downstream of the bridge consumes only this package.
package schema

// GeoPosition mirrors the wire siri:LongLat pair before conversion into
// geo.Position.
type GeoPosition struct {
	Longitude float64
	Latitude  float64
}

type PlaceRef struct {
	StopPointRef string
	StopPlaceRef string
	Name         string
	GeoPosition  *GeoPosition
}

type Place struct {
	Name        string
	GeoPosition *GeoPosition

	StopPlace        *StopPlace
	StopPoint        *StopPoint
	Address          *Address
	PointOfInterest  *PointOfInterest
	TopographicPlace *TopographicPlace

	Mode []string
}

type StopPlace struct {
	StopPlaceRef  string
	StopPlaceName string
	PrivateCodes  []PrivateCode
}

type StopPoint struct {
	StopPointRef  string
	StopPointName string
	PrivateCodes  []PrivateCode
}

type Address struct {
	AddressCode          string
	AddressName          string
	PostCode             string
	TopographicPlaceName string
	Street               string
	HouseNumber          string
}

type PointOfInterest struct {
	PointOfInterestCode string
	PointOfInterestName string
	Categories          []PointOfInterestCategory
}

type PointOfInterestCategory struct {
	OsmTagKey   string
	OsmTagValue string
}

type TopographicPlace struct {
	TopographicPlaceCode string
	TopographicPlaceName string
}

type PrivateCode struct {
	System string
	Value  string
}

// PlaceResult is one entry of a location-information delivery.
type PlaceResult struct {
	Place       Place
	Complete    bool
	Probability float64
}

type LocationInformationDelivery struct {
	Places []PlaceResult
}
