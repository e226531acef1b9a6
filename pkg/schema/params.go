package schema

import "time"

// PlaceContext encodes one endpoint of a trip or board request, either a stop
// ref or a literal coordinate.
type PlaceContext struct {
	StopPlaceRef string
	Name         string
	GeoPosition  *GeoPosition
}

func (p PlaceContext) IsCoordinate() bool {
	return p.StopPlaceRef == "" && p.GeoPosition != nil
}

type BBoxRestriction struct {
	LowerLongitude float64
	LowerLatitude  float64
	UpperLongitude float64
	UpperLatitude  float64
}

type LocationInformationParams struct {
	Text string

	BBox *BBoxRestriction

	// Place-type restriction, e.g. "stop", "address", "poi", "topographicPlace".
	PlaceTypes []string

	// OSM tag filters for POI searches.
	POICategories []PointOfInterestCategory

	NumberOfResults int
}

type TripParams struct {
	Origin      PlaceContext
	Destination PlaceContext
	Via         []PlaceContext

	DepArrTime time.Time
	IsArrival  bool

	NumberOfResults       int
	NumberOfResultsBefore int
	NumberOfResultsAfter  int

	// Public-transport mode filter; empty means all modes.
	ModeFilter   []string
	RailSubmodes []string

	// Set for monomodal individual-transport requests (walk, cycle, car,
	// sharing modes). Empty means a regular public-transport trip.
	IndividualTransportMode string

	// Restriction bounds, passed through unvalidated.
	MinDurationMinutes *int
	MaxDurationMinutes *int
	MinDistanceM       *int
	MaxDistanceM       *int
	SpeedPercent       *int

	RealtimeMode string

	IncludeLegProjection     bool
	IncludeTurnDescription   bool
	IncludeIntermediateStops bool
}

type StopEventParams struct {
	StopPlaceRef string
	GeoPosition  *GeoPosition

	DepArrTime time.Time

	NumberOfResults int

	// "departure", "arrival" or "both".
	StopEventType string

	IncludePreviousCalls bool
	IncludeOnwardCalls   bool
	IncludeRealtimeData  bool
}

type TripInfoParams struct {
	JourneyRef      string
	OperatingDayRef string

	IncludeCalls           bool
	IncludeService         bool
	IncludeTrackProjection bool
}
