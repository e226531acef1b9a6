package model

// TransportMode covers both the timetabled public-transport modes and the
// individual modes continuous legs use.
type TransportMode string

const (
	TransportModeBus       TransportMode = "bus"
	TransportModeTram      TransportMode = "tram"
	TransportModeRail      TransportMode = "rail"
	TransportModeMetro     TransportMode = "metro"
	TransportModeWater     TransportMode = "water"
	TransportModeCableway  TransportMode = "telecabin"
	TransportModeFunicular TransportMode = "funicular"
	TransportModeUnknown   TransportMode = "unknown"

	TransportModeWalk            TransportMode = "walk"
	TransportModeCycle           TransportMode = "cycle"
	TransportModeSelfDriveCar    TransportMode = "self-drive-car"
	TransportModeCarShuttleTrain TransportMode = "car-shuttle-train"
	TransportModeCarFerry        TransportMode = "car-ferry"
	TransportModeTaxi            TransportMode = "taxi"
	TransportModeBicycleRental   TransportMode = "bicycle_rental"
	TransportModeEscooterRental  TransportMode = "escooter_rental"
	TransportModeCarSharing      TransportMode = "car_sharing"
)

// RailSubmode filters of the trip request.
type RailSubmode string

const (
	RailSubmodeLongDistance RailSubmode = "longDistance"
	RailSubmodeRegionalRail RailSubmode = "regionalRail"
	RailSubmodeSuburbanRail RailSubmode = "suburbanRailway"
	RailSubmodeTouristRail  RailSubmode = "touristRailway"
)

// RealtimeDataMode selects how much realtime decoration a trip request asks
// for.
type RealtimeDataMode string

const (
	RealtimeDataModeFull        RealtimeDataMode = "full"
	RealtimeDataModeExplanatory RealtimeDataMode = "explanatory"
	RealtimeDataModeNone        RealtimeDataMode = "none"
)

// monomodalNumberOfResults is the fixed per-mode result-count table of the
// trip request. Sharing and own-vehicle lookups only need geometry, not
// ranked alternatives, so they force the count to zero and let the router
// return its single route.
var monomodalNumberOfResults = map[TransportMode]int{
	TransportModeWalk:           0,
	TransportModeCycle:          0,
	TransportModeSelfDriveCar:   0,
	TransportModeTaxi:           0,
	TransportModeBicycleRental:  0,
	TransportModeEscooterRental: 0,
	TransportModeCarSharing:     0,
}

// NumberOfResultsForMode returns the forced result count for mode, or
// fallback when the mode takes ranked alternatives.
func NumberOfResultsForMode(mode TransportMode, fallback int) int {
	if forced, found := monomodalNumberOfResults[mode]; found {
		return forced
	}

	return fallback
}

func (m TransportMode) IsIndividual() bool {
	switch m {
	case TransportModeWalk, TransportModeCycle, TransportModeSelfDriveCar, TransportModeTaxi,
		TransportModeBicycleRental, TransportModeEscooterRental, TransportModeCarSharing:
		return true
	}

	return false
}

func (m TransportMode) IsSharedMobility() bool {
	switch m {
	case TransportModeBicycleRental, TransportModeEscooterRental, TransportModeCarSharing:
		return true
	}

	return false
}
