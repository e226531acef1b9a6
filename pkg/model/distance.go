package model

import "fmt"

// DistanceSource records where a distance figure came from. The values form a
// strict preference order used by the fallback chain in leg and trip
// construction: declared figures win over structured sums, which win over raw
// coordinate summation.
type DistanceSource string

const (
	DistanceSourceTrip           DistanceSource = "trip"
	DistanceSourceLegsSum        DistanceSource = "legs-sum"
	DistanceSourceLegLength      DistanceSource = "2a.leg.length"
	DistanceSourceTrackSections  DistanceSource = "2b.track-sections"
	DistanceSourceLinkProjection DistanceSource = "2c.link-projection"
	DistanceSourceUnknown        DistanceSource = "unknown"
)

type DistanceData struct {
	DistanceM int            `json:"distanceM" groups:"basic"`
	Source    DistanceSource `json:"source" groups:"detailed"`
}

func NewDistanceData(distanceM int, source DistanceSource) DistanceData {
	return DistanceData{DistanceM: distanceM, Source: source}
}

func EmptyDistanceData() DistanceData {
	return DistanceData{DistanceM: 0, Source: DistanceSourceUnknown}
}

// SumDistances adds the magnitudes and keeps the FIRST operand's provenance
// tag, so a trip-level figure stays trip-sourced as leg figures are folded in.
// Confirmed with the data owners as intentional, not an accident.
func SumDistances(a DistanceData, b DistanceData) DistanceData {
	return DistanceData{
		DistanceM: a.DistanceM + b.DistanceM,
		Source:    a.Source,
	}
}

// Format renders the display form: meters below 1km, otherwise kilometers with
// one decimal.
func (d DistanceData) Format() string {
	if d.DistanceM < 1000 {
		return fmt.Sprintf("%dm", d.DistanceM)
	}

	return fmt.Sprintf("%.1fkm", float64(d.DistanceM)/1000)
}
