package model

import "github.com/openjourney/ojp/pkg/schema"

// TripInfoResult is the full in-vehicle detail of one journey: every call of
// the run plus the service and its geometry.
type TripInfoResult struct {
	Calls []*StopPointCall `json:"calls" groups:"basic"`

	Service *JourneyService `json:"service,omitempty" groups:"basic"`

	Track *LegTrack `json:"track,omitempty" groups:"detailed"`

	OperatingDay string `json:"operatingDay,omitempty" groups:"basic"`

	Situations []*SituationContent `json:"situations,omitempty" groups:"basic"`
}

func NewTripInfoResultFromSchema(s *schema.TripInfoResult, context *ResolutionContext) *TripInfoResult {
	if s == nil {
		return nil
	}

	result := &TripInfoResult{
		Track:        NewLegTrackFromSchema(s.Track),
		OperatingDay: s.OperatingDay,
	}

	for _, call := range s.Calls {
		result.Calls = append(result.Calls, NewStopPointCallFromSchema(call, context))
	}

	if s.Service != nil {
		result.Service = NewJourneyServiceFromSchema(*s.Service)
		result.Situations = context.ResolveSituations(result.Service.SituationRefs)
	}

	return result
}
