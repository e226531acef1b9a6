package model

import (
	"errors"
	"fmt"

	"github.com/openjourney/ojp/pkg/schema"
)

type LegType string

const (
	LegTypeTimed      LegType = "TimedLeg"
	LegTypeTransfer   LegType = "TransferLeg"
	LegTypeContinuous LegType = "ContinuousLeg"
)

var ErrUnknownLegVariant = errors.New("leg carries none of the known variant blocks")

// Leg is one homogeneous segment of a trip. The three variants share
// LegCommon and are distinguished by Type().
type Leg interface {
	Common() *LegCommon
	Type() LegType

	// LineType classifies the leg for the rendering handoff.
	LineType() LegLineType
}

type LegCommon struct {
	ID int `json:"id" groups:"basic"`

	Duration *Duration    `json:"duration,omitempty" groups:"basic"`
	Distance DistanceData `json:"distance" groups:"basic"`

	FromRef PlaceRef `json:"fromRef" groups:"basic"`
	ToRef   PlaceRef `json:"toRef" groups:"basic"`

	// Resolved against the delivery's place map; nil with a recorded warning
	// when the ref was absent. The leg is still constructed.
	FromPlace *Place `json:"fromPlace,omitempty" groups:"detailed"`
	ToPlace   *Place `json:"toPlace,omitempty" groups:"detailed"`

	Track        *LegTrack     `json:"track,omitempty" groups:"detailed"`
	PathGuidance *PathGuidance `json:"pathGuidance,omitempty" groups:"detailed"`

	EmissionCO2KG *float64 `json:"emissionCO2KG,omitempty" groups:"detailed"`
}

func (c *LegCommon) Common() *LegCommon { return c }

type TimedLeg struct {
	LegCommon

	FromStopCall          *StopPointCall   `json:"fromStopCall" groups:"basic"`
	ToStopCall            *StopPointCall   `json:"toStopCall" groups:"basic"`
	IntermediateStopCalls []*StopPointCall `json:"intermediateStopCalls,omitempty" groups:"detailed"`

	Service *JourneyService `json:"service" groups:"basic"`

	Situations []*SituationContent `json:"situations,omitempty" groups:"basic"`
}

func (l *TimedLeg) Type() LegType { return LegTypeTimed }

type ContinuousLeg struct {
	LegCommon

	Mode TransportMode `json:"mode" groups:"basic"`

	TimeWindowStart *StopTime `json:"-"`
}

func (l *ContinuousLeg) Type() LegType { return LegTypeContinuous }

func (l *ContinuousLeg) IsWalking() bool        { return l.Mode == TransportModeWalk }
func (l *ContinuousLeg) IsDriveCarLeg() bool    { return l.Mode == TransportModeSelfDriveCar }
func (l *ContinuousLeg) IsTaxi() bool           { return l.Mode == TransportModeTaxi }
func (l *ContinuousLeg) IsSharedMobility() bool { return l.Mode.IsSharedMobility() }

type TransferLeg struct {
	LegCommon

	TransferType string `json:"transferType" groups:"basic"`
}

func (l *TransferLeg) Type() LegType { return LegTypeTransfer }

// NewLegFromSchema dispatches on which of the three mutually exclusive
// variant blocks is populated. A leg with none of them is a malformed
// delivery entry; the caller drops it and keeps the trip.
func NewLegFromSchema(s schema.Leg, context *ResolutionContext) (Leg, error) {
	switch {
	case s.TimedLeg != nil:
		return newTimedLeg(s, context), nil
	case s.TransferLeg != nil:
		return newTransferLeg(s, context), nil
	case s.ContinuousLeg != nil:
		return newContinuousLeg(s, context), nil
	}

	context.Warn(Warning{Kind: WarningUnknownLegVariant, Detail: fmt.Sprintf("leg %d", s.ID)})

	return nil, ErrUnknownLegVariant
}

func newTimedLeg(s schema.Leg, context *ResolutionContext) *TimedLeg {
	source := s.TimedLeg

	leg := &TimedLeg{
		LegCommon: LegCommon{
			ID:    s.ID,
			Track: NewLegTrackFromSchema(source.Track),
		},

		FromStopCall: NewStopPointCallFromSchema(source.Board, context),
		ToStopCall:   NewStopPointCallFromSchema(source.Alight, context),

		Service: NewJourneyServiceFromSchema(source.Service),
	}

	for _, intermediate := range source.Intermediates {
		leg.IntermediateStopCalls = append(leg.IntermediateStopCalls, NewStopPointCallFromSchema(intermediate, context))
	}

	leg.Situations = context.ResolveSituations(leg.Service.SituationRefs)

	leg.FromRef = PlaceRef{Ref: source.Board.StopPointRef, Name: source.Board.StopPointName, Source: PlaceRefSourceStopPoint}
	leg.ToRef = PlaceRef{Ref: source.Alight.StopPointRef, Name: source.Alight.StopPointName, Source: PlaceRefSourceStopPoint}
	leg.FromPlace = leg.FromStopCall.Place
	leg.ToPlace = leg.ToStopCall.Place

	finishLegCommon(&leg.LegCommon, s.Duration, 0, context)

	if leg.Duration == nil {
		if from, to := leg.FromStopCall.Departure.Best(), leg.ToStopCall.Arrival.Best(); from != nil && to != nil {
			duration := DurationBetween(*from, *to)
			leg.Duration = &duration
		}
	}

	return leg
}

func newTransferLeg(s schema.Leg, context *ResolutionContext) *TransferLeg {
	source := s.TransferLeg

	leg := &TransferLeg{
		LegCommon: LegCommon{
			ID:           s.ID,
			FromRef:      NewPlaceRefFromSchema(source.FromRef),
			ToRef:        NewPlaceRefFromSchema(source.ToRef),
			PathGuidance: NewPathGuidanceFromSchema(source.PathGuidance),
		},

		TransferType: source.TransferType,
	}

	leg.FromPlace = context.ResolvePlace(leg.FromRef, "transfer-leg from")
	leg.ToPlace = context.ResolvePlace(leg.ToRef, "transfer-leg to")

	duration := s.Duration
	if duration == "" {
		duration = source.Duration
	}
	if duration == "" {
		duration = source.WalkDuration
	}
	finishLegCommon(&leg.LegCommon, duration, 0, context)

	return leg
}

func newContinuousLeg(s schema.Leg, context *ResolutionContext) *ContinuousLeg {
	source := s.ContinuousLeg

	leg := &ContinuousLeg{
		LegCommon: LegCommon{
			ID:           s.ID,
			FromRef:      NewPlaceRefFromSchema(source.FromRef),
			ToRef:        NewPlaceRefFromSchema(source.ToRef),
			Track:        NewLegTrackFromSchema(source.Track),
			PathGuidance: NewPathGuidanceFromSchema(source.PathGuidance),
		},

		Mode: parseTransportMode(source.Mode),
	}

	leg.FromPlace = context.ResolvePlace(leg.FromRef, "continuous-leg from")
	leg.ToPlace = context.ResolvePlace(leg.ToRef, "continuous-leg to")

	duration := s.Duration
	if duration == "" {
		duration = source.Duration
	}
	finishLegCommon(&leg.LegCommon, duration, source.LengthM, context)

	if start := parseWireTime(source.TimeWindowStart, context); start != nil {
		leg.TimeWindowStart = &StopTime{Timetable: start}
	}

	return leg
}

func finishLegCommon(common *LegCommon, durationText string, declaredLengthM int, context *ResolutionContext) {
	if durationText != "" {
		if duration, err := ParseDuration(durationText); err == nil {
			common.Duration = &duration
		} else {
			context.Warn(Warning{Kind: WarningMalformedTimestamp, Detail: durationText})
		}
	}

	common.Distance = deriveLegDistance(common, declaredLengthM)
}

// deriveLegDistance walks the fallback chain in strict priority order:
// declared leg length, summed track-section lengths, then summed
// link-projection segment distances. First match wins and its provenance tag
// is carried on the result.
func deriveLegDistance(common *LegCommon, declaredLengthM int) DistanceData {
	if declaredLengthM > 0 {
		return NewDistanceData(declaredLengthM, DistanceSourceLegLength)
	}

	if common.Track != nil {
		var sectionSum int
		for _, section := range common.Track.Sections {
			sectionSum += section.LengthM
		}
		if sectionSum > 0 {
			return NewDistanceData(sectionSum, DistanceSourceTrackSections)
		}

		var projectionSum int
		for _, section := range common.Track.Sections {
			if section.LinkProjection != nil {
				projectionSum += section.LinkProjection.ComputeLengthM()
			}
		}
		if projectionSum > 0 {
			return NewDistanceData(projectionSum, DistanceSourceLinkProjection)
		}
	}

	return EmptyDistanceData()
}
