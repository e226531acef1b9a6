package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/schema"
)

var ErrTripWithoutLegs = errors.New("trip has no usable legs")

type TripRealtimeData struct {
	Unplanned  bool `json:"unplanned,omitempty" groups:"basic"`
	Cancelled  bool `json:"cancelled,omitempty" groups:"basic"`
	Deviation  bool `json:"deviation,omitempty" groups:"basic"`
	Delayed    bool `json:"delayed,omitempty" groups:"basic"`
	Infeasible bool `json:"infeasible,omitempty" groups:"basic"`
}

type Trip struct {
	ID string `json:"id" groups:"basic"`

	Duration Duration     `json:"duration" groups:"basic"`
	Distance DistanceData `json:"distance" groups:"basic"`

	Transfers int `json:"transfers" groups:"basic"`

	StartDateTime *time.Time `json:"startDateTime,omitempty" groups:"basic"`
	EndDateTime   *time.Time `json:"endDateTime,omitempty" groups:"basic"`

	Legs []Leg `json:"legs" groups:"basic"`

	RealtimeData TripRealtimeData `json:"realtimeData" groups:"basic"`
}

// NewTripFromSchema builds one trip from its normalized delivery entry. Legs
// with an unknown variant block are dropped with a warning; a trip left with
// no legs at all is a hard failure.
func NewTripFromSchema(s schema.TripResult, context *ResolutionContext) (*Trip, error) {
	if s.Trip == nil {
		return nil, ErrTripWithoutLegs
	}

	trip := &Trip{
		ID:        s.Trip.ID,
		Transfers: s.Trip.Transfers,

		StartDateTime: parseWireTime(s.Trip.StartTime, context),
		EndDateTime:   parseWireTime(s.Trip.EndTime, context),

		RealtimeData: TripRealtimeData{
			Unplanned:  s.Trip.Unplanned,
			Cancelled:  s.Trip.Cancelled,
			Deviation:  s.Trip.Deviation,
			Delayed:    s.Trip.Delayed,
			Infeasible: s.Trip.Infeasible,
		},
	}

	if trip.ID == "" {
		trip.ID = s.ID
	}

	for _, legSchema := range s.Trip.Legs {
		leg, err := NewLegFromSchema(legSchema, context)
		if err != nil {
			log.Debug().Int("leg", legSchema.ID).Str("trip", trip.ID).Msg("Dropping leg with unknown variant")
			continue
		}

		trip.Legs = append(trip.Legs, leg)
	}

	if len(trip.Legs) == 0 {
		return nil, ErrTripWithoutLegs
	}

	if s.Trip.Duration != "" {
		if duration, err := ParseDuration(s.Trip.Duration); err == nil {
			trip.Duration = duration
		}
	}
	if trip.Duration.TotalMinutes == 0 && trip.StartDateTime != nil && trip.EndDateTime != nil {
		trip.Duration = DurationBetween(*trip.StartDateTime, *trip.EndDateTime)
	}

	trip.Distance = deriveTripDistance(s.Trip, trip.Legs)

	return trip, nil
}

// deriveTripDistance prefers the trip-level declared distance, falling back
// to the sum of per-leg derived distances.
func deriveTripDistance(s *schema.Trip, legs []Leg) DistanceData {
	if s.DistanceM > 0 {
		return NewDistanceData(s.DistanceM, DistanceSourceTrip)
	}

	total := NewDistanceData(0, DistanceSourceLegsSum)
	for _, leg := range legs {
		total = SumDistances(total, leg.Common().Distance)
	}

	return total
}

// ComputeTripHash fingerprints the itinerary so a refreshed search can detect
// "the same" trip coming back: per leg the type and index, the formatted
// duration, and for timed legs the service name and boarding/alighting clock
// times. Not cryptographic; date-collisions are acceptable for this use.
func ComputeTripHash(trip *Trip) string {
	var parts []string

	for idx, leg := range trip.Legs {
		parts = append(parts, fmt.Sprintf("%s%d", leg.Type(), idx))

		if leg.Common().Duration != nil {
			parts = append(parts, leg.Common().Duration.Format())
		}

		if timedLeg, ok := leg.(*TimedLeg); ok {
			parts = append(parts, timedLeg.Service.FormatServiceName())
			parts = append(parts, timedLeg.FromStopCall.Departure.Format())
			parts = append(parts, timedLeg.ToStopCall.Arrival.Format())
		}
	}

	checksum := sha256.Sum256([]byte(strings.Join(parts, "_")))

	return hex.EncodeToString(checksum[:])
}

// BBox covers every coordinate the trip knows about: track polylines plus
// resolved endpoint positions.
func (t *Trip) BBox() geo.BBox {
	bbox := geo.NewBBox()

	for _, leg := range t.Legs {
		common := leg.Common()

		if common.Track != nil {
			for _, position := range common.Track.Coordinates() {
				bbox.Extend(position)
			}
		}

		if common.FromPlace != nil {
			bbox.Extend(common.FromPlace.GeoPosition)
		}
		if common.ToPlace != nil {
			bbox.Extend(common.ToPlace.GeoPosition)
		}
	}

	return bbox
}

// Situations gathers the situation content of all timed legs, deduplicated by
// situation number.
func (t *Trip) Situations() []*SituationContent {
	seen := map[string]bool{}
	var situations []*SituationContent

	for _, leg := range t.Legs {
		timedLeg, ok := leg.(*TimedLeg)
		if !ok {
			continue
		}

		for _, situation := range timedLeg.Situations {
			if !seen[situation.SituationNumber] {
				seen[situation.SituationNumber] = true
				situations = append(situations, situation)
			}
		}
	}

	return situations
}
