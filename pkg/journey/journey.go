// Package journey plans multi-segment journeys over a sequence of via points
// by issuing one trip search per segment and stitching the results together.
package journey

import (
	"context"
	"errors"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
)

var ErrNotEnoughPoints = errors.New("journey needs at least an origin and a destination")

// Planner chains trip searches: the first trip of each segment fixes the
// departure time of the next one, and its legs are prepended to every
// alternative of the final segment. Only fetch errors abort the chain; a
// segment without trips contributes nothing and planning carries on with the
// previous departure time.
type Planner struct {
	client *client.Client

	// Applied to every per-segment request, e.g. mode filters.
	Configure func(request *client.TripRequest)
}

func NewPlanner(c *client.Client) *Planner {
	return &Planner{client: c}
}

func (p *Planner) Plan(ctx context.Context, points []schema.PlaceContext, depArrTime time.Time) (*client.TripsResponse, error) {
	if len(points) < 2 {
		return nil, ErrNotEnoughPoints
	}

	merged := &client.TripsResponse{
		Places:     map[string]*model.Place{},
		Situations: map[string]*model.SituationContent{},
	}

	var prefix []*model.Trip
	departure := depArrTime

	for segment := 0; segment < len(points)-1; segment++ {
		request := client.NewTripRequest(points[segment], points[segment+1], departure, false)
		if p.Configure != nil {
			p.Configure(request)
		}

		response, err := request.Fetch(ctx, p.client)
		if err != nil {
			return nil, err
		}

		for ref, place := range response.Places {
			merged.Places[ref] = place
		}
		for number, situation := range response.Situations {
			merged.Situations[number] = situation
		}
		merged.Warnings = append(merged.Warnings, response.Warnings...)

		if segment == len(points)-2 {
			// The final trip list is always the last segment's, possibly
			// empty.
			merged.Trips = mergeSegments(prefix, response.Trips)
			break
		}

		if len(response.Trips) == 0 {
			log.Warn().Int("segment", segment).Msg("Segment returned no trips, keeping previous departure")
			continue
		}

		first := response.Trips[0]
		prefix = append(prefix, first)

		if first.EndDateTime == nil {
			log.Warn().Int("segment", segment).Msg("Segment trip has no arrival time, keeping requested departure")
		} else {
			departure = *first.EndDateTime
		}
	}

	return merged, nil
}

// mergeSegments prepends the chosen prefix trips onto every alternative of
// the final segment. Each merged trip gets the summed duration and distance,
// the prefix's start time and one extra transfer per segment boundary. The
// alternatives are deep-copied so callers can still use the raw responses.
func mergeSegments(prefix []*model.Trip, alternatives []*model.Trip) []*model.Trip {
	if len(prefix) == 0 {
		return alternatives
	}

	var merged []*model.Trip

	for _, alternative := range alternatives {
		combined := &model.Trip{}
		if err := copier.CopyWithOption(combined, alternative, copier.Option{DeepCopy: true}); err != nil {
			log.Error().Err(err).Str("trip", alternative.ID).Msg("Failed to copy trip for merge")
			continue
		}

		var legs []model.Leg
		for _, trip := range prefix {
			legs = append(legs, trip.Legs...)

			combined.Duration = combined.Duration.Plus(trip.Duration)
			combined.Distance = model.SumDistances(trip.Distance, combined.Distance)
			combined.Transfers += trip.Transfers + 1

			combined.RealtimeData.Unplanned = combined.RealtimeData.Unplanned || trip.RealtimeData.Unplanned
			combined.RealtimeData.Cancelled = combined.RealtimeData.Cancelled || trip.RealtimeData.Cancelled
			combined.RealtimeData.Deviation = combined.RealtimeData.Deviation || trip.RealtimeData.Deviation
			combined.RealtimeData.Delayed = combined.RealtimeData.Delayed || trip.RealtimeData.Delayed
			combined.RealtimeData.Infeasible = combined.RealtimeData.Infeasible || trip.RealtimeData.Infeasible
		}

		combined.Legs = append(legs, combined.Legs...)
		combined.StartDateTime = prefix[0].StartDateTime
		combined.ID = model.ComputeTripHash(combined)

		merged = append(merged, combined)
	}

	return merged
}
