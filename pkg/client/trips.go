package client

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openjourney/ojp/pkg/bridge"
	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
)

// TripRequest searches journeys between two endpoints, each a stop ref or a
// literal coordinate.
type TripRequest struct {
	params schema.TripParams
}

func NewTripRequest(origin schema.PlaceContext, destination schema.PlaceContext, depArrTime time.Time, isArrival bool) *TripRequest {
	return &TripRequest{
		params: schema.TripParams{
			Origin:      origin,
			Destination: destination,
			DepArrTime:  depArrTime,
			IsArrival:   isArrival,

			NumberOfResults: 5,

			RealtimeMode: string(model.RealtimeDataModeExplanatory),

			IncludeLegProjection:     true,
			IncludeIntermediateStops: true,
		},
	}
}

// PlaceContextFromInput decodes a from/to/via encoding: a "lon,lat" literal
// becomes a coordinate context, anything else a stop ref.
func PlaceContextFromInput(input string) schema.PlaceContext {
	if position, err := geo.ParsePosition(input); err == nil {
		return schema.PlaceContext{
			GeoPosition: &schema.GeoPosition{Longitude: position.Longitude, Latitude: position.Latitude},
		}
	}

	return schema.PlaceContext{StopPlaceRef: input}
}

func (r *TripRequest) AddVia(via schema.PlaceContext) *TripRequest {
	r.params.Via = append(r.params.Via, via)
	return r
}

// SetNumberOfResults sets the requested alternative count; before/after shift
// the window around the requested time.
func (r *TripRequest) SetNumberOfResults(count int, before int, after int) *TripRequest {
	r.params.NumberOfResults = count
	r.params.NumberOfResultsBefore = before
	r.params.NumberOfResultsAfter = after

	return r
}

func (r *TripRequest) SetModeFilter(modes []string, railSubmodes []string) *TripRequest {
	r.params.ModeFilter = modes
	r.params.RailSubmodes = railSubmodes

	return r
}

// SetIndividualTransportMode makes the request monomodal. The result count
// follows the fixed per-mode table; sharing and own-vehicle lookups only need
// geometry and force it to zero.
func (r *TripRequest) SetIndividualTransportMode(mode model.TransportMode) *TripRequest {
	r.params.IndividualTransportMode = string(mode)
	r.params.NumberOfResults = model.NumberOfResultsForMode(mode, r.params.NumberOfResults)

	return r
}

// SetDurationBounds passes through min/max duration restrictions in minutes.
func (r *TripRequest) SetDurationBounds(minMinutes *int, maxMinutes *int) *TripRequest {
	r.params.MinDurationMinutes = minMinutes
	r.params.MaxDurationMinutes = maxMinutes

	return r
}

func (r *TripRequest) SetDistanceBounds(minM *int, maxM *int) *TripRequest {
	r.params.MinDistanceM = minM
	r.params.MaxDistanceM = maxM

	return r
}

func (r *TripRequest) SetSpeedPercent(speed *int) *TripRequest {
	r.params.SpeedPercent = speed
	return r
}

func (r *TripRequest) SetRealtimeMode(mode model.RealtimeDataMode) *TripRequest {
	r.params.RealtimeMode = string(mode)
	return r
}

func (r *TripRequest) SetIncludeTurnDescription(include bool) *TripRequest {
	r.params.IncludeTurnDescription = include
	return r
}

func (r *TripRequest) Params() schema.TripParams { return r.params }

type TripsResponse struct {
	Trips []*model.Trip

	// The delivery's shared context, exposed for map rendering and situation
	// panels.
	Places     map[string]*model.Place
	Situations map[string]*model.SituationContent

	Warnings []model.Warning
}

func (r *TripRequest) Fetch(ctx context.Context, c *Client) (*TripsResponse, error) {
	build := func(timestamp time.Time) ([]byte, error) {
		return bridge.BuildTripRequest(c.version, r.params, timestamp, c.stage.RequestorRef)
	}

	cacheKey, err := fingerprint(build)
	if err != nil {
		return nil, err
	}

	payload, err := build(time.Now())
	if err != nil {
		return nil, err
	}

	body, err := c.postOJP(ctx, payload, cacheKey)
	if err != nil {
		return nil, err
	}

	delivery, err := bridge.ParseTripDelivery(body)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	return buildTripsResponse(delivery), nil
}

func buildTripsResponse(delivery *schema.TripDelivery) *TripsResponse {
	context := model.NewResolutionContext(delivery.Places, delivery.Situations)

	response := &TripsResponse{
		Places:     context.Places,
		Situations: context.Situations,
	}

	for _, result := range delivery.TripResults {
		trip, err := model.NewTripFromSchema(result, context)
		if err != nil {
			log.Warn().Err(err).Str("result", result.ID).Msg("Skipping unusable trip result")
			continue
		}

		response.Trips = append(response.Trips, trip)
	}

	response.Warnings = context.Warnings()

	return response
}
