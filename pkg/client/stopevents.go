package client

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openjourney/ojp/pkg/bridge"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
)

// StopEventRequest fetches a departure or arrival board for one stop.
type StopEventRequest struct {
	params schema.StopEventParams
}

func NewStopEventRequest(stopPlaceRef string, depArrTime time.Time) *StopEventRequest {
	return &StopEventRequest{
		params: schema.StopEventParams{
			StopPlaceRef: stopPlaceRef,
			DepArrTime:   depArrTime,

			NumberOfResults: 10,
			StopEventType:   "departure",

			IncludeOnwardCalls:  true,
			IncludeRealtimeData: true,
		},
	}
}

func (r *StopEventRequest) SetNumberOfResults(count int) *StopEventRequest {
	r.params.NumberOfResults = count
	return r
}

func (r *StopEventRequest) SetStopEventType(eventType string) *StopEventRequest {
	r.params.StopEventType = eventType
	return r
}

func (r *StopEventRequest) SetIncludePreviousCalls(include bool) *StopEventRequest {
	r.params.IncludePreviousCalls = include
	return r
}

func (r *StopEventRequest) SetGeoPosition(position *schema.GeoPosition) *StopEventRequest {
	r.params.GeoPosition = position
	return r
}

func (r *StopEventRequest) Params() schema.StopEventParams { return r.params }

type StopEventsResponse struct {
	Results []*model.StopEventResult

	Situations map[string]*model.SituationContent

	Warnings []model.Warning
}

func (r *StopEventRequest) Fetch(ctx context.Context, c *Client) (*StopEventsResponse, error) {
	build := func(timestamp time.Time) ([]byte, error) {
		return bridge.BuildStopEventRequest(c.version, r.params, timestamp, c.stage.RequestorRef)
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

	delivery, err := bridge.ParseStopEventDelivery(body)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	resolution := model.NewResolutionContext(delivery.Places, delivery.Situations)

	response := &StopEventsResponse{
		Situations: resolution.Situations,
	}

	for _, event := range delivery.StopEvents {
		result, err := model.NewStopEventResultFromSchema(event, resolution)
		if err != nil {
			if errors.Is(err, model.ErrMissingServiceBlock) {
				log.Debug().Str("result", event.ID).Msg("Skipping stop event without service block")
				continue
			}

			return nil, err
		}

		response.Results = append(response.Results, result)
	}

	response.Warnings = resolution.Warnings()

	return response, nil
}
