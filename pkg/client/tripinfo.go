package client

import (
	"context"
	"time"

	"github.com/openjourney/ojp/pkg/bridge"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
)

// TripInfoRequest fetches the full call sequence of one dated journey.
type TripInfoRequest struct {
	params schema.TripInfoParams
}

func NewTripInfoRequest(journeyRef string, operatingDayRef string) *TripInfoRequest {
	return &TripInfoRequest{
		params: schema.TripInfoParams{
			JourneyRef:      journeyRef,
			OperatingDayRef: operatingDayRef,

			IncludeCalls:   true,
			IncludeService: true,
		},
	}
}

func (r *TripInfoRequest) SetIncludeTrackProjection(include bool) *TripInfoRequest {
	r.params.IncludeTrackProjection = include
	return r
}

func (r *TripInfoRequest) Params() schema.TripInfoParams { return r.params }

type TripInfoResponse struct {
	Result *model.TripInfoResult

	Warnings []model.Warning
}

func (r *TripInfoRequest) Fetch(ctx context.Context, c *Client) (*TripInfoResponse, error) {
	build := func(timestamp time.Time) ([]byte, error) {
		return bridge.BuildTripInfoRequest(c.version, r.params, timestamp, c.stage.RequestorRef)
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

	delivery, err := bridge.ParseTripInfoDelivery(body)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	if delivery.Result == nil {
		return nil, ErrNoResults
	}

	resolution := model.NewResolutionContext(delivery.Places, delivery.Situations)

	return &TripInfoResponse{
		Result:   model.NewTripInfoResultFromSchema(delivery.Result, resolution),
		Warnings: resolution.Warnings(),
	}, nil
}
