package client

import (
	"context"
	"sort"
	"time"

	"github.com/openjourney/ojp/pkg/bridge"
	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
)

// LocationInformationRequest searches stops, addresses and POIs by text or
// geographic restriction. Numeric bounds are passed through unvalidated;
// range checking is the caller's concern.
type LocationInformationRequest struct {
	params schema.LocationInformationParams
}

func NewLocationInformationRequest(text string) *LocationInformationRequest {
	return &LocationInformationRequest{
		params: schema.LocationInformationParams{
			Text:            text,
			NumberOfResults: 10,
		},
	}
}

func NewLocationInformationRequestForBBox(bbox geo.BBox) *LocationInformationRequest {
	request := &LocationInformationRequest{}
	request.params.NumberOfResults = 100

	request.SetBBox(bbox)

	return request
}

func (r *LocationInformationRequest) SetBBox(bbox geo.BBox) *LocationInformationRequest {
	r.params.BBox = &schema.BBoxRestriction{
		LowerLongitude: bbox.SouthWest.Longitude,
		LowerLatitude:  bbox.SouthWest.Latitude,
		UpperLongitude: bbox.NorthEast.Longitude,
		UpperLatitude:  bbox.NorthEast.Latitude,
	}

	return r
}

func (r *LocationInformationRequest) SetPlaceTypes(types ...string) *LocationInformationRequest {
	r.params.PlaceTypes = types
	return r
}

// SetPOICategories restricts a POI search to the given OSM key/value tags.
// Categories are serialized in key order so identical parameter sets build
// byte-identical payloads.
func (r *LocationInformationRequest) SetPOICategories(categories map[string]string) *LocationInformationRequest {
	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	r.params.POICategories = nil
	for _, key := range keys {
		r.params.POICategories = append(r.params.POICategories, schema.PointOfInterestCategory{
			OsmTagKey:   key,
			OsmTagValue: categories[key],
		})
	}

	return r
}

func (r *LocationInformationRequest) SetNumberOfResults(count int) *LocationInformationRequest {
	r.params.NumberOfResults = count
	return r
}

type LocationsResponse struct {
	Places []*model.Place

	Warnings []model.Warning
}

// Fetch issues the search and parses either schema generation into the
// unified place list.
func (r *LocationInformationRequest) Fetch(ctx context.Context, c *Client) (*LocationsResponse, error) {
	build := func(timestamp time.Time) ([]byte, error) {
		return bridge.BuildLocationInformationRequest(c.version, r.params, timestamp, c.stage.RequestorRef)
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

	delivery, err := bridge.ParseLocationInformationDelivery(body)
	if err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	response := &LocationsResponse{}
	for _, result := range delivery.Places {
		response.Places = append(response.Places, model.NewPlaceFromSchema(result.Place))
	}

	return response, nil
}
