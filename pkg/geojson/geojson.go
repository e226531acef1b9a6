// Package geojson renders trips, legs and places as GeoJSON feature
// collections for map display.
package geojson

import (
	geojson "github.com/paulmach/go.geojson"

	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/model"
)

// TripCollection renders every leg of a trip as one LineString feature
// tagged with its line type, plus the trip-level bounding box.
func TripCollection(trip *model.Trip) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()

	for index, leg := range trip.Legs {
		feature := LegFeature(leg)
		if feature == nil {
			continue
		}

		feature.SetProperty("legIndex", index)
		collection.AddFeature(feature)
	}

	bbox := trip.BBox()
	if bbox.IsValid() {
		collection.BoundingBox = bbox.AsFlatCoordinates()
	}

	return collection
}

// LegFeature renders one leg's geometry. Timed and continuous legs use the
// track polyline when present, falling back to the straight line between the
// endpoint places. Legs with no usable geometry return nil.
func LegFeature(leg model.Leg) *geojson.Feature {
	coordinates := legCoordinates(leg)
	if len(coordinates) < 2 {
		return nil
	}

	feature := geojson.NewLineStringFeature(coordinates)
	feature.SetProperty("legType", string(leg.Type()))
	feature.SetProperty("lineType", string(leg.LineType()))

	if timed, ok := leg.(*model.TimedLeg); ok && timed.Service != nil {
		feature.SetProperty("service", timed.Service.FormatServiceName())
	}

	return feature
}

func legCoordinates(leg model.Leg) [][]float64 {
	common := leg.Common()

	if common.Track != nil {
		if positions := common.Track.Coordinates(); len(positions) >= 2 {
			return flatten(positions)
		}
	}

	var endpoints []geo.Position
	for _, place := range []*model.Place{common.FromPlace, common.ToPlace} {
		if place != nil && place.GeoPosition.IsValid() {
			endpoints = append(endpoints, place.GeoPosition)
		}
	}
	if len(endpoints) == 2 {
		return flatten(endpoints)
	}

	return nil
}

// PlaceCollection renders lookup results as Point features.
func PlaceCollection(places []*model.Place) *geojson.FeatureCollection {
	collection := geojson.NewFeatureCollection()

	bbox := geo.NewBBox()

	for _, place := range places {
		if place == nil || !place.GeoPosition.IsValid() {
			continue
		}

		feature := geojson.NewPointFeature([]float64{place.GeoPosition.Longitude, place.GeoPosition.Latitude})
		feature.SetProperty("name", place.Name)
		feature.SetProperty("placeType", string(place.Type))
		if ref := place.Ref(); ref != "" {
			feature.SetProperty("ref", ref)
		}

		collection.AddFeature(feature)
		bbox.Extend(place.GeoPosition)
	}

	if bbox.IsValid() {
		collection.BoundingBox = bbox.AsFlatCoordinates()
	}

	return collection
}

func flatten(positions []geo.Position) [][]float64 {
	coordinates := make([][]float64, 0, len(positions))
	for _, position := range positions {
		coordinates = append(coordinates, []float64{position.Longitude, position.Latitude})
	}

	return coordinates
}
