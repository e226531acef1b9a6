package model

import (
	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/schema"
)

type PlaceType string

const (
	PlaceTypeStop             PlaceType = "stop"
	PlaceTypeAddress          PlaceType = "address"
	PlaceTypePointOfInterest  PlaceType = "poi"
	PlaceTypeTopographicPlace PlaceType = "topographicPlace"
	PlaceTypeLocation         PlaceType = "location"
)

// Place is the resolved location object referenced by legs and calls. Exactly
// one of the detail blocks matching Type is set; Properties carries the
// free-form extras of the wire shape. Places are built once per response
// parse and never mutated afterwards.
type Place struct {
	Type PlaceType `json:"type" groups:"basic"`
	Name string    `json:"name" groups:"basic"`

	GeoPosition geo.Position `json:"geoPosition" groups:"basic"`

	StopPlace        *StopPlace        `json:"stopPlace,omitempty" groups:"basic"`
	Address          *Address          `json:"address,omitempty" groups:"basic"`
	PointOfInterest  *PointOfInterest  `json:"poi,omitempty" groups:"basic"`
	TopographicPlace *TopographicPlace `json:"topographicPlace,omitempty" groups:"detailed"`

	Properties map[string]string `json:"properties,omitempty" groups:"detailed"`
}

type StopPlace struct {
	StopPlaceRef  string `json:"stopPlaceRef" groups:"basic"`
	StopPlaceName string `json:"stopPlaceName" groups:"basic"`
}

type Address struct {
	AddressCode string `json:"addressCode" groups:"basic"`
	AddressName string `json:"addressName" groups:"basic"`
	PostCode    string `json:"postCode,omitempty" groups:"basic"`
	Street      string `json:"street,omitempty" groups:"basic"`
	HouseNumber string `json:"houseNumber,omitempty" groups:"basic"`
}

type PointOfInterest struct {
	Code       string            `json:"code" groups:"basic"`
	Name       string            `json:"name" groups:"basic"`
	Categories map[string]string `json:"categories,omitempty" groups:"basic"`
}

type TopographicPlace struct {
	Code string `json:"code" groups:"basic"`
	Name string `json:"name" groups:"basic"`
}

// NewPlaceFromSchema converts one normalized place. The place type follows
// which detail block the wire carried; a bare coordinate without any block
// becomes PlaceTypeLocation.
func NewPlaceFromSchema(s schema.Place) *Place {
	place := &Place{
		Type: PlaceTypeLocation,
		Name: s.Name,
	}

	if s.GeoPosition != nil {
		place.GeoPosition = geo.NewPosition(s.GeoPosition.Longitude, s.GeoPosition.Latitude)
	}

	switch {
	case s.StopPlace != nil:
		place.Type = PlaceTypeStop
		place.StopPlace = &StopPlace{
			StopPlaceRef:  s.StopPlace.StopPlaceRef,
			StopPlaceName: s.StopPlace.StopPlaceName,
		}
		if place.Name == "" {
			place.Name = s.StopPlace.StopPlaceName
		}
	case s.StopPoint != nil:
		place.Type = PlaceTypeStop
		place.StopPlace = &StopPlace{
			StopPlaceRef:  s.StopPoint.StopPointRef,
			StopPlaceName: s.StopPoint.StopPointName,
		}
		if place.Name == "" {
			place.Name = s.StopPoint.StopPointName
		}
	case s.Address != nil:
		place.Type = PlaceTypeAddress
		place.Address = &Address{
			AddressCode: s.Address.AddressCode,
			AddressName: s.Address.AddressName,
			PostCode:    s.Address.PostCode,
			Street:      s.Address.Street,
			HouseNumber: s.Address.HouseNumber,
		}
	case s.PointOfInterest != nil:
		place.Type = PlaceTypePointOfInterest
		poi := &PointOfInterest{
			Code: s.PointOfInterest.PointOfInterestCode,
			Name: s.PointOfInterest.PointOfInterestName,
		}
		if len(s.PointOfInterest.Categories) > 0 {
			poi.Categories = map[string]string{}
			for _, category := range s.PointOfInterest.Categories {
				poi.Categories[category.OsmTagKey] = category.OsmTagValue
			}
		}
		place.PointOfInterest = poi
	case s.TopographicPlace != nil:
		place.Type = PlaceTypeTopographicPlace
		place.TopographicPlace = &TopographicPlace{
			Code: s.TopographicPlace.TopographicPlaceCode,
			Name: s.TopographicPlace.TopographicPlaceName,
		}
	}

	return place
}

// Ref returns the string other response parts use to point at this place,
// empty for unreferencable place kinds.
func (p *Place) Ref() string {
	switch {
	case p.StopPlace != nil:
		return p.StopPlace.StopPlaceRef
	case p.Address != nil:
		return p.Address.AddressCode
	case p.PointOfInterest != nil:
		return p.PointOfInterest.Code
	case p.TopographicPlace != nil:
		return p.TopographicPlace.Code
	}

	return ""
}
