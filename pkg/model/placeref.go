package model

import "github.com/openjourney/ojp/pkg/schema"

type PlaceRefSource string

const (
	PlaceRefSourceStopPoint PlaceRefSource = "stop-point"
	PlaceRefSourceStopPlace PlaceRefSource = "stop-place"
)

// PlaceRef is the lightweight pointer legs carry before resolution against the
// per-response place map.
type PlaceRef struct {
	Name   string         `json:"name" groups:"basic"`
	Ref    string         `json:"ref" groups:"basic"`
	Source PlaceRefSource `json:"source" groups:"detailed"`
}

func NewPlaceRefFromSchema(s schema.PlaceRef) PlaceRef {
	if s.StopPointRef != "" {
		return PlaceRef{Name: s.Name, Ref: s.StopPointRef, Source: PlaceRefSourceStopPoint}
	}

	return PlaceRef{Name: s.Name, Ref: s.StopPlaceRef, Source: PlaceRefSourceStopPlace}
}

func (r PlaceRef) IsEmpty() bool {
	return r.Ref == "" && r.Name == ""
}
