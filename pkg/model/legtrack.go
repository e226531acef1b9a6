package model

import (
	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/schema"
)

// LinkProjection is the ordered polyline describing a track section's
// real-world path.
type LinkProjection struct {
	Coordinates []geo.Position `json:"coordinates" groups:"detailed"`
}

func NewLinkProjectionFromSchema(positions []schema.GeoPosition) *LinkProjection {
	if len(positions) == 0 {
		return nil
	}

	projection := &LinkProjection{}
	for _, position := range positions {
		projection.Coordinates = append(projection.Coordinates, geo.NewPosition(position.Longitude, position.Latitude))
	}

	return projection
}

// ComputeLengthM sums the straight-line distances between consecutive
// coordinates, the last-resort distance approximation.
func (p *LinkProjection) ComputeLengthM() int {
	var total float64
	for idx := 1; idx < len(p.Coordinates); idx++ {
		total += p.Coordinates[idx-1].DistanceTo(p.Coordinates[idx])
	}

	return int(total)
}

func (p *LinkProjection) BBox() geo.BBox {
	return geo.NewBBox(p.Coordinates...)
}

type TrackSection struct {
	FromRef PlaceRef `json:"fromRef" groups:"detailed"`
	ToRef   PlaceRef `json:"toRef" groups:"detailed"`

	Duration *Duration `json:"duration,omitempty" groups:"detailed"`
	LengthM  int       `json:"lengthM,omitempty" groups:"detailed"`

	LinkProjection *LinkProjection `json:"linkProjection,omitempty" groups:"detailed"`

	RoadName     string `json:"roadName,omitempty" groups:"detailed"`
	GuidanceText string `json:"guidanceText,omitempty" groups:"detailed"`
}

type LegTrack struct {
	Sections []TrackSection `json:"sections" groups:"detailed"`
	Duration *Duration      `json:"duration,omitempty" groups:"detailed"`
}

func NewLegTrackFromSchema(s *schema.LegTrack) *LegTrack {
	if s == nil {
		return nil
	}

	track := &LegTrack{}

	if duration, err := ParseDuration(s.Duration); err == nil && s.Duration != "" {
		track.Duration = &duration
	}

	for _, sectionSchema := range s.Sections {
		section := TrackSection{
			FromRef: NewPlaceRefFromSchema(sectionSchema.FromRef),
			ToRef:   NewPlaceRefFromSchema(sectionSchema.ToRef),

			LengthM: sectionSchema.LengthM,

			LinkProjection: NewLinkProjectionFromSchema(sectionSchema.Positions),

			RoadName:     sectionSchema.RoadName,
			GuidanceText: sectionSchema.GuidanceText,
		}

		if duration, err := ParseDuration(sectionSchema.Duration); err == nil && sectionSchema.Duration != "" {
			section.Duration = &duration
		}

		track.Sections = append(track.Sections, section)
	}

	return track
}

// Plus concatenates two tracks, used when merging adjacent timed legs during
// multi-segment aggregation. Either operand may be nil.
func (t *LegTrack) Plus(other *LegTrack) *LegTrack {
	if t == nil {
		return other
	}
	if other == nil {
		return t
	}

	combined := &LegTrack{
		Sections: append(append([]TrackSection{}, t.Sections...), other.Sections...),
	}

	if t.Duration != nil && other.Duration != nil {
		duration := t.Duration.Plus(*other.Duration)
		combined.Duration = &duration
	}

	return combined
}

// Coordinates flattens all section polylines in order.
func (t *LegTrack) Coordinates() []geo.Position {
	var coordinates []geo.Position
	for _, section := range t.Sections {
		if section.LinkProjection != nil {
			coordinates = append(coordinates, section.LinkProjection.Coordinates...)
		}
	}

	return coordinates
}

type PathGuidance struct {
	Sections []PathGuidanceSection `json:"sections" groups:"detailed"`
}

type PathGuidanceSection struct {
	TrackSection *TrackSection `json:"trackSection,omitempty" groups:"detailed"`

	GuidanceAdvice  string `json:"guidanceAdvice,omitempty" groups:"detailed"`
	TurnAction      string `json:"turnAction,omitempty" groups:"detailed"`
	TurnDescription string `json:"turnDescription,omitempty" groups:"detailed"`
}

func NewPathGuidanceFromSchema(s *schema.PathGuidance) *PathGuidance {
	if s == nil {
		return nil
	}

	guidance := &PathGuidance{}

	for _, sectionSchema := range s.Sections {
		section := PathGuidanceSection{
			GuidanceAdvice:  sectionSchema.GuidanceAdvice,
			TurnAction:      sectionSchema.TurnAction,
			TurnDescription: sectionSchema.TurnDescription,
		}

		if sectionSchema.TrackSection != nil {
			trackSection := TrackSection{
				FromRef: NewPlaceRefFromSchema(sectionSchema.TrackSection.FromRef),
				ToRef:   NewPlaceRefFromSchema(sectionSchema.TrackSection.ToRef),
				LengthM: sectionSchema.TrackSection.LengthM,

				LinkProjection: NewLinkProjectionFromSchema(sectionSchema.TrackSection.Positions),

				RoadName:     sectionSchema.TrackSection.RoadName,
				GuidanceText: sectionSchema.TrackSection.GuidanceText,
			}
			section.TrackSection = &trackSection
		}

		guidance.Sections = append(guidance.Sections, section)
	}

	return guidance
}
