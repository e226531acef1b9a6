package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjourney/ojp/pkg/schema"
)

func TestResolutionContext_ResolvePlace(t *testing.T) {
	context := NewResolutionContext([]schema.Place{
		{
			Name:        "Zürich HB",
			GeoPosition: &schema.GeoPosition{Longitude: 8.540192, Latitude: 47.378177},
			StopPlace:   &schema.StopPlace{StopPlaceRef: "8503000", StopPlaceName: "Zürich HB"},
		},
	}, nil)

	place := context.ResolvePlace(PlaceRef{Ref: "8503000"}, "test")
	require.NotNil(t, place)
	assert.Equal(t, "Zürich HB", place.Name)
	assert.Empty(t, context.Warnings())

	// Unknown ref resolves to nil and is recorded as a warning, not an error.
	missing := context.ResolvePlace(PlaceRef{Ref: "8599999"}, "test")
	assert.Nil(t, missing)

	require.Len(t, context.Warnings(), 1)
	warning := context.Warnings()[0]
	assert.Equal(t, WarningUnresolvedPlaceRef, warning.Kind)
	assert.Equal(t, "8599999", warning.Ref)

	// An empty ref is normal for coordinate-only endpoints, no warning.
	assert.Nil(t, context.ResolvePlace(PlaceRef{}, "test"))
	assert.Len(t, context.Warnings(), 1)
}

func TestResolutionContext_ResolveSituations(t *testing.T) {
	context := NewResolutionContext(nil, []schema.Situation{
		{SituationNumber: "sit-1", Summary: "Track work"},
	})

	situations := context.ResolveSituations([]string{"sit-1", "sit-2"})

	require.Len(t, situations, 1)
	assert.Equal(t, "Track work", situations[0].Summary)

	require.Len(t, context.Warnings(), 1)
	assert.Equal(t, WarningUnresolvedSituationRef, context.Warnings()[0].Kind)
	assert.Equal(t, "sit-2", context.Warnings()[0].Ref)
}

func TestSituationContent_StripsMarkup(t *testing.T) {
	situation := NewSituationContentFromSchema(schema.Situation{
		SituationNumber: "sit-3",
		Summary:         "  Replacement buses  ",
		Details: []string{
			"<p>Use <b>replacement buses</b> between<br/>Olten and Aarau.</p>",
			"<img src='banner.png'/>",
		},
	})

	assert.Equal(t, "Replacement buses", situation.Summary)
	require.Len(t, situation.SafeDetails, 1)
	assert.Equal(t, "Use replacement buses between Olten and Aarau.", situation.SafeDetails[0])
}
