package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjourney/ojp/pkg/schema"
)

func emptyContext() *ResolutionContext {
	return NewResolutionContext(nil, nil)
}

func walkLegSchema() schema.Leg {
	return schema.Leg{
		ID: 1,
		ContinuousLeg: &schema.ContinuousLeg{
			Mode:     "walk",
			FromRef:  schema.PlaceRef{StopPointRef: "8503000", Name: "Zürich HB"},
			ToRef:    schema.PlaceRef{StopPointRef: "8503020", Name: "Zürich Hardbrücke"},
			Duration: "PT12M",
		},
	}
}

func TestDeriveLegDistance_DeclaredLengthWins(t *testing.T) {
	legSchema := walkLegSchema()
	legSchema.ContinuousLeg.LengthM = 850
	legSchema.ContinuousLeg.Track = &schema.LegTrack{
		Sections: []schema.TrackSection{
			{LengthM: 9999},
		},
	}

	leg, err := NewLegFromSchema(legSchema, emptyContext())
	require.NoError(t, err)

	assert.Equal(t, 850, leg.Common().Distance.DistanceM)
	assert.Equal(t, DistanceSourceLegLength, leg.Common().Distance.Source)
}

func TestDeriveLegDistance_TrackSectionSum(t *testing.T) {
	legSchema := walkLegSchema()
	legSchema.ContinuousLeg.Track = &schema.LegTrack{
		Sections: []schema.TrackSection{
			{LengthM: 300},
			{LengthM: 450},
		},
	}

	leg, err := NewLegFromSchema(legSchema, emptyContext())
	require.NoError(t, err)

	assert.Equal(t, 750, leg.Common().Distance.DistanceM)
	assert.Equal(t, DistanceSourceTrackSections, leg.Common().Distance.Source)
}

func TestDeriveLegDistance_LinkProjectionFallback(t *testing.T) {
	legSchema := walkLegSchema()
	legSchema.ContinuousLeg.Track = &schema.LegTrack{
		Sections: []schema.TrackSection{
			{
				// No section lengths, only the polyline. Roughly 1.3km
				// between Zürich HB and Hardbrücke.
				Positions: []schema.GeoPosition{
					{Longitude: 8.540192, Latitude: 47.378177},
					{Longitude: 8.525592, Latitude: 47.385087},
				},
			},
		},
	}

	leg, err := NewLegFromSchema(legSchema, emptyContext())
	require.NoError(t, err)

	assert.Equal(t, DistanceSourceLinkProjection, leg.Common().Distance.Source)
	assert.InDelta(t, 1350, leg.Common().Distance.DistanceM, 150)
}

func TestDeriveLegDistance_NothingAvailable(t *testing.T) {
	leg, err := NewLegFromSchema(walkLegSchema(), emptyContext())
	require.NoError(t, err)

	assert.Equal(t, 0, leg.Common().Distance.DistanceM)
	assert.Equal(t, DistanceSourceUnknown, leg.Common().Distance.Source)
}

func TestNewLegFromSchema_UnknownVariant(t *testing.T) {
	context := emptyContext()

	_, err := NewLegFromSchema(schema.Leg{ID: 3}, context)

	require.ErrorIs(t, err, ErrUnknownLegVariant)
	require.Len(t, context.Warnings(), 1)
	assert.Equal(t, WarningUnknownLegVariant, context.Warnings()[0].Kind)
}

func TestTimedLeg_DurationFallsBackToCallTimes(t *testing.T) {
	legSchema := schema.Leg{
		ID: 2,
		TimedLeg: &schema.TimedLeg{
			Board: schema.CallAtStop{
				StopPointRef:     "8503000",
				StopPointName:    "Zürich HB",
				PlannedDeparture: "2024-05-01T12:00:00Z",
			},
			Alight: schema.CallAtStop{
				StopPointRef:   "8507000",
				StopPointName:  "Bern",
				PlannedArrival: "2024-05-01T12:56:00Z",
			},
			Service: schema.Service{
				Mode:                 "rail",
				PublishedServiceName: "IC 1",
			},
		},
	}

	leg, err := NewLegFromSchema(legSchema, emptyContext())
	require.NoError(t, err)

	timed := leg.(*TimedLeg)
	require.NotNil(t, timed.Duration)
	assert.Equal(t, 56, timed.Duration.TotalMinutes)
}

func TestContinuousLeg_Predicates(t *testing.T) {
	leg, err := NewLegFromSchema(walkLegSchema(), emptyContext())
	require.NoError(t, err)

	walking := leg.(*ContinuousLeg)
	assert.True(t, walking.IsWalking())
	assert.False(t, walking.IsTaxi())
	assert.Equal(t, LineTypeWalk, walking.LineType())

	legSchema := walkLegSchema()
	legSchema.ContinuousLeg.Mode = "escooter_rental"

	leg, err = NewLegFromSchema(legSchema, emptyContext())
	require.NoError(t, err)

	shared := leg.(*ContinuousLeg)
	assert.True(t, shared.IsSharedMobility())
	assert.Equal(t, LineTypeSharedMobility, shared.LineType())
}

func TestTransferLeg_DurationSources(t *testing.T) {
	legSchema := schema.Leg{
		ID: 4,
		TransferLeg: &schema.TransferLeg{
			TransferType: "walk",
			FromRef:      schema.PlaceRef{StopPointRef: "8503000", Name: "Zürich HB"},
			ToRef:        schema.PlaceRef{StopPointRef: "8503000:1", Name: "Zürich HB Gleis 1"},
			WalkDuration: "PT4M",
		},
	}

	leg, err := NewLegFromSchema(legSchema, emptyContext())
	require.NoError(t, err)

	transfer := leg.(*TransferLeg)
	require.NotNil(t, transfer.Duration)
	assert.Equal(t, 4, transfer.Duration.TotalMinutes)
	assert.Equal(t, LineTypeTransfer, transfer.LineType())
}
