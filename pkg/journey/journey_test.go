package journey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/stages"
)

func segmentTrip(t *testing.T, id string, departure string, arrival string, durationMinutes int, distanceM int) *model.Trip {
	t.Helper()

	trip, err := model.NewTripFromSchema(schema.TripResult{
		ID: id,
		Trip: &schema.Trip{
			ID:        id,
			Duration:  model.NewDurationFromMinutes(durationMinutes).AsOJPFormat(),
			StartTime: departure,
			EndTime:   arrival,
			DistanceM: distanceM,
			Legs: []schema.Leg{
				{
					ID: 1,
					TimedLeg: &schema.TimedLeg{
						Board: schema.CallAtStop{
							StopPointRef:     "board-" + id,
							PlannedDeparture: departure,
						},
						Alight: schema.CallAtStop{
							StopPointRef:   "alight-" + id,
							PlannedArrival: arrival,
						},
						Service: schema.Service{
							Mode:                 "rail",
							PublishedServiceName: "service-" + id,
						},
					},
				},
			},
		},
	}, model.NewResolutionContext(nil, nil))
	require.NoError(t, err)

	return trip
}

func TestMergeSegments(t *testing.T) {
	first := segmentTrip(t, "seg-1", "2024-05-01T12:00:00Z", "2024-05-01T12:10:00Z", 10, 500)
	alternative := segmentTrip(t, "seg-2", "2024-05-01T12:15:00Z", "2024-05-01T12:35:00Z", 20, 2000)

	merged := mergeSegments([]*model.Trip{first}, []*model.Trip{alternative})
	require.Len(t, merged, 1)

	combined := merged[0]

	assert.Equal(t, 30, combined.Duration.TotalMinutes)
	assert.Equal(t, 2500, combined.Distance.DistanceM)
	assert.Equal(t, 1, combined.Transfers)

	// Legs of the chosen prefix come first.
	require.Len(t, combined.Legs, 2)

	// The journey starts when the first segment departs and ends when the
	// last one arrives.
	require.NotNil(t, combined.StartDateTime)
	assert.Equal(t, first.StartDateTime.Unix(), combined.StartDateTime.Unix())
	require.NotNil(t, combined.EndDateTime)
	assert.Equal(t, alternative.EndDateTime.Unix(), combined.EndDateTime.Unix())
}

func TestMergeSegments_NoPrefixPassesThrough(t *testing.T) {
	alternatives := []*model.Trip{
		segmentTrip(t, "only", "2024-05-01T12:00:00Z", "2024-05-01T12:30:00Z", 30, 1000),
	}

	merged := mergeSegments(nil, alternatives)

	require.Len(t, merged, 1)
	assert.Same(t, alternatives[0], merged[0])
}

func TestMergeSegments_DoesNotMutateAlternatives(t *testing.T) {
	first := segmentTrip(t, "seg-1", "2024-05-01T12:00:00Z", "2024-05-01T12:10:00Z", 10, 500)
	alternative := segmentTrip(t, "seg-2", "2024-05-01T12:15:00Z", "2024-05-01T12:35:00Z", 20, 2000)

	originalDuration := alternative.Duration.TotalMinutes
	originalLegs := len(alternative.Legs)

	mergeSegments([]*model.Trip{first}, []*model.Trip{alternative})

	assert.Equal(t, originalDuration, alternative.Duration.TotalMinutes)
	assert.Equal(t, originalLegs, len(alternative.Legs))
}

func TestMergeSegments_RealtimeFlagsPropagate(t *testing.T) {
	first := segmentTrip(t, "seg-1", "2024-05-01T12:00:00Z", "2024-05-01T12:10:00Z", 10, 500)
	first.RealtimeData.Cancelled = true

	alternative := segmentTrip(t, "seg-2", "2024-05-01T12:15:00Z", "2024-05-01T12:35:00Z", 20, 2000)

	merged := mergeSegments([]*model.Trip{first}, []*model.Trip{alternative})
	require.Len(t, merged, 1)

	assert.True(t, merged[0].RealtimeData.Cancelled)
}

func TestMergeSegments_TransfersAccumulate(t *testing.T) {
	first := segmentTrip(t, "seg-1", "2024-05-01T12:00:00Z", "2024-05-01T12:10:00Z", 10, 500)
	first.Transfers = 2

	second := segmentTrip(t, "seg-2", "2024-05-01T12:15:00Z", "2024-05-01T12:25:00Z", 10, 500)

	alternative := segmentTrip(t, "seg-3", "2024-05-01T12:30:00Z", "2024-05-01T12:50:00Z", 20, 2000)
	alternative.Transfers = 1

	merged := mergeSegments([]*model.Trip{first, second}, []*model.Trip{alternative})
	require.Len(t, merged, 1)

	// 2 + 1 within the segments, plus one boundary per prefix segment.
	assert.Equal(t, 5, merged[0].Transfers)
	assert.Equal(t, 40, merged[0].Duration.TotalMinutes)
	require.Len(t, merged[0].Legs, 3)
}

func TestPlan_RequiresTwoPoints(t *testing.T) {
	planner := NewPlanner(nil)

	_, err := planner.Plan(nil, []schema.PlaceContext{{StopPlaceRef: "8503000"}}, time.Now())
	require.ErrorIs(t, err, ErrNotEnoughPoints)
}

const tripEnvelopeOpen = `<?xml version="1.0" encoding="UTF-8"?>
<siri:OJP xmlns:siri="http://www.siri.org.uk/siri" xmlns:ojp="http://www.vdv.de/ojp" version="1.0">
  <siri:OJPResponse>
    <siri:ServiceDelivery>
      <siri:ResponseTimestamp>2024-05-01T12:00:00Z</siri:ResponseTimestamp>`

const tripEnvelopeClose = `
    </siri:ServiceDelivery>
  </siri:OJPResponse>
</siri:OJP>`

const emptyTripDeliveryResponse = tripEnvelopeOpen + `
      <ojp:OJPTripDelivery>
        <siri:Status>true</siri:Status>
      </ojp:OJPTripDelivery>` + tripEnvelopeClose

const singleTripDeliveryResponse = tripEnvelopeOpen + `
      <ojp:OJPTripDelivery>
        <ojp:TripResult>
          <ojp:ResultId>ID-1</ojp:ResultId>
          <ojp:Trip>
            <ojp:TripId>trip-1</ojp:TripId>
            <ojp:Duration>PT56M</ojp:Duration>
            <ojp:StartTime>2024-05-01T12:00:00Z</ojp:StartTime>
            <ojp:EndTime>2024-05-01T12:56:00Z</ojp:EndTime>
            <ojp:Transfers>0</ojp:Transfers>
            <ojp:TripLeg>
              <ojp:LegId>1</ojp:LegId>
              <ojp:TimedLeg>
                <ojp:LegBoard>
                  <siri:StopPointRef>8503000</siri:StopPointRef>
                  <ojp:StopPointName><ojp:Text>Zürich HB</ojp:Text></ojp:StopPointName>
                  <ojp:ServiceDeparture>
                    <ojp:TimetabledTime>2024-05-01T12:00:00Z</ojp:TimetabledTime>
                  </ojp:ServiceDeparture>
                </ojp:LegBoard>
                <ojp:LegAlight>
                  <siri:StopPointRef>8507000</siri:StopPointRef>
                  <ojp:StopPointName><ojp:Text>Bern</ojp:Text></ojp:StopPointName>
                  <ojp:ServiceArrival>
                    <ojp:TimetabledTime>2024-05-01T12:56:00Z</ojp:TimetabledTime>
                  </ojp:ServiceArrival>
                </ojp:LegAlight>
                <ojp:Service>
                  <ojp:JourneyRef>odp:ic1</ojp:JourneyRef>
                  <ojp:PublishedLineName><ojp:Text>IC 1</ojp:Text></ojp:PublishedLineName>
                  <ojp:Mode><ojp:PtMode>rail</ojp:PtMode></ojp:Mode>
                </ojp:Service>
              </ojp:TimedLeg>
            </ojp:TripLeg>
          </ojp:Trip>
        </ojp:TripResult>
      </ojp:OJPTripDelivery>` + tripEnvelopeClose

func segmentServer(t *testing.T, bodies []string) (*httptest.Server, *int) {
	t.Helper()

	requestCount := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Less(t, requestCount, len(bodies))

		body := bodies[requestCount]
		requestCount++

		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, &requestCount
}

func planTestClient(t *testing.T, serverURL string) *client.Client {
	t.Helper()

	config := stages.DefaultConfig()
	config.Stages["test"] = stages.Stage{
		Name:         "test",
		URL:          serverURL,
		RequestorRef: "test-client",
		Version:      "1.0",
	}

	c, err := client.New(config, "test")
	require.NoError(t, err)

	return c
}

func viaPoints() []schema.PlaceContext {
	return []schema.PlaceContext{
		{StopPlaceRef: "8503000"},
		{StopPlaceRef: "8507000"},
		{StopPlaceRef: "8501120"},
	}
}

func TestPlan_EmptyIntermediateSegmentContinues(t *testing.T) {
	server, requestCount := segmentServer(t, []string{
		emptyTripDeliveryResponse,
		singleTripDeliveryResponse,
	})

	planner := NewPlanner(planTestClient(t, server.URL))

	response, err := planner.Plan(context.Background(), viaPoints(), time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, *requestCount)

	// The empty segment contributes no prefix; the result is the final
	// segment's trip list as-is.
	require.Len(t, response.Trips, 1)
	assert.Equal(t, 56, response.Trips[0].Duration.TotalMinutes)
	assert.Equal(t, 0, response.Trips[0].Transfers)
}

func TestPlan_EmptyFinalSegmentReturnsNoTrips(t *testing.T) {
	server, requestCount := segmentServer(t, []string{
		singleTripDeliveryResponse,
		emptyTripDeliveryResponse,
	})

	planner := NewPlanner(planTestClient(t, server.URL))

	response, err := planner.Plan(context.Background(), viaPoints(), time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 2, *requestCount)
	assert.Empty(t, response.Trips)
}

func TestPlan_FetchErrorAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	planner := NewPlanner(planTestClient(t, server.URL))

	_, err := planner.Plan(context.Background(), viaPoints(), time.Date(2024, 5, 1, 11, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, client.FailureNetwork, client.ClassifyFailure(err))
}
