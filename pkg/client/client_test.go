package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjourney/ojp/pkg/bridge"
	"github.com/openjourney/ojp/pkg/stages"
)

const locationResponse = `<?xml version="1.0" encoding="UTF-8"?>
<siri:OJP xmlns:siri="http://www.siri.org.uk/siri" xmlns:ojp="http://www.vdv.de/ojp" version="1.0">
  <siri:OJPResponse>
    <siri:ServiceDelivery>
      <siri:ResponseTimestamp>2024-05-01T12:00:00Z</siri:ResponseTimestamp>
      <ojp:OJPLocationInformationDelivery>
        <ojp:Location>
          <ojp:Location>
            <ojp:LocationName><ojp:Text>Zürich HB</ojp:Text></ojp:LocationName>
            <ojp:StopPlace>
              <ojp:StopPlaceRef>8503000</ojp:StopPlaceRef>
              <ojp:StopPlaceName><ojp:Text>Zürich HB</ojp:Text></ojp:StopPlaceName>
            </ojp:StopPlace>
            <ojp:GeoPosition>
              <siri:Longitude>8.540192</siri:Longitude>
              <siri:Latitude>47.378177</siri:Latitude>
            </ojp:GeoPosition>
          </ojp:Location>
          <ojp:Complete>true</ojp:Complete>
        </ojp:Location>
      </ojp:OJPLocationInformationDelivery>
    </siri:ServiceDelivery>
  </siri:OJPResponse>
</siri:OJP>`

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	config := stages.DefaultConfig()
	config.Stages["test"] = stages.Stage{
		Name:          "test",
		URL:           serverURL,
		Authorization: "test-token",
		RequestorRef:  "test-client",
		Version:       "1.0",
	}

	c, err := New(config, "test")
	require.NoError(t, err)

	return c
}

func TestClient_FetchLocations(t *testing.T) {
	var requestCount int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++

		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "text/xml; charset=utf-8", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Write([]byte(locationResponse))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	response, err := NewLocationInformationRequest("Zürich").Fetch(context.Background(), c)
	require.NoError(t, err)

	require.Len(t, response.Places, 1)
	assert.Equal(t, "Zürich HB", response.Places[0].Name)

	// The second identical request replays the cached response body.
	_, err = NewLocationInformationRequest("Zürich").Fetch(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 1, requestCount)

	// Different parameters miss the cache.
	_, err = NewLocationInformationRequest("Bern").Fetch(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, 2, requestCount)
}

func TestClient_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := NewLocationInformationRequest("Zürich").Fetch(context.Background(), c)
	require.Error(t, err)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Equal(t, FailureNetwork, ClassifyFailure(err))
}

func TestClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not an OJP document</html>`))
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := NewLocationInformationRequest("Zürich").Fetch(context.Background(), c)
	require.Error(t, err)
	assert.Equal(t, FailureMalformed, ClassifyFailure(err))
}

func TestFingerprint_IgnoresTimestamp(t *testing.T) {
	build := func(searchText string) func(time.Time) ([]byte, error) {
		return func(timestamp time.Time) ([]byte, error) {
			return []byte(searchText + "|" + timestamp.UTC().Format(time.RFC3339)), nil
		}
	}

	first, err := fingerprint(build("Zürich"))
	require.NoError(t, err)
	second, err := fingerprint(build("Zürich"))
	require.NoError(t, err)

	assert.Equal(t, first, second)

	other, err := fingerprint(build("Bern"))
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestClassifyFailure(t *testing.T) {
	assert.Equal(t, FailureNetwork, ClassifyFailure(&TransportError{URL: "http://x", StatusCode: 500}))
	assert.Equal(t, FailureMalformed, ClassifyFailure(&MalformedResponseError{Err: errors.New("bad xml")}))
	assert.Equal(t, FailureNoResults, ClassifyFailure(ErrNoResults))
	assert.Equal(t, FailureOther, ClassifyFailure(errors.New("anything else")))
}

func TestNew_UnknownStage(t *testing.T) {
	_, err := New(stages.DefaultConfig(), "nonexistent")
	require.ErrorIs(t, err, stages.ErrUnknownStage)
}

func TestTripRequest_MonomodalResultCount(t *testing.T) {
	request := NewTripRequest(
		PlaceContextFromInput("8503000"),
		PlaceContextFromInput("8507000"),
		time.Now(),
		false,
	)
	request.SetNumberOfResults(5, 0, 0)
	request.SetIndividualTransportMode("walk")

	assert.Equal(t, 0, request.Params().NumberOfResults)
	assert.Equal(t, "walk", request.Params().IndividualTransportMode)
}

func TestPlaceContextFromInput(t *testing.T) {
	stop := PlaceContextFromInput("8503000")
	assert.Equal(t, "8503000", stop.StopPlaceRef)
	assert.Nil(t, stop.GeoPosition)

	coordinate := PlaceContextFromInput("8.540192,47.378177")
	assert.Empty(t, coordinate.StopPlaceRef)
	require.NotNil(t, coordinate.GeoPosition)
	assert.InDelta(t, 8.540192, coordinate.GeoPosition.Longitude, 0.000001)
	assert.True(t, coordinate.IsCoordinate())
}

func TestSetPOICategories_DeterministicPayload(t *testing.T) {
	categories := map[string]string{
		"amenity":  "restaurant",
		"shop":     "bakery",
		"tourism":  "museum",
		"leisure":  "park",
		"historic": "castle",
		"natural":  "peak",
		"sport":    "swimming",
		"office":   "government",
	}

	seen := map[string]bool{}

	for i := 0; i < 64; i++ {
		request := NewLocationInformationRequest("Zürich").SetPOICategories(categories)

		payload, err := bridge.BuildLocationInformationRequest(bridge.V1, request.params, time.Time{}, "test-client")
		require.NoError(t, err)

		seen[string(payload)] = true
	}

	// Identical parameters must yield byte-identical payloads; the response
	// cache is keyed by the payload fingerprint.
	assert.Len(t, seen, 1)
}
