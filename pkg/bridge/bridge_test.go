package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjourney/ojp/pkg/schema"
)

const envelopeOpen = `<?xml version="1.0" encoding="UTF-8"?>
<siri:OJP xmlns:siri="http://www.siri.org.uk/siri" xmlns:ojp="http://www.vdv.de/ojp" version="1.0">
  <siri:OJPResponse>
    <siri:ServiceDelivery>
      <siri:ResponseTimestamp>2024-05-01T12:00:00Z</siri:ResponseTimestamp>`

const envelopeClose = `
    </siri:ServiceDelivery>
  </siri:OJPResponse>
</siri:OJP>`

func TestParseVersion(t *testing.T) {
	version, err := ParseVersion("1.0")
	require.NoError(t, err)
	assert.Equal(t, V1, version)

	version, err = ParseVersion("2.0")
	require.NoError(t, err)
	assert.Equal(t, V2, version)

	_, err = ParseVersion("3.0")
	require.ErrorIs(t, err, ErrUnknownSchemaVersion)
}

func TestParseLocationInformationDelivery_Legacy(t *testing.T) {
	body := envelopeOpen + `
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
          <ojp:Probability>0.9</ojp:Probability>
        </ojp:Location>
      </ojp:OJPLocationInformationDelivery>` + envelopeClose

	delivery, err := ParseLocationInformationDelivery([]byte(body))
	require.NoError(t, err)

	require.Len(t, delivery.Places, 1)
	result := delivery.Places[0]

	assert.Equal(t, "Zürich HB", result.Place.Name)
	assert.True(t, result.Complete)
	assert.InDelta(t, 0.9, result.Probability, 0.0001)

	require.NotNil(t, result.Place.StopPlace)
	assert.Equal(t, "8503000", result.Place.StopPlace.StopPlaceRef)

	require.NotNil(t, result.Place.GeoPosition)
	assert.InDelta(t, 8.540192, result.Place.GeoPosition.Longitude, 0.000001)
}

func TestParseLocationInformationDelivery_Current(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPLocationInformationDelivery>
        <ojp:PlaceResult>
          <ojp:Place>
            <ojp:Name><ojp:Text>Bern</ojp:Text></ojp:Name>
            <ojp:StopPlace>
              <ojp:StopPlaceRef>8507000</ojp:StopPlaceRef>
              <ojp:StopPlaceName><ojp:Text>Bern</ojp:Text></ojp:StopPlaceName>
            </ojp:StopPlace>
            <ojp:GeoPosition>
              <siri:Longitude>7.439122</siri:Longitude>
              <siri:Latitude>46.948825</siri:Latitude>
            </ojp:GeoPosition>
          </ojp:Place>
          <ojp:Complete>true</ojp:Complete>
          <ojp:Probability>1</ojp:Probability>
        </ojp:PlaceResult>
      </ojp:OJPLocationInformationDelivery>` + envelopeClose

	delivery, err := ParseLocationInformationDelivery([]byte(body))
	require.NoError(t, err)

	require.Len(t, delivery.Places, 1)
	place := delivery.Places[0].Place

	assert.Equal(t, "Bern", place.Name)
	require.NotNil(t, place.StopPlace)
	assert.Equal(t, "8507000", place.StopPlace.StopPlaceRef)
}

func TestParseLocationInformationDelivery_EmptyResult(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPLocationInformationDelivery>
        <siri:ResponseTimestamp>2024-05-01T12:00:00Z</siri:ResponseTimestamp>
        <siri:Status>true</siri:Status>
      </ojp:OJPLocationInformationDelivery>` + envelopeClose

	delivery, err := ParseLocationInformationDelivery([]byte(body))
	require.NoError(t, err)
	assert.Empty(t, delivery.Places)
}

func TestParseLocationInformationDelivery_UnknownShape(t *testing.T) {
	// A well-formed document without any location delivery matches neither
	// generation.
	body := envelopeOpen + envelopeClose

	_, err := ParseLocationInformationDelivery([]byte(body))
	require.ErrorIs(t, err, ErrUnknownSchemaVersion)

	_, err = ParseLocationInformationDelivery([]byte(`<Unrelated/>`))
	require.ErrorIs(t, err, ErrUnknownSchemaVersion)
}

const legacyTripDelivery = `
      <ojp:OJPTripDelivery>
        <ojp:TripResponseContext>
          <ojp:Places>
            <ojp:Location>
              <ojp:LocationName><ojp:Text>Zürich HB</ojp:Text></ojp:LocationName>
              <ojp:StopPoint>
                <ojp:StopPointRef>8503000</ojp:StopPointRef>
                <ojp:StopPointName><ojp:Text>Zürich HB</ojp:Text></ojp:StopPointName>
              </ojp:StopPoint>
            </ojp:Location>
          </ojp:Places>
        </ojp:TripResponseContext>
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
                  <ojp:Mode>
                    <ojp:PtMode>rail</ojp:PtMode>
                    <siri:RailSubmode>longDistance</siri:RailSubmode>
                  </ojp:Mode>
                  <ojp:DestinationText><ojp:Text>Genève-Aéroport</ojp:Text></ojp:DestinationText>
                </ojp:Service>
              </ojp:TimedLeg>
            </ojp:TripLeg>
          </ojp:Trip>
        </ojp:TripResult>
      </ojp:OJPTripDelivery>`

func TestParseTripDelivery_Legacy(t *testing.T) {
	body := envelopeOpen + legacyTripDelivery + envelopeClose

	delivery, err := ParseTripDelivery([]byte(body))
	require.NoError(t, err)

	require.Len(t, delivery.TripResults, 1)
	result := delivery.TripResults[0]

	assert.Equal(t, "ID-1", result.ID)
	require.NotNil(t, result.Trip)
	assert.Equal(t, "trip-1", result.Trip.ID)
	assert.Equal(t, "PT56M", result.Trip.Duration)

	require.Len(t, result.Trip.Legs, 1)
	timedLeg := result.Trip.Legs[0].TimedLeg
	require.NotNil(t, timedLeg)

	assert.Equal(t, "8503000", timedLeg.Board.StopPointRef)
	assert.Equal(t, "2024-05-01T12:00:00Z", timedLeg.Board.PlannedDeparture)
	assert.Equal(t, "IC 1", timedLeg.Service.PublishedServiceName)
	assert.Equal(t, "rail", timedLeg.Service.Mode)
	assert.Equal(t, "longDistance", timedLeg.Service.SubMode)

	require.Len(t, delivery.Places, 1)
	require.NotNil(t, delivery.Places[0].StopPoint)
	assert.Equal(t, "8503000", delivery.Places[0].StopPoint.StopPointRef)
}

const currentTripDelivery = `
      <ojp:OJPTripDelivery>
        <ojp:TripResult>
          <ojp:Id>ID-2</ojp:Id>
          <ojp:Trip>
            <ojp:Id>trip-2</ojp:Id>
            <ojp:Duration>PT56M</ojp:Duration>
            <ojp:Transfers>0</ojp:Transfers>
            <ojp:Leg>
              <ojp:Id>1</ojp:Id>
              <ojp:TimedLeg>
                <ojp:LegBoard>
                  <ojp:CallAtStop>
                    <siri:StopPointRef>8503000</siri:StopPointRef>
                    <ojp:StopPointName><ojp:Text>Zürich HB</ojp:Text></ojp:StopPointName>
                    <ojp:ServiceDeparture>
                      <ojp:TimetabledTime>2024-05-01T12:00:00Z</ojp:TimetabledTime>
                    </ojp:ServiceDeparture>
                  </ojp:CallAtStop>
                </ojp:LegBoard>
                <ojp:LegAlight>
                  <ojp:CallAtStop>
                    <siri:StopPointRef>8507000</siri:StopPointRef>
                    <ojp:StopPointName><ojp:Text>Bern</ojp:Text></ojp:StopPointName>
                    <ojp:ServiceArrival>
                      <ojp:TimetabledTime>2024-05-01T12:56:00Z</ojp:TimetabledTime>
                    </ojp:ServiceArrival>
                  </ojp:CallAtStop>
                </ojp:LegAlight>
                <ojp:Service>
                  <ojp:JourneyRef>odp:ic1</ojp:JourneyRef>
                  <ojp:Mode><ojp:PtMode>rail</ojp:PtMode></ojp:Mode>
                  <ojp:PublishedServiceName><ojp:Text>IC 1</ojp:Text></ojp:PublishedServiceName>
                </ojp:Service>
              </ojp:TimedLeg>
            </ojp:Leg>
          </ojp:Trip>
        </ojp:TripResult>
      </ojp:OJPTripDelivery>`

func TestParseTripDelivery_Current(t *testing.T) {
	body := envelopeOpen + currentTripDelivery + envelopeClose

	delivery, err := ParseTripDelivery([]byte(body))
	require.NoError(t, err)

	require.Len(t, delivery.TripResults, 1)
	result := delivery.TripResults[0]

	assert.Equal(t, "ID-2", result.ID)
	require.NotNil(t, result.Trip)

	require.Len(t, result.Trip.Legs, 1)
	timedLeg := result.Trip.Legs[0].TimedLeg
	require.NotNil(t, timedLeg)

	assert.Equal(t, "8503000", timedLeg.Board.StopPointRef)
	assert.Equal(t, "IC 1", timedLeg.Service.PublishedServiceName)
	assert.Equal(t, "rail", timedLeg.Service.Mode)
}

func TestParseTripDelivery_BothGenerationsNormalizeEqually(t *testing.T) {
	legacy, err := ParseTripDelivery([]byte(envelopeOpen + legacyTripDelivery + envelopeClose))
	require.NoError(t, err)
	current, err := ParseTripDelivery([]byte(envelopeOpen + currentTripDelivery + envelopeClose))
	require.NoError(t, err)

	legacyLeg := legacy.TripResults[0].Trip.Legs[0].TimedLeg
	currentLeg := current.TripResults[0].Trip.Legs[0].TimedLeg

	assert.Equal(t, legacyLeg.Board.StopPointRef, currentLeg.Board.StopPointRef)
	assert.Equal(t, legacyLeg.Board.PlannedDeparture, currentLeg.Board.PlannedDeparture)
	assert.Equal(t, legacyLeg.Alight.StopPointRef, currentLeg.Alight.StopPointRef)
	assert.Equal(t, legacyLeg.Service.PublishedServiceName, currentLeg.Service.PublishedServiceName)
	assert.Equal(t, legacyLeg.Service.Mode, currentLeg.Service.Mode)
}

func TestParseTripDelivery_Empty(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPTripDelivery>
        <siri:Status>true</siri:Status>
      </ojp:OJPTripDelivery>` + envelopeClose

	delivery, err := ParseTripDelivery([]byte(body))
	require.NoError(t, err)
	assert.Empty(t, delivery.TripResults)
}

func TestParseStopEventDelivery_Legacy(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPStopEventDelivery>
        <ojp:StopEventResult>
          <ojp:ResultId>board-1</ojp:ResultId>
          <ojp:StopEvent>
            <ojp:ThisCall>
              <ojp:CallAtStop>
                <siri:StopPointRef>8503000</siri:StopPointRef>
                <ojp:StopPointName><ojp:Text>Zürich HB</ojp:Text></ojp:StopPointName>
                <ojp:ServiceDeparture>
                  <ojp:TimetabledTime>2024-05-01T12:00:00Z</ojp:TimetabledTime>
                  <ojp:EstimatedTime>2024-05-01T12:03:00Z</ojp:EstimatedTime>
                </ojp:ServiceDeparture>
              </ojp:CallAtStop>
            </ojp:ThisCall>
            <ojp:Service>
              <ojp:PublishedLineName><ojp:Text>S9</ojp:Text></ojp:PublishedLineName>
              <ojp:Mode><ojp:PtMode>rail</ojp:PtMode></ojp:Mode>
              <ojp:DestinationText><ojp:Text>Uster</ojp:Text></ojp:DestinationText>
            </ojp:Service>
          </ojp:StopEvent>
        </ojp:StopEventResult>
      </ojp:OJPStopEventDelivery>` + envelopeClose

	delivery, err := ParseStopEventDelivery([]byte(body))
	require.NoError(t, err)

	require.Len(t, delivery.StopEvents, 1)
	event := delivery.StopEvents[0]

	assert.Equal(t, "board-1", event.ID)
	require.NotNil(t, event.Service)
	assert.Equal(t, "S9", event.Service.PublishedServiceName)

	require.NotNil(t, event.ThisCall)
	assert.Equal(t, "2024-05-01T12:03:00Z", event.ThisCall.EstimatedDeparture)
}

func TestParseStopEventDelivery_Empty(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPStopEventDelivery>
        <siri:Status>true</siri:Status>
      </ojp:OJPStopEventDelivery>` + envelopeClose

	delivery, err := ParseStopEventDelivery([]byte(body))
	require.NoError(t, err)
	assert.Empty(t, delivery.StopEvents)
}

func testTimestamp() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func tripInfoParams() schema.TripInfoParams {
	return schema.TripInfoParams{
		JourneyRef:      "odp:ic1",
		OperatingDayRef: "2024-05-01",
		IncludeCalls:    true,
		IncludeService:  true,
	}
}

func TestBuildRequests_VersionDispatch(t *testing.T) {
	timestamp := testTimestamp()

	v1Body, err := BuildTripInfoRequest(V1, tripInfoParams(), timestamp, "test-client")
	require.NoError(t, err)
	assert.Contains(t, string(v1Body), `version="1.0"`)

	v2Body, err := BuildTripInfoRequest(V2, tripInfoParams(), timestamp, "test-client")
	require.NoError(t, err)
	assert.Contains(t, string(v2Body), `version="2.0"`)

	_, err = BuildTripInfoRequest(Version("9.9"), tripInfoParams(), timestamp, "test-client")
	require.ErrorIs(t, err, ErrUnknownSchemaVersion)
}

func TestParseStopEventDelivery_UnknownShape(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPStopEventDelivery>
        <siri:Status>true</siri:Status>
        <ojp:SomethingElse/>
      </ojp:OJPStopEventDelivery>` + envelopeClose

	_, err := ParseStopEventDelivery([]byte(body))
	require.ErrorIs(t, err, ErrUnknownSchemaVersion)
}

func TestParseTripInfoDelivery_Empty(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPTripInfoDelivery>
        <siri:Status>true</siri:Status>
      </ojp:OJPTripInfoDelivery>` + envelopeClose

	delivery, err := ParseTripInfoDelivery([]byte(body))
	require.NoError(t, err)
	assert.Nil(t, delivery.Result)
}

func TestParseTripInfoDelivery_UnknownShape(t *testing.T) {
	body := envelopeOpen + `
      <ojp:OJPTripInfoDelivery>
        <siri:Status>true</siri:Status>
        <ojp:SomethingElse/>
      </ojp:OJPTripInfoDelivery>` + envelopeClose

	_, err := ParseTripInfoDelivery([]byte(body))
	require.ErrorIs(t, err, ErrUnknownSchemaVersion)
}
