// Package ojpv1 implements the legacy wire generation: requests are built as
// prefixed-element trees and responses are navigated with the xmlnode layer.
package ojpv1

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/openjourney/ojp/pkg/schema"
)

const (
	siriNamespace = "http://www.siri.org.uk/siri"
	ojpNamespace  = "http://www.vdv.de/ojp"

	wireTimeFormat = "2006-01-02T15:04:05Z"
)

type requestEnvelope struct {
	XMLName xml.Name `xml:"OJP"`

	SiriNS  string `xml:"xmlns:siri,attr"`
	OjpNS   string `xml:"xmlns:ojp,attr"`
	Version string `xml:"version,attr"`

	ServiceRequest serviceRequest `xml:"OJPRequest>siri:ServiceRequest"`
}

type serviceRequest struct {
	RequestTimestamp string `xml:"siri:RequestTimestamp"`
	RequestorRef     string `xml:"siri:RequestorRef"`

	LocationInformationRequest *locationInformationRequest `xml:"ojp:OJPLocationInformationRequest,omitempty"`
	TripRequest                *tripRequest                `xml:"ojp:OJPTripRequest,omitempty"`
	StopEventRequest           *stopEventRequest           `xml:"ojp:OJPStopEventRequest,omitempty"`
	TripInfoRequest            *tripInfoRequest            `xml:"ojp:OJPTripInfoRequest,omitempty"`
}

func newEnvelope(timestamp time.Time, requestorRef string) requestEnvelope {
	return requestEnvelope{
		SiriNS:  siriNamespace,
		OjpNS:   ojpNamespace,
		Version: "1.0",

		ServiceRequest: serviceRequest{
			RequestTimestamp: timestamp.UTC().Format(wireTimeFormat),
			RequestorRef:     requestorRef,
		},
	}
}

func marshalEnvelope(envelope requestEnvelope) ([]byte, error) {
	body, err := xml.MarshalIndent(envelope, "", "    ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), append(body, '\n')...), nil
}

type locationInformationRequest struct {
	InitialInput *initialInput `xml:"ojp:InitialInput,omitempty"`
	PlaceRef     *placeRef     `xml:"ojp:PlaceRef,omitempty"`

	Restrictions *locationRestrictions `xml:"ojp:Restrictions,omitempty"`
}

type initialInput struct {
	LocationName string `xml:"ojp:LocationName,omitempty"`

	GeoRestriction *geoRestriction `xml:"ojp:GeoRestriction,omitempty"`
}

type geoRestriction struct {
	UpperLeft  geoPosition `xml:"ojp:Rectangle>ojp:UpperLeft"`
	LowerRight geoPosition `xml:"ojp:Rectangle>ojp:LowerRight"`
}

type geoPosition struct {
	Longitude string `xml:"siri:Longitude"`
	Latitude  string `xml:"siri:Latitude"`
}

type locationRestrictions struct {
	Types []string `xml:"ojp:Type,omitempty"`

	NumberOfResults int `xml:"ojp:NumberOfResults,omitempty"`

	PointOfInterestFilter *poiFilter `xml:"ojp:PointOfInterestFilter,omitempty"`
}

type poiFilter struct {
	Categories []poiOsmTag `xml:"ojp:PointOfInterestCategory"`
}

type poiOsmTag struct {
	Tag   string `xml:"ojp:OsmTag>ojp:Tag"`
	Value string `xml:"ojp:OsmTag>ojp:Value"`
}

// BuildLocationInformationRequest serializes the legacy location search. The
// payload bytes are deterministic for identical parameters and timestamp.
func BuildLocationInformationRequest(params schema.LocationInformationParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	request := &locationInformationRequest{}

	input := &initialInput{LocationName: params.Text}
	if params.BBox != nil {
		input.GeoRestriction = &geoRestriction{
			UpperLeft:  formatPosition(params.BBox.LowerLongitude, params.BBox.UpperLatitude),
			LowerRight: formatPosition(params.BBox.UpperLongitude, params.BBox.LowerLatitude),
		}
	}
	request.InitialInput = input

	if len(params.PlaceTypes) > 0 || params.NumberOfResults > 0 || len(params.POICategories) > 0 {
		restrictions := &locationRestrictions{
			Types:           params.PlaceTypes,
			NumberOfResults: params.NumberOfResults,
		}

		if len(params.POICategories) > 0 {
			filter := &poiFilter{}
			for _, category := range params.POICategories {
				filter.Categories = append(filter.Categories, poiOsmTag{Tag: category.OsmTagKey, Value: category.OsmTagValue})
			}
			restrictions.PointOfInterestFilter = filter
		}

		request.Restrictions = restrictions
	}

	envelope := newEnvelope(timestamp, requestorRef)
	envelope.ServiceRequest.LocationInformationRequest = request

	return marshalEnvelope(envelope)
}

type placeRef struct {
	StopPlaceRef string       `xml:"ojp:StopPlaceRef,omitempty"`
	GeoPosition  *geoPosition `xml:"ojp:GeoPosition,omitempty"`
	LocationName string       `xml:"ojp:LocationName>ojp:Text,omitempty"`
}

type tripEndpoint struct {
	PlaceRef placeRef `xml:"ojp:PlaceRef"`

	DepArrTime string `xml:"ojp:DepArrTime,omitempty"`
}

type tripRequest struct {
	Origin      tripEndpoint   `xml:"ojp:Origin"`
	Destination tripEndpoint   `xml:"ojp:Destination"`
	Via         []tripEndpoint `xml:"ojp:Via,omitempty"`

	Params tripParams `xml:"ojp:Params"`
}

type tripParams struct {
	NumberOfResults       int `xml:"ojp:NumberOfResults"`
	NumberOfResultsBefore int `xml:"ojp:NumberOfResultsBefore,omitempty"`
	NumberOfResultsAfter  int `xml:"ojp:NumberOfResultsAfter,omitempty"`

	PtModeFilter *ptModeFilter `xml:"ojp:PtModeFilter,omitempty"`

	ItModesToCover string `xml:"ojp:ItModesToCover,omitempty"`

	MinDuration string `xml:"ojp:MinDuration,omitempty"`
	MaxDuration string `xml:"ojp:MaxDuration,omitempty"`
	MinDistance int    `xml:"ojp:MinDistance,omitempty"`
	MaxDistance int    `xml:"ojp:MaxDistance,omitempty"`
	Speed       int    `xml:"ojp:Speed,omitempty"`

	IncludeTrackSections     bool `xml:"ojp:IncludeTrackSections"`
	IncludeLegProjection     bool `xml:"ojp:IncludeLegProjection"`
	IncludeTurnDescription   bool `xml:"ojp:IncludeTurnDescription"`
	IncludeIntermediateStops bool `xml:"ojp:IncludeIntermediateStops"`

	UseRealtimeData string `xml:"ojp:UseRealtimeData,omitempty"`
}

type ptModeFilter struct {
	Exclude     bool     `xml:"ojp:Exclude"`
	PtModes     []string `xml:"siri:PtMode,omitempty"`
	RailSubmode []string `xml:"siri:RailSubmode,omitempty"`
}

func BuildTripRequest(params schema.TripParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	request := &tripRequest{
		Origin:      makeEndpoint(params.Origin),
		Destination: makeEndpoint(params.Destination),
	}

	if !params.DepArrTime.IsZero() {
		formatted := params.DepArrTime.UTC().Format(wireTimeFormat)
		if params.IsArrival {
			request.Destination.DepArrTime = formatted
		} else {
			request.Origin.DepArrTime = formatted
		}
	}

	for _, via := range params.Via {
		request.Via = append(request.Via, makeEndpoint(via))
	}

	request.Params = tripParams{
		NumberOfResults:       params.NumberOfResults,
		NumberOfResultsBefore: params.NumberOfResultsBefore,
		NumberOfResultsAfter:  params.NumberOfResultsAfter,

		ItModesToCover: params.IndividualTransportMode,

		IncludeTrackSections:     true,
		IncludeLegProjection:     params.IncludeLegProjection,
		IncludeTurnDescription:   params.IncludeTurnDescription,
		IncludeIntermediateStops: params.IncludeIntermediateStops,

		UseRealtimeData: params.RealtimeMode,
	}

	if len(params.ModeFilter) > 0 || len(params.RailSubmodes) > 0 {
		request.Params.PtModeFilter = &ptModeFilter{
			PtModes:     params.ModeFilter,
			RailSubmode: params.RailSubmodes,
		}
	}

	if params.MinDurationMinutes != nil {
		request.Params.MinDuration = minutesToWireDuration(*params.MinDurationMinutes)
	}
	if params.MaxDurationMinutes != nil {
		request.Params.MaxDuration = minutesToWireDuration(*params.MaxDurationMinutes)
	}
	if params.MinDistanceM != nil {
		request.Params.MinDistance = *params.MinDistanceM
	}
	if params.MaxDistanceM != nil {
		request.Params.MaxDistance = *params.MaxDistanceM
	}
	if params.SpeedPercent != nil {
		request.Params.Speed = *params.SpeedPercent
	}

	envelope := newEnvelope(timestamp, requestorRef)
	envelope.ServiceRequest.TripRequest = request

	return marshalEnvelope(envelope)
}

type stopEventRequest struct {
	Location struct {
		PlaceRef   placeRef `xml:"ojp:PlaceRef"`
		DepArrTime string   `xml:"ojp:DepArrTime,omitempty"`
	} `xml:"ojp:Location"`

	Params stopEventParams `xml:"ojp:Params"`
}

type stopEventParams struct {
	NumberOfResults int    `xml:"ojp:NumberOfResults,omitempty"`
	StopEventType   string `xml:"ojp:StopEventType,omitempty"`

	IncludePreviousCalls bool `xml:"ojp:IncludePreviousCalls"`
	IncludeOnwardCalls   bool `xml:"ojp:IncludeOnwardCalls"`
	IncludeRealtimeData  bool `xml:"ojp:IncludeRealtimeData"`
}

func BuildStopEventRequest(params schema.StopEventParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	request := &stopEventRequest{}

	request.Location.PlaceRef = placeRef{StopPlaceRef: params.StopPlaceRef}
	if params.GeoPosition != nil {
		request.Location.PlaceRef.GeoPosition = formatPositionPtr(*params.GeoPosition)
	}
	if !params.DepArrTime.IsZero() {
		request.Location.DepArrTime = params.DepArrTime.UTC().Format(wireTimeFormat)
	}

	request.Params = stopEventParams{
		NumberOfResults: params.NumberOfResults,
		StopEventType:   params.StopEventType,

		IncludePreviousCalls: params.IncludePreviousCalls,
		IncludeOnwardCalls:   params.IncludeOnwardCalls,
		IncludeRealtimeData:  params.IncludeRealtimeData,
	}

	envelope := newEnvelope(timestamp, requestorRef)
	envelope.ServiceRequest.StopEventRequest = request

	return marshalEnvelope(envelope)
}

type tripInfoRequest struct {
	JourneyRef      string `xml:"ojp:JourneyRef"`
	OperatingDayRef string `xml:"ojp:OperatingDayRef"`

	Params tripInfoParams `xml:"ojp:Params"`
}

type tripInfoParams struct {
	IncludeCalls           bool `xml:"ojp:IncludeCalls"`
	IncludeService         bool `xml:"ojp:IncludeService"`
	IncludeTrackProjection bool `xml:"ojp:IncludeTrackProjection"`
}

func BuildTripInfoRequest(params schema.TripInfoParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	request := &tripInfoRequest{
		JourneyRef:      params.JourneyRef,
		OperatingDayRef: params.OperatingDayRef,

		Params: tripInfoParams{
			IncludeCalls:           params.IncludeCalls,
			IncludeService:         params.IncludeService,
			IncludeTrackProjection: params.IncludeTrackProjection,
		},
	}

	envelope := newEnvelope(timestamp, requestorRef)
	envelope.ServiceRequest.TripInfoRequest = request

	return marshalEnvelope(envelope)
}

func makeEndpoint(context schema.PlaceContext) tripEndpoint {
	endpoint := tripEndpoint{
		PlaceRef: placeRef{
			StopPlaceRef: context.StopPlaceRef,
			LocationName: context.Name,
		},
	}

	if context.GeoPosition != nil {
		endpoint.PlaceRef.GeoPosition = formatPositionPtr(*context.GeoPosition)
	}

	return endpoint
}

func formatPosition(longitude float64, latitude float64) geoPosition {
	return geoPosition{
		Longitude: strconv.FormatFloat(longitude, 'f', 6, 64),
		Latitude:  strconv.FormatFloat(latitude, 'f', 6, 64),
	}
}

func formatPositionPtr(position schema.GeoPosition) *geoPosition {
	formatted := formatPosition(position.Longitude, position.Latitude)
	return &formatted
}

func minutesToWireDuration(minutes int) string {
	return "PT" + strconv.Itoa(minutes) + "M"
}
