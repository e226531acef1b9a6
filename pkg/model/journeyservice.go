package model

import "github.com/openjourney/ojp/pkg/schema"

// JourneyService is one scheduled public-transport run. All wire sources
// normalize into schema.Service at the version bridge, so this is the single
// constructor for every generation and request kind.
type JourneyService struct {
	OperatingDayRef string `json:"operatingDayRef" groups:"basic"`
	JourneyRef      string `json:"journeyRef" groups:"basic"`
	LineRef         string `json:"lineRef" groups:"basic"`
	DirectionRef    string `json:"directionRef,omitempty" groups:"detailed"`

	Mode    TransportMode `json:"mode" groups:"basic"`
	SubMode string        `json:"subMode,omitempty" groups:"detailed"`

	PublishedServiceName string `json:"publishedServiceName" groups:"basic"`
	TrainNumber          string `json:"trainNumber,omitempty" groups:"basic"`
	OperatorRef          string `json:"operatorRef,omitempty" groups:"basic"`

	OriginText      string `json:"origin,omitempty" groups:"detailed"`
	DestinationText string `json:"destination,omitempty" groups:"basic"`
	DestinationRef  string `json:"destinationRef,omitempty" groups:"detailed"`

	Attributes []ServiceAttribute `json:"attributes,omitempty" groups:"detailed"`

	Unplanned bool `json:"unplanned,omitempty" groups:"basic"`
	Cancelled bool `json:"cancelled,omitempty" groups:"basic"`
	Deviation bool `json:"deviation,omitempty" groups:"basic"`

	SituationRefs []string `json:"-"`
}

type ServiceAttribute struct {
	Code string `json:"code" groups:"detailed"`
	Text string `json:"text" groups:"detailed"`
}

func NewJourneyServiceFromSchema(s schema.Service) *JourneyService {
	service := &JourneyService{
		OperatingDayRef: s.OperatingDayRef,
		JourneyRef:      s.JourneyRef,
		LineRef:         s.LineRef,
		DirectionRef:    s.DirectionRef,

		Mode:    parseTransportMode(s.Mode),
		SubMode: s.SubMode,

		PublishedServiceName: s.PublishedServiceName,
		TrainNumber:          s.TrainNumber,
		OperatorRef:          s.OperatorRef,

		OriginText:      s.OriginText,
		DestinationText: s.DestinationText,
		DestinationRef:  s.DestinationRef,

		Unplanned: s.Unplanned,
		Cancelled: s.Cancelled,
		Deviation: s.Deviation,

		SituationRefs: s.SituationRefs,
	}

	for _, attribute := range s.Attributes {
		service.Attributes = append(service.Attributes, ServiceAttribute{
			Code: attribute.Code,
			Text: attribute.Text,
		})
	}

	return service
}

func parseTransportMode(mode string) TransportMode {
	switch TransportMode(mode) {
	case TransportModeBus, TransportModeTram, TransportModeRail, TransportModeMetro,
		TransportModeWater, TransportModeCableway, TransportModeFunicular,
		TransportModeWalk, TransportModeCycle, TransportModeSelfDriveCar,
		TransportModeCarShuttleTrain, TransportModeCarFerry, TransportModeTaxi,
		TransportModeBicycleRental, TransportModeEscooterRental, TransportModeCarSharing:
		return TransportMode(mode)
	}

	return TransportModeUnknown
}

// FormatServiceName renders the display name used in trip hashes and
// summaries, e.g. "IC 1 (direction Genève)".
func (s *JourneyService) FormatServiceName() string {
	name := s.PublishedServiceName
	if name == "" {
		name = s.LineRef
	}

	if s.DestinationText == "" {
		return name
	}

	return name + " (direction " + s.DestinationText + ")"
}
