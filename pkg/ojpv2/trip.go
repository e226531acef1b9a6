package ojpv2

import "github.com/openjourney/ojp/pkg/schema"

type tripDelivery struct {
	Context *responseContext `xml:"TripResponseContext"`

	TripResults []tripResult `xml:"TripResult"`
}

type responseContext struct {
	Places     []place       `xml:"Places>Place"`
	Situations []ptSituation `xml:"Situations>PtSituation"`
}

type ptSituation struct {
	SituationNumber string `xml:"SituationNumber"`

	Summary      string   `xml:"Summary"`
	Descriptions []string `xml:"Description"`
	Details      []string `xml:"Detail"`

	Priority int `xml:"Priority"`

	ValidityPeriod struct {
		StartTime string `xml:"StartTime"`
		EndTime   string `xml:"EndTime"`
	} `xml:"ValidityPeriod"`
}

type tripResult struct {
	ID   string `xml:"Id"`
	Trip *trip  `xml:"Trip"`
}

type trip struct {
	ID        string `xml:"Id"`
	Duration  string `xml:"Duration"`
	StartTime string `xml:"StartTime"`
	EndTime   string `xml:"EndTime"`
	Transfers int    `xml:"Transfers"`
	Distance  int    `xml:"Distance"`

	Legs []leg `xml:"Leg"`

	Unplanned  bool `xml:"Unplanned"`
	Cancelled  bool `xml:"Cancelled"`
	Deviation  bool `xml:"Deviation"`
	Delayed    bool `xml:"Delayed"`
	Infeasible bool `xml:"Infeasible"`
}

type leg struct {
	ID       int    `xml:"Id"`
	Duration string `xml:"Duration"`

	TimedLeg      *timedLeg      `xml:"TimedLeg"`
	TransferLeg   *transferLeg   `xml:"TransferLeg"`
	ContinuousLeg *continuousLeg `xml:"ContinuousLeg"`
}

type timedLeg struct {
	Board         callAtStop   `xml:"LegBoard"`
	Alight        callAtStop   `xml:"LegAlight"`
	Intermediates []callAtStop `xml:"LegIntermediate"`

	Service datedJourney `xml:"Service"`

	Track *legTrack `xml:"LegTrack"`
}

type transferLeg struct {
	TransferType string `xml:"TransferType"`

	From placeRefElement `xml:"LegStart"`
	To   placeRefElement `xml:"LegEnd"`

	Duration     string `xml:"Duration"`
	WalkDuration string `xml:"WalkDuration"`

	PathGuidance *pathGuidance `xml:"PathGuidance"`
}

type continuousLeg struct {
	Service struct {
		PersonalMode   string `xml:"PersonalMode"`
		SharingMode    string `xml:"SharingMode"`
		ContinuousMode string `xml:"ContinuousMode"`
	} `xml:"Service"`

	From placeRefElement `xml:"LegStart"`
	To   placeRefElement `xml:"LegEnd"`

	TimeWindowStart string `xml:"TimeWindowStart"`
	TimeWindowEnd   string `xml:"TimeWindowEnd"`

	Duration string `xml:"Duration"`
	Length   int    `xml:"Length"`

	Track        *legTrack     `xml:"LegTrack"`
	PathGuidance *pathGuidance `xml:"PathGuidance"`
}

type callAtStop struct {
	StopPointRef  string      `xml:"CallAtStop>StopPointRef"`
	StopPointName textElement `xml:"CallAtStop>StopPointName"`

	PlannedQuay   textElement `xml:"CallAtStop>PlannedQuay"`
	EstimatedQuay textElement `xml:"CallAtStop>EstimatedQuay"`

	ServiceArrival struct {
		TimetabledTime string `xml:"TimetabledTime"`
		EstimatedTime  string `xml:"EstimatedTime"`
	} `xml:"CallAtStop>ServiceArrival"`
	ServiceDeparture struct {
		TimetabledTime string `xml:"TimetabledTime"`
		EstimatedTime  string `xml:"EstimatedTime"`
	} `xml:"CallAtStop>ServiceDeparture"`

	Order int `xml:"CallAtStop>Order"`

	RequestStop       bool `xml:"CallAtStop>RequestStop"`
	UnplannedStop     bool `xml:"CallAtStop>UnplannedStop"`
	NotServicedStop   bool `xml:"CallAtStop>NotServicedStop"`
	NoBoardingAtStop  bool `xml:"CallAtStop>NoBoardingAtStop"`
	NoAlightingAtStop bool `xml:"CallAtStop>NoAlightingAtStop"`

	NotWheelchairAccessible bool `xml:"CallAtStop>NotWheelchairAccessible"`

	Occupancies []fareClassOccupancy `xml:"CallAtStop>ExpectedOccupancy"`
}

type fareClassOccupancy struct {
	FareClass      string `xml:"FareClass"`
	OccupancyLevel string `xml:"OccupancyLevel"`
}

type datedJourney struct {
	OperatingDayRef string `xml:"OperatingDayRef"`
	JourneyRef      string `xml:"JourneyRef"`
	LineRef         string `xml:"LineRef"`
	DirectionRef    string `xml:"DirectionRef"`

	Mode mode `xml:"Mode"`

	PublishedServiceName textElement `xml:"PublishedServiceName"`
	TrainNumber          string      `xml:"TrainNumber"`
	OperatorRef          string      `xml:"OperatorRef"`

	OriginText      textElement `xml:"OriginText"`
	DestinationText textElement `xml:"DestinationText"`
	DestinationRef  string      `xml:"DestinationStopPointRef"`

	Attributes []serviceAttribute `xml:"Attribute"`

	SituationFullRefs []situationFullRef `xml:"SituationFullRef"`

	Unplanned bool `xml:"Unplanned"`
	Cancelled bool `xml:"Cancelled"`
	Deviation bool `xml:"Deviation"`
}

type serviceAttribute struct {
	Code     string      `xml:"Code"`
	UserText textElement `xml:"UserText"`
}

type situationFullRef struct {
	SituationNumber string `xml:"SituationNumber"`
}

type placeRefElement struct {
	StopPointRef string       `xml:"StopPointRef"`
	StopPlaceRef string       `xml:"StopPlaceRef"`
	Name         textElement  `xml:"Name"`
	GeoPosition  *geoPosition `xml:"GeoPosition"`
}

type legTrack struct {
	Duration string `xml:"Duration"`

	Sections []trackSection `xml:"TrackSection"`
}

type trackSection struct {
	From placeRefElement `xml:"TrackSectionStart"`
	To   placeRefElement `xml:"TrackSectionEnd"`

	Duration string `xml:"Duration"`
	Length   int    `xml:"Length"`

	Positions []geoPosition `xml:"LinkProjection>Position"`

	RoadName     string `xml:"RoadName"`
	GuidanceText string `xml:"GuidanceText"`
}

type pathGuidance struct {
	Sections []pathGuidanceSection `xml:"PathGuidanceSection"`
}

type pathGuidanceSection struct {
	TrackSection *trackSection `xml:"TrackSection"`

	GuidanceAdvice  string `xml:"GuidanceAdvice"`
	TurnAction      string `xml:"TurnAction"`
	TurnDescription string `xml:"TurnDescription"`
}

// ParseTripDelivery reports false when the document has no current-generation
// trip delivery.
func ParseTripDelivery(body []byte) (*schema.TripDelivery, bool, error) {
	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, false, err
	}

	if envelope.TripDelivery == nil || len(envelope.TripDelivery.TripResults) == 0 {
		return nil, false, nil
	}

	delivery := &schema.TripDelivery{}
	delivery.Places, delivery.Situations = convertContext(envelope.TripDelivery.Context)

	for _, result := range envelope.TripDelivery.TripResults {
		if result.Trip == nil {
			continue
		}

		delivery.TripResults = append(delivery.TripResults, schema.TripResult{
			ID:   result.ID,
			Trip: convertTrip(result.Trip),
		})
	}

	return delivery, true, nil
}

func convertContext(context *responseContext) ([]schema.Place, []schema.Situation) {
	if context == nil {
		return nil, nil
	}

	var places []schema.Place
	for _, contextPlace := range context.Places {
		places = append(places, convertPlace(contextPlace))
	}

	var situations []schema.Situation
	for _, situation := range context.Situations {
		situations = append(situations, schema.Situation{
			SituationNumber: situation.SituationNumber,
			Summary:         situation.Summary,
			Descriptions:    situation.Descriptions,
			Details:         situation.Details,
			Priority:        situation.Priority,
			ValidFrom:       situation.ValidityPeriod.StartTime,
			ValidTo:         situation.ValidityPeriod.EndTime,
		})
	}

	return places, situations
}

func convertTrip(source *trip) *schema.Trip {
	converted := &schema.Trip{
		ID:        source.ID,
		Duration:  source.Duration,
		StartTime: source.StartTime,
		EndTime:   source.EndTime,
		Transfers: source.Transfers,
		DistanceM: source.Distance,

		Unplanned:  source.Unplanned,
		Cancelled:  source.Cancelled,
		Deviation:  source.Deviation,
		Delayed:    source.Delayed,
		Infeasible: source.Infeasible,
	}

	for _, sourceLeg := range source.Legs {
		converted.Legs = append(converted.Legs, convertLeg(sourceLeg))
	}

	return converted
}

func convertLeg(source leg) schema.Leg {
	converted := schema.Leg{
		ID:       source.ID,
		Duration: source.Duration,
	}

	if source.TimedLeg != nil {
		timedLeg := &schema.TimedLeg{
			Board:   convertCall(source.TimedLeg.Board),
			Alight:  convertCall(source.TimedLeg.Alight),
			Service: normalizeService(source.TimedLeg.Service),
			Track:   convertTrack(source.TimedLeg.Track),
		}
		for _, intermediate := range source.TimedLeg.Intermediates {
			timedLeg.Intermediates = append(timedLeg.Intermediates, convertCall(intermediate))
		}
		converted.TimedLeg = timedLeg
	}

	if source.TransferLeg != nil {
		converted.TransferLeg = &schema.TransferLeg{
			TransferType: source.TransferLeg.TransferType,
			FromRef:      convertPlaceRef(source.TransferLeg.From),
			ToRef:        convertPlaceRef(source.TransferLeg.To),
			Duration:     source.TransferLeg.Duration,
			WalkDuration: source.TransferLeg.WalkDuration,
			PathGuidance: convertPathGuidance(source.TransferLeg.PathGuidance),
		}
	}

	if source.ContinuousLeg != nil {
		continuousMode := source.ContinuousLeg.Service.PersonalMode
		if source.ContinuousLeg.Service.SharingMode != "" {
			continuousMode = source.ContinuousLeg.Service.SharingMode
		}
		if continuousMode == "" {
			continuousMode = source.ContinuousLeg.Service.ContinuousMode
		}

		converted.ContinuousLeg = &schema.ContinuousLeg{
			Mode:    continuousMode,
			FromRef: convertPlaceRef(source.ContinuousLeg.From),
			ToRef:   convertPlaceRef(source.ContinuousLeg.To),

			TimeWindowStart: source.ContinuousLeg.TimeWindowStart,
			TimeWindowEnd:   source.ContinuousLeg.TimeWindowEnd,

			Duration: source.ContinuousLeg.Duration,
			LengthM:  source.ContinuousLeg.Length,

			Track:        convertTrack(source.ContinuousLeg.Track),
			PathGuidance: convertPathGuidance(source.ContinuousLeg.PathGuidance),
		}
	}

	return converted
}

func convertCall(source callAtStop) schema.CallAtStop {
	converted := schema.CallAtStop{
		StopPointRef:  source.StopPointRef,
		StopPointName: source.StopPointName.Text,

		PlannedQuay:   source.PlannedQuay.Text,
		EstimatedQuay: source.EstimatedQuay.Text,

		PlannedArrival:     source.ServiceArrival.TimetabledTime,
		EstimatedArrival:   source.ServiceArrival.EstimatedTime,
		PlannedDeparture:   source.ServiceDeparture.TimetabledTime,
		EstimatedDeparture: source.ServiceDeparture.EstimatedTime,

		Order: source.Order,

		RequestStop:       source.RequestStop,
		UnplannedStop:     source.UnplannedStop,
		NotServicedStop:   source.NotServicedStop,
		NoBoardingAtStop:  source.NoBoardingAtStop,
		NoAlightingAtStop: source.NoAlightingAtStop,

		NotWheelchairAccessible: source.NotWheelchairAccessible,
	}

	for _, occupancy := range source.Occupancies {
		converted.Occupancy = append(converted.Occupancy, schema.FareClassOccupancy{
			FareClass: occupancy.FareClass,
			Level:     occupancy.OccupancyLevel,
		})
	}

	return converted
}

// normalizeService maps the DatedJourney block into the canonical service
// record shared with the legacy normalizers.
func normalizeService(source datedJourney) schema.Service {
	service := schema.Service{
		OperatingDayRef: source.OperatingDayRef,
		JourneyRef:      source.JourneyRef,
		LineRef:         source.LineRef,
		DirectionRef:    source.DirectionRef,

		Mode: source.Mode.PtMode,
		SubMode: firstNonEmpty(
			source.Mode.RailSubmode,
			source.Mode.BusSubmode,
			source.Mode.TramSubmode,
			source.Mode.WaterSubmode,
		),

		PublishedServiceName: source.PublishedServiceName.Text,
		TrainNumber:          source.TrainNumber,
		OperatorRef:          source.OperatorRef,

		OriginText:      source.OriginText.Text,
		DestinationText: source.DestinationText.Text,
		DestinationRef:  source.DestinationRef,

		Unplanned: source.Unplanned,
		Cancelled: source.Cancelled,
		Deviation: source.Deviation,
	}

	for _, attribute := range source.Attributes {
		service.Attributes = append(service.Attributes, schema.ServiceAttribute{
			Code: attribute.Code,
			Text: attribute.UserText.Text,
		})
	}

	for _, situationRef := range source.SituationFullRefs {
		if situationRef.SituationNumber != "" {
			service.SituationRefs = append(service.SituationRefs, situationRef.SituationNumber)
		}
	}

	return service
}

func convertPlaceRef(source placeRefElement) schema.PlaceRef {
	converted := schema.PlaceRef{
		StopPointRef: source.StopPointRef,
		StopPlaceRef: source.StopPlaceRef,
		Name:         source.Name.Text,
	}

	if source.GeoPosition != nil {
		converted.GeoPosition = &schema.GeoPosition{
			Longitude: source.GeoPosition.Longitude,
			Latitude:  source.GeoPosition.Latitude,
		}
	}

	return converted
}

func convertTrack(source *legTrack) *schema.LegTrack {
	if source == nil {
		return nil
	}

	converted := &schema.LegTrack{Duration: source.Duration}
	for _, section := range source.Sections {
		converted.Sections = append(converted.Sections, convertTrackSection(section))
	}

	return converted
}

func convertTrackSection(source trackSection) schema.TrackSection {
	converted := schema.TrackSection{
		FromRef: convertPlaceRef(source.From),
		ToRef:   convertPlaceRef(source.To),

		Duration: source.Duration,
		LengthM:  source.Length,

		RoadName:     source.RoadName,
		GuidanceText: source.GuidanceText,
	}

	for _, position := range source.Positions {
		converted.Positions = append(converted.Positions, schema.GeoPosition{
			Longitude: position.Longitude,
			Latitude:  position.Latitude,
		})
	}

	return converted
}

func convertPathGuidance(source *pathGuidance) *schema.PathGuidance {
	if source == nil {
		return nil
	}

	converted := &schema.PathGuidance{}
	for _, section := range source.Sections {
		convertedSection := schema.PathGuidanceSection{
			GuidanceAdvice:  section.GuidanceAdvice,
			TurnAction:      section.TurnAction,
			TurnDescription: section.TurnDescription,
		}

		if section.TrackSection != nil {
			trackSectionValue := convertTrackSection(*section.TrackSection)
			convertedSection.TrackSection = &trackSectionValue
		}

		converted.Sections = append(converted.Sections, convertedSection)
	}

	return converted
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
