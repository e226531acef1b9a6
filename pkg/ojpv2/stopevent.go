package ojpv2

import "github.com/openjourney/ojp/pkg/schema"

type stopEventDelivery struct {
	Context *responseContext `xml:"StopEventResponseContext"`

	StopEventResults []stopEventResult `xml:"StopEventResult"`
}

type stopEventResult struct {
	ID        string     `xml:"Id"`
	StopEvent *stopEvent `xml:"StopEvent"`
}

type stopEvent struct {
	PreviousCalls []callAtStop `xml:"PreviousCall"`
	ThisCall      *callAtStop  `xml:"ThisCall"`
	OnwardCalls   []callAtStop `xml:"OnwardCall"`

	Service *datedJourney `xml:"Service"`
}

type tripInfoDelivery struct {
	Context *responseContext `xml:"TripInfoResponseContext"`

	TripInfoResult *tripInfoResult `xml:"TripInfoResult"`
}

type tripInfoResult struct {
	Calls []callAtStop `xml:"PreviousCall"`

	OnwardCalls []callAtStop `xml:"OnwardCall"`

	Service *datedJourney `xml:"Service"`

	Track *legTrack `xml:"JourneyTrack"`

	OperatingDayRef string `xml:"OperatingDayRef"`
}

func ParseStopEventDelivery(body []byte) (*schema.StopEventDelivery, bool, error) {
	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, false, err
	}

	if envelope.StopEventDelivery == nil || len(envelope.StopEventDelivery.StopEventResults) == 0 {
		return nil, false, nil
	}

	delivery := &schema.StopEventDelivery{}
	delivery.Places, delivery.Situations = convertContext(envelope.StopEventDelivery.Context)

	for _, result := range envelope.StopEventDelivery.StopEventResults {
		if result.StopEvent == nil {
			continue
		}

		converted := schema.StopEventResult{ID: result.ID}

		for _, call := range result.StopEvent.PreviousCalls {
			converted.PreviousCalls = append(converted.PreviousCalls, convertCall(call))
		}
		if result.StopEvent.ThisCall != nil {
			thisCall := convertCall(*result.StopEvent.ThisCall)
			converted.ThisCall = &thisCall
		}
		for _, call := range result.StopEvent.OnwardCalls {
			converted.OnwardCalls = append(converted.OnwardCalls, convertCall(call))
		}

		if result.StopEvent.Service != nil {
			service := normalizeService(*result.StopEvent.Service)
			converted.Service = &service
		}

		delivery.StopEvents = append(delivery.StopEvents, converted)
	}

	return delivery, true, nil
}

func ParseTripInfoDelivery(body []byte) (*schema.TripInfoDelivery, bool, error) {
	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, false, err
	}

	if envelope.TripInfoDelivery == nil || envelope.TripInfoDelivery.TripInfoResult == nil {
		return nil, false, nil
	}

	delivery := &schema.TripInfoDelivery{}
	delivery.Places, delivery.Situations = convertContext(envelope.TripInfoDelivery.Context)

	source := envelope.TripInfoDelivery.TripInfoResult
	result := &schema.TripInfoResult{
		Track:        convertTrack(source.Track),
		OperatingDay: source.OperatingDayRef,
	}

	for _, call := range source.Calls {
		result.Calls = append(result.Calls, convertCall(call))
	}
	for _, call := range source.OnwardCalls {
		result.Calls = append(result.Calls, convertCall(call))
	}

	if source.Service != nil {
		service := normalizeService(*source.Service)
		result.Service = &service
	}

	delivery.Result = result

	return delivery, true, nil
}
