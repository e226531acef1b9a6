package ojpv1

import (
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/xmlnode"
)

func ParseStopEventDelivery(document *xmlnode.Node) (*schema.StopEventDelivery, bool) {
	deliveryNode := document.Find("OJPResponse/ServiceDelivery/OJPStopEventDelivery")
	if deliveryNode == nil {
		return nil, false
	}

	delivery := &schema.StopEventDelivery{}
	delivery.Places, delivery.Situations = parseResponseContext(deliveryNode.Child("StopEventResponseContext"))

	for _, resultNode := range deliveryNode.ChildrenNamed("StopEventResult") {
		eventNode := resultNode.Child("StopEvent")
		if eventNode == nil {
			continue
		}

		result := schema.StopEventResult{
			ID: resultNode.TextOf("ResultId"),
		}

		for _, callNode := range eventNode.ChildrenNamed("PreviousCall") {
			result.PreviousCalls = append(result.PreviousCalls, parseCallAtStop(callNode.ChildOrSelf("CallAtStop")))
		}
		if thisCallNode := eventNode.Child("ThisCall"); thisCallNode != nil {
			call := parseCallAtStop(thisCallNode.ChildOrSelf("CallAtStop"))
			result.ThisCall = &call
		}
		for _, callNode := range eventNode.ChildrenNamed("OnwardCall") {
			result.OnwardCalls = append(result.OnwardCalls, parseCallAtStop(callNode.ChildOrSelf("CallAtStop")))
		}

		if serviceNode := eventNode.Child("Service"); serviceNode != nil {
			service := normalizeTripService(serviceNode)
			result.Service = &service
		}

		delivery.StopEvents = append(delivery.StopEvents, result)
	}

	return delivery, true
}

func ParseTripInfoDelivery(document *xmlnode.Node) (*schema.TripInfoDelivery, bool) {
	deliveryNode := document.Find("OJPResponse/ServiceDelivery/OJPTripInfoDelivery")
	if deliveryNode == nil {
		return nil, false
	}

	delivery := &schema.TripInfoDelivery{}
	delivery.Places, delivery.Situations = parseResponseContext(deliveryNode.Child("TripInfoResponseContext"))

	resultNode := deliveryNode.Child("TripInfoResult")
	if resultNode == nil {
		return delivery, true
	}

	result := &schema.TripInfoResult{
		Track:        parseLegTrack(resultNode.Child("JourneyTrack")),
		OperatingDay: resultNode.TextOf("OperatingDayRef"),
	}

	// The legacy shape splits the call sequence around the vehicle position;
	// the unified shape is one ordered list.
	for _, callNode := range resultNode.ChildrenNamed("PreviousCall") {
		result.Calls = append(result.Calls, parseCallAtStop(callNode.ChildOrSelf("CallAtStop")))
	}
	for _, callNode := range resultNode.ChildrenNamed("OnwardCall") {
		result.Calls = append(result.Calls, parseCallAtStop(callNode.ChildOrSelf("CallAtStop")))
	}

	if serviceNode := resultNode.Child("Service"); serviceNode != nil {
		service := normalizeTripInfoService(serviceNode)
		result.Service = &service
	}

	delivery.Result = result

	return delivery, true
}
