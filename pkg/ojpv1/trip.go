package ojpv1

import (
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/xmlnode"
)

// ParseTripDelivery parses the legacy trip response. The legacy shape is
// recognized by its TripLeg leg wrappers; a document without any trip
// delivery reports false.
func ParseTripDelivery(document *xmlnode.Node) (*schema.TripDelivery, bool) {
	deliveryNode := document.Find("OJPResponse/ServiceDelivery/OJPTripDelivery")
	if deliveryNode == nil {
		return nil, false
	}

	delivery := &schema.TripDelivery{}
	delivery.Places, delivery.Situations = parseResponseContext(deliveryNode.Child("TripResponseContext"))

	for _, resultNode := range deliveryNode.ChildrenNamed("TripResult") {
		tripNode := resultNode.Child("Trip")
		if tripNode == nil {
			continue
		}

		delivery.TripResults = append(delivery.TripResults, schema.TripResult{
			ID:   resultNode.TextOf("ResultId"),
			Trip: parseTrip(tripNode),
		})
	}

	return delivery, true
}

func parseTrip(node *xmlnode.Node) *schema.Trip {
	trip := &schema.Trip{
		ID:        node.TextOf("TripId"),
		Duration:  node.TextOf("Duration"),
		StartTime: node.TextOf("StartTime"),
		EndTime:   node.TextOf("EndTime"),
		Transfers: node.IntOf("Transfers"),
		DistanceM: node.IntOf("Distance"),

		Unplanned:  node.BoolOf("Unplanned"),
		Cancelled:  node.BoolOf("Cancelled"),
		Deviation:  node.BoolOf("Deviation"),
		Delayed:    node.BoolOf("Delayed"),
		Infeasible: node.BoolOf("Infeasible"),
	}

	for _, legNode := range node.ChildrenNamed("TripLeg") {
		trip.Legs = append(trip.Legs, parseLeg(legNode))
	}

	return trip
}

func parseLeg(node *xmlnode.Node) schema.Leg {
	leg := schema.Leg{
		ID:       node.IntOf("LegId"),
		Duration: node.TextOf("Duration"),
	}

	if timedNode := node.Child("TimedLeg"); timedNode != nil {
		leg.TimedLeg = parseTimedLeg(timedNode)
	}
	if transferNode := node.Child("TransferLeg"); transferNode != nil {
		leg.TransferLeg = parseTransferLeg(transferNode)
	}
	if continuousNode := node.Child("ContinuousLeg"); continuousNode != nil {
		leg.ContinuousLeg = parseContinuousLeg(continuousNode)
	}

	return leg
}

func parseTimedLeg(node *xmlnode.Node) *schema.TimedLeg {
	timedLeg := &schema.TimedLeg{
		Track: parseLegTrack(node.Child("LegTrack")),
	}

	if boardNode := node.Child("LegBoard"); boardNode != nil {
		timedLeg.Board = parseCallAtStop(boardNode)
	}
	if alightNode := node.Child("LegAlight"); alightNode != nil {
		timedLeg.Alight = parseCallAtStop(alightNode)
	}
	for _, intermediateNode := range node.ChildrenNamed("LegIntermediates") {
		timedLeg.Intermediates = append(timedLeg.Intermediates, parseCallAtStop(intermediateNode))
	}

	if serviceNode := node.Child("Service"); serviceNode != nil {
		timedLeg.Service = normalizeTripService(serviceNode)
	}

	return timedLeg
}

func parseTransferLeg(node *xmlnode.Node) *schema.TransferLeg {
	return &schema.TransferLeg{
		TransferType: node.TextOf("TransferMode"),

		FromRef: parsePlaceRef(node.Child("LegStart")),
		ToRef:   parsePlaceRef(node.Child("LegEnd")),

		Duration:     node.TextOf("Duration"),
		WalkDuration: node.TextOf("WalkDuration"),

		PathGuidance: parsePathGuidance(node.Child("PathGuidance")),
	}
}

func parseContinuousLeg(node *xmlnode.Node) *schema.ContinuousLeg {
	return &schema.ContinuousLeg{
		Mode: node.TextOf("Service/IndividualMode"),

		FromRef: parsePlaceRef(node.Child("LegStart")),
		ToRef:   parsePlaceRef(node.Child("LegEnd")),

		TimeWindowStart: node.TextOf("TimeWindowStart"),
		TimeWindowEnd:   node.TextOf("TimeWindowEnd"),

		Duration: node.TextOf("Duration"),
		LengthM:  node.IntOf("Length"),

		Track:        parseLegTrack(node.Child("LegTrack")),
		PathGuidance: parsePathGuidance(node.Child("PathGuidance")),
	}
}

func parsePlaceRef(node *xmlnode.Node) schema.PlaceRef {
	if node == nil {
		return schema.PlaceRef{}
	}

	ref := schema.PlaceRef{
		StopPointRef: node.TextOf("StopPointRef"),
		StopPlaceRef: node.TextOf("StopPlaceRef"),
		Name:         node.TextOf("LocationName/Text"),
	}

	if positionNode := node.Child("GeoPosition"); positionNode != nil {
		ref.GeoPosition = &schema.GeoPosition{
			Longitude: positionNode.FloatOf("Longitude"),
			Latitude:  positionNode.FloatOf("Latitude"),
		}
	}

	return ref
}

func parseLegTrack(node *xmlnode.Node) *schema.LegTrack {
	if node == nil {
		return nil
	}

	track := &schema.LegTrack{
		Duration: node.TextOf("Duration"),
	}

	for _, sectionNode := range node.ChildrenNamed("TrackSection") {
		track.Sections = append(track.Sections, parseTrackSection(sectionNode))
	}

	return track
}

func parseTrackSection(node *xmlnode.Node) schema.TrackSection {
	section := schema.TrackSection{
		FromRef: parsePlaceRef(node.Child("TrackStart")),
		ToRef:   parsePlaceRef(node.Child("TrackEnd")),

		Duration: node.TextOf("Duration"),
		LengthM:  node.IntOf("Length"),

		RoadName:     node.TextOf("RoadName"),
		GuidanceText: node.TextOf("GuidanceText"),
	}

	if projectionNode := node.Child("LinkProjection"); projectionNode != nil {
		for _, positionNode := range projectionNode.ChildrenNamed("Position") {
			section.Positions = append(section.Positions, schema.GeoPosition{
				Longitude: positionNode.FloatOf("Longitude"),
				Latitude:  positionNode.FloatOf("Latitude"),
			})
		}
	}

	return section
}

func parsePathGuidance(node *xmlnode.Node) *schema.PathGuidance {
	if node == nil {
		return nil
	}

	guidance := &schema.PathGuidance{}

	for _, sectionNode := range node.ChildrenNamed("PathGuidanceSection") {
		section := schema.PathGuidanceSection{
			GuidanceAdvice:  sectionNode.TextOf("GuidanceAdvice"),
			TurnAction:      sectionNode.TextOf("TurnAction"),
			TurnDescription: sectionNode.TextOf("TurnDescription"),
		}

		if trackNode := sectionNode.Child("TrackSection"); trackNode != nil {
			trackSection := parseTrackSection(trackNode)
			section.TrackSection = &trackSection
		}

		guidance.Sections = append(guidance.Sections, section)
	}

	return guidance
}
