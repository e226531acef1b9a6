package ojpv1

import (
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/xmlnode"
)

// The legacy generation wraps each location result in an ojp:Location element
// that itself contains an ojp:Location place block. The presence of that
// wrapper is the generation discriminant the bridge checks.

// ParseLocationInformationDelivery returns the normalized delivery and
// whether the document carried a legacy-shaped one at all.
func ParseLocationInformationDelivery(document *xmlnode.Node) (*schema.LocationInformationDelivery, bool) {
	deliveryNode := document.Find("OJPResponse/ServiceDelivery/OJPLocationInformationDelivery")
	if deliveryNode == nil {
		return nil, false
	}

	wrappers := deliveryNode.ChildrenNamed("Location")
	if len(wrappers) == 0 && deliveryNode.Child("PlaceResult") != nil {
		// Current-generation document, not ours.
		return nil, false
	}

	delivery := &schema.LocationInformationDelivery{}

	for _, wrapper := range wrappers {
		placeNode := wrapper.Child("Location")
		if placeNode == nil {
			continue
		}

		delivery.Places = append(delivery.Places, schema.PlaceResult{
			Place:       parsePlace(placeNode),
			Complete:    wrapper.BoolOf("Complete"),
			Probability: wrapper.FloatOf("Probability"),
		})
	}

	return delivery, true
}

func parsePlace(node *xmlnode.Node) schema.Place {
	place := schema.Place{
		Name: node.TextOf("LocationName/Text"),
	}

	if positionNode := node.Child("GeoPosition"); positionNode != nil {
		place.GeoPosition = &schema.GeoPosition{
			Longitude: positionNode.FloatOf("Longitude"),
			Latitude:  positionNode.FloatOf("Latitude"),
		}
	}

	if stopPlaceNode := node.Child("StopPlace"); stopPlaceNode != nil {
		place.StopPlace = &schema.StopPlace{
			StopPlaceRef:  stopPlaceNode.TextOf("StopPlaceRef"),
			StopPlaceName: stopPlaceNode.TextOf("StopPlaceName/Text"),
		}
	}

	if stopPointNode := node.Child("StopPoint"); stopPointNode != nil {
		place.StopPoint = &schema.StopPoint{
			StopPointRef:  stopPointNode.TextOf("StopPointRef"),
			StopPointName: stopPointNode.TextOf("StopPointName/Text"),
		}
	}

	if addressNode := node.Child("Address"); addressNode != nil {
		place.Address = &schema.Address{
			AddressCode: addressNode.TextOf("AddressCode"),
			AddressName: addressNode.TextOf("AddressName/Text"),
			PostCode:    addressNode.TextOf("PostCode"),
			Street:      addressNode.TextOf("Street"),
			HouseNumber: addressNode.TextOf("HouseNumber"),
		}
	}

	if poiNode := node.Child("PointOfInterest"); poiNode != nil {
		poi := &schema.PointOfInterest{
			PointOfInterestCode: poiNode.TextOf("PointOfInterestCode"),
			PointOfInterestName: poiNode.TextOf("PointOfInterestName/Text"),
		}
		for _, categoryNode := range poiNode.ChildrenNamed("PointOfInterestCategory") {
			poi.Categories = append(poi.Categories, schema.PointOfInterestCategory{
				OsmTagKey:   categoryNode.TextOf("OsmTag/Tag"),
				OsmTagValue: categoryNode.TextOf("OsmTag/Value"),
			})
		}
		place.PointOfInterest = poi
	}

	if topographicNode := node.Child("TopographicPlace"); topographicNode != nil {
		place.TopographicPlace = &schema.TopographicPlace{
			TopographicPlaceCode: topographicNode.TextOf("TopographicPlaceCode"),
			TopographicPlaceName: topographicNode.TextOf("TopographicPlaceName/Text"),
		}
	}

	for _, modeNode := range node.ChildrenNamed("Mode") {
		if ptMode := modeNode.TextOf("PtMode"); ptMode != "" {
			place.Mode = append(place.Mode, ptMode)
		}
	}

	return place
}

func parseResponseContext(contextNode *xmlnode.Node) ([]schema.Place, []schema.Situation) {
	if contextNode == nil {
		return nil, nil
	}

	var places []schema.Place
	if placesNode := contextNode.Child("Places"); placesNode != nil {
		for _, placeNode := range placesNode.ChildrenNamed("Location") {
			places = append(places, parsePlace(placeNode))
		}
	}

	var situations []schema.Situation
	if situationsNode := contextNode.Child("Situations"); situationsNode != nil {
		for _, situationNode := range situationsNode.ChildrenNamed("PtSituation") {
			situations = append(situations, parseSituation(situationNode))
		}
	}

	return places, situations
}

func parseSituation(node *xmlnode.Node) schema.Situation {
	situation := schema.Situation{
		SituationNumber: node.TextOf("SituationNumber"),
		Summary:         node.TextOf("Summary"),
		Priority:        node.IntOf("Priority"),
		ValidFrom:       node.TextOf("ValidityPeriod/StartTime"),
		ValidTo:         node.TextOf("ValidityPeriod/EndTime"),
	}

	for _, descriptionNode := range node.ChildrenNamed("Description") {
		situation.Descriptions = append(situation.Descriptions, descriptionNode.Text())
	}
	for _, detailNode := range node.ChildrenNamed("Detail") {
		situation.Details = append(situation.Details, detailNode.Text())
	}

	return situation
}

func parseCallAtStop(node *xmlnode.Node) schema.CallAtStop {
	return schema.CallAtStop{
		StopPointRef:  node.TextOf("StopPointRef"),
		StopPointName: node.TextOf("StopPointName/Text"),

		PlannedQuay:   node.TextOf("PlannedQuay/Text"),
		EstimatedQuay: node.TextOf("EstimatedQuay/Text"),

		PlannedArrival:     node.TextOf("ServiceArrival/TimetabledTime"),
		EstimatedArrival:   node.TextOf("ServiceArrival/EstimatedTime"),
		PlannedDeparture:   node.TextOf("ServiceDeparture/TimetabledTime"),
		EstimatedDeparture: node.TextOf("ServiceDeparture/EstimatedTime"),

		Order: node.IntOf("Order"),

		RequestStop:       node.BoolOf("RequestStop"),
		UnplannedStop:     node.BoolOf("UnplannedStop"),
		NotServicedStop:   node.BoolOf("NotServicedStop"),
		NoBoardingAtStop:  node.BoolOf("NoBoardingAtStop"),
		NoAlightingAtStop: node.BoolOf("NoAlightingAtStop"),

		NotWheelchairAccessible: node.BoolOf("NotWheelchairAccessible"),

		Occupancy: parseOccupancy(node),
	}
}

func parseOccupancy(node *xmlnode.Node) []schema.FareClassOccupancy {
	var occupancies []schema.FareClassOccupancy

	for _, occupancyNode := range node.ChildrenNamed("ExpectedOccupancy") {
		occupancies = append(occupancies, schema.FareClassOccupancy{
			FareClass: occupancyNode.TextOf("FareClass"),
			Level:     occupancyNode.TextOf("OccupancyLevel"),
		})
	}

	return occupancies
}
