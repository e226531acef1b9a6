package ojpv1

import (
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/xmlnode"
)

// The legacy generation carries two near-identical service shapes: trip
// deliveries publish the line name under PublishedLineName with the mode in a
// Mode block, trip-info deliveries use PublishedServiceName with a flat mode
// element. Both normalize into the one canonical schema.Service here so the
// model layer only ever sees a single shape.

func normalizeTripService(node *xmlnode.Node) schema.Service {
	service := normalizeCommonService(node)

	service.PublishedServiceName = node.TextOf("PublishedLineName/Text")
	service.Mode = node.TextOf("Mode/PtMode")
	service.SubMode = firstNonEmpty(
		node.TextOf("Mode/RailSubmode"),
		node.TextOf("Mode/BusSubmode"),
		node.TextOf("Mode/TramSubmode"),
		node.TextOf("Mode/WaterSubmode"),
	)

	return service
}

func normalizeTripInfoService(node *xmlnode.Node) schema.Service {
	service := normalizeCommonService(node)

	service.PublishedServiceName = node.TextOf("PublishedServiceName/Text")
	service.Mode = node.TextOf("Mode")
	service.SubMode = node.TextOf("Submode")

	return service
}

func normalizeCommonService(node *xmlnode.Node) schema.Service {
	service := schema.Service{
		OperatingDayRef: node.TextOf("OperatingDayRef"),
		JourneyRef:      node.TextOf("JourneyRef"),
		LineRef:         node.TextOf("LineRef"),
		DirectionRef:    node.TextOf("DirectionRef"),

		TrainNumber: node.TextOf("TrainNumber"),
		OperatorRef: node.TextOf("OperatorRef"),

		OriginText:      node.TextOf("OriginText/Text"),
		DestinationText: node.TextOf("DestinationText/Text"),
		DestinationRef:  node.TextOf("DestinationStopPointRef"),

		Unplanned: node.BoolOf("Unplanned"),
		Cancelled: node.BoolOf("Cancelled"),
		Deviation: node.BoolOf("Deviation"),
	}

	for _, attributeNode := range node.ChildrenNamed("Attribute") {
		service.Attributes = append(service.Attributes, schema.ServiceAttribute{
			Code: attributeNode.TextOf("Code"),
			Text: attributeNode.TextOf("Text/Text"),
		})
	}

	for _, situationRefNode := range node.ChildrenNamed("SituationFullRef") {
		if number := situationRefNode.TextOf("SituationNumber"); number != "" {
			service.SituationRefs = append(service.SituationRefs, number)
		}
	}

	return service
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
