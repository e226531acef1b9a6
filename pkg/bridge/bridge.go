// Package bridge is the single version boundary of the client. The request
// side selects a wire-generation builder from the configured version; the
// response side sniffs each document's generation discriminant and dispatches
// to the matching parser. No package outside this one branches on version.
package bridge

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/openjourney/ojp/pkg/ojpv1"
	"github.com/openjourney/ojp/pkg/ojpv2"
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/xmlnode"
)

type Version string

const (
	V1 Version = "1.0"
	V2 Version = "2.0"
)

func ParseVersion(text string) (Version, error) {
	switch Version(text) {
	case V1:
		return V1, nil
	case V2:
		return V2, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, text)
}

// ErrUnknownSchemaVersion marks a response that matches neither generation's
// discriminant. It is a hard failure; data is never silently dropped.
var ErrUnknownSchemaVersion = errors.New("response matches no known schema generation")

func BuildLocationInformationRequest(version Version, params schema.LocationInformationParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	switch version {
	case V1:
		return ojpv1.BuildLocationInformationRequest(params, timestamp, requestorRef)
	case V2:
		return ojpv2.BuildLocationInformationRequest(params, timestamp, requestorRef)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, version)
}

func BuildTripRequest(version Version, params schema.TripParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	switch version {
	case V1:
		return ojpv1.BuildTripRequest(params, timestamp, requestorRef)
	case V2:
		return ojpv2.BuildTripRequest(params, timestamp, requestorRef)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, version)
}

func BuildStopEventRequest(version Version, params schema.StopEventParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	switch version {
	case V1:
		return ojpv1.BuildStopEventRequest(params, timestamp, requestorRef)
	case V2:
		return ojpv2.BuildStopEventRequest(params, timestamp, requestorRef)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, version)
}

func BuildTripInfoRequest(version Version, params schema.TripInfoParams, timestamp time.Time, requestorRef string) ([]byte, error) {
	switch version {
	case V1:
		return ojpv1.BuildTripInfoRequest(params, timestamp, requestorRef)
	case V2:
		return ojpv2.BuildTripInfoRequest(params, timestamp, requestorRef)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownSchemaVersion, version)
}

// ParseLocationInformationDelivery normalizes a location response of either
// generation. Legacy documents wrap results in Location elements, current
// ones in PlaceResult.
func ParseLocationInformationDelivery(body []byte) (*schema.LocationInformationDelivery, error) {
	document, deliveryNode, err := findDelivery(body, "OJPLocationInformationDelivery")
	if err != nil {
		return nil, err
	}

	switch {
	case hasDescendant(deliveryNode, "PlaceResult"):
		delivery, found, err := ojpv2.ParseLocationInformationDelivery(body)
		if err != nil {
			return nil, fmt.Errorf("parsing location delivery: %w", err)
		}
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	case hasDescendant(deliveryNode, "Location"):
		delivery, found := ojpv1.ParseLocationInformationDelivery(document)
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	case len(deliveryNode.Children) <= deliveryHeaderChildren(deliveryNode):
		// A delivery with only header elements is a valid empty result.
		return &schema.LocationInformationDelivery{}, nil
	}

	return nil, ErrUnknownSchemaVersion
}

func ParseTripDelivery(body []byte) (*schema.TripDelivery, error) {
	document, deliveryNode, err := findDelivery(body, "OJPTripDelivery")
	if err != nil {
		return nil, err
	}

	switch {
	case hasDescendant(deliveryNode, "TripLeg"):
		delivery, found := ojpv1.ParseTripDelivery(document)
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	case hasDescendant(deliveryNode, "Leg"):
		delivery, found, err := ojpv2.ParseTripDelivery(body)
		if err != nil {
			return nil, fmt.Errorf("parsing trip delivery: %w", err)
		}
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	case deliveryNode.Child("TripResult") == nil:
		return &schema.TripDelivery{}, nil
	}

	return nil, ErrUnknownSchemaVersion
}

func ParseStopEventDelivery(body []byte) (*schema.StopEventDelivery, error) {
	document, deliveryNode, err := findDelivery(body, "OJPStopEventDelivery")
	if err != nil {
		return nil, err
	}

	switch {
	case hasDescendant(deliveryNode, "PublishedLineName"):
		delivery, found := ojpv1.ParseStopEventDelivery(document)
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	case hasDescendant(deliveryNode, "PublishedServiceName"), hasDescendant(deliveryNode, "StopEventResult"):
		delivery, found, err := ojpv2.ParseStopEventDelivery(body)
		if err != nil {
			return nil, fmt.Errorf("parsing stop event delivery: %w", err)
		}
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	case len(deliveryNode.Children) <= deliveryHeaderChildren(deliveryNode):
		return &schema.StopEventDelivery{}, nil
	}

	return nil, ErrUnknownSchemaVersion
}

func ParseTripInfoDelivery(body []byte) (*schema.TripInfoDelivery, error) {
	document, deliveryNode, err := findDelivery(body, "OJPTripInfoDelivery")
	if err != nil {
		return nil, err
	}

	if deliveryNode.Child("TripInfoResult") == nil {
		if len(deliveryNode.Children) <= deliveryHeaderChildren(deliveryNode) {
			return &schema.TripInfoDelivery{}, nil
		}

		return nil, ErrUnknownSchemaVersion
	}

	// The legacy trip-info service block carries its mode as flat text; the
	// current generation nests a PtMode element.
	if hasDescendant(deliveryNode, "PtMode") {
		delivery, found, err := ojpv2.ParseTripInfoDelivery(body)
		if err != nil {
			return nil, fmt.Errorf("parsing trip info delivery: %w", err)
		}
		if !found {
			return nil, ErrUnknownSchemaVersion
		}
		return delivery, nil
	}

	delivery, found := ojpv1.ParseTripInfoDelivery(document)
	if !found {
		return nil, ErrUnknownSchemaVersion
	}

	return delivery, nil
}

func findDelivery(body []byte, deliveryName string) (*xmlnode.Node, *xmlnode.Node, error) {
	document, err := xmlnode.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing response document: %w", err)
	}

	deliveryNode := document.Find("OJPResponse/ServiceDelivery/" + deliveryName)
	if deliveryNode == nil {
		return nil, nil, ErrUnknownSchemaVersion
	}

	return document, deliveryNode, nil
}

func hasDescendant(node *xmlnode.Node, name string) bool {
	for _, child := range node.Children {
		if child.Name == name || hasDescendant(child, name) {
			return true
		}
	}

	return false
}

func deliveryHeaderChildren(node *xmlnode.Node) int {
	count := 0
	for _, child := range node.Children {
		switch child.Name {
		case "ResponseTimestamp", "Status", "DefaultLanguage", "CalcTime":
			count++
		}
	}

	return count
}
