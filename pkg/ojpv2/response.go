// Package ojpv2 implements the current wire generation. Responses are
// regular enough to unmarshal straight into tagged structs; no node
// navigation is needed.
package ojpv2

import (
	"bytes"
	"encoding/xml"

	"golang.org/x/net/html/charset"

	"github.com/openjourney/ojp/pkg/schema"
)

type responseEnvelope struct {
	XMLName xml.Name `xml:"OJP"`

	LocationDelivery  *locationDelivery  `xml:"OJPResponse>ServiceDelivery>OJPLocationInformationDelivery"`
	TripDelivery      *tripDelivery      `xml:"OJPResponse>ServiceDelivery>OJPTripDelivery"`
	StopEventDelivery *stopEventDelivery `xml:"OJPResponse>ServiceDelivery>OJPStopEventDelivery"`
	TripInfoDelivery  *tripInfoDelivery  `xml:"OJPResponse>ServiceDelivery>OJPTripInfoDelivery"`
}

func decodeEnvelope(body []byte) (*responseEnvelope, error) {
	decoder := xml.NewDecoder(bytes.NewReader(body))
	decoder.CharsetReader = charset.NewReaderLabel

	var envelope responseEnvelope
	if err := decoder.Decode(&envelope); err != nil {
		return nil, err
	}

	return &envelope, nil
}

type locationDelivery struct {
	PlaceResults []placeResult `xml:"PlaceResult"`
}

type placeResult struct {
	Place       place   `xml:"Place"`
	Complete    bool    `xml:"Complete"`
	Probability float64 `xml:"Probability"`
}

type place struct {
	Name        textElement  `xml:"Name"`
	GeoPosition *geoPosition `xml:"GeoPosition"`

	StopPlace        *stopPlace        `xml:"StopPlace"`
	StopPoint        *stopPoint        `xml:"StopPoint"`
	Address          *address          `xml:"Address"`
	PointOfInterest  *pointOfInterest  `xml:"PointOfInterest"`
	TopographicPlace *topographicPlace `xml:"TopographicPlace"`

	Modes []mode `xml:"Mode"`
}

type textElement struct {
	Text string `xml:"Text"`
}

type geoPosition struct {
	Longitude float64 `xml:"Longitude"`
	Latitude  float64 `xml:"Latitude"`
}

type stopPlace struct {
	StopPlaceRef  string      `xml:"StopPlaceRef"`
	StopPlaceName textElement `xml:"StopPlaceName"`
}

type stopPoint struct {
	StopPointRef  string      `xml:"StopPointRef"`
	StopPointName textElement `xml:"StopPointName"`
}

type address struct {
	PublicCode  string      `xml:"PublicCode"`
	Name        textElement `xml:"Name"`
	PostCode    string      `xml:"PostCode"`
	Street      string      `xml:"Street"`
	HouseNumber string      `xml:"HouseNumber"`
}

type pointOfInterest struct {
	PublicCode string      `xml:"PublicCode"`
	Name       textElement `xml:"Name"`

	Categories []poiCategory `xml:"PointOfInterestCategory"`
}

type poiCategory struct {
	OsmTag struct {
		Tag   string `xml:"Tag"`
		Value string `xml:"Value"`
	} `xml:"OsmTag"`
}

type topographicPlace struct {
	TopographicPlaceCode string      `xml:"TopographicPlaceCode"`
	TopographicPlaceName textElement `xml:"TopographicPlaceName"`
}

type mode struct {
	PtMode string `xml:"PtMode"`

	RailSubmode  string `xml:"RailSubmode"`
	BusSubmode   string `xml:"BusSubmode"`
	TramSubmode  string `xml:"TramSubmode"`
	WaterSubmode string `xml:"WaterSubmode"`
}

// ParseLocationInformationDelivery reports false when the document carries no
// current-generation location delivery; the PlaceResult wrapper is the
// generation discriminant.
func ParseLocationInformationDelivery(body []byte) (*schema.LocationInformationDelivery, bool, error) {
	envelope, err := decodeEnvelope(body)
	if err != nil {
		return nil, false, err
	}

	if envelope.LocationDelivery == nil || len(envelope.LocationDelivery.PlaceResults) == 0 {
		return nil, false, nil
	}

	delivery := &schema.LocationInformationDelivery{}
	for _, result := range envelope.LocationDelivery.PlaceResults {
		delivery.Places = append(delivery.Places, schema.PlaceResult{
			Place:       convertPlace(result.Place),
			Complete:    result.Complete,
			Probability: result.Probability,
		})
	}

	return delivery, true, nil
}

func convertPlace(source place) schema.Place {
	converted := schema.Place{
		Name: source.Name.Text,
	}

	if source.GeoPosition != nil {
		converted.GeoPosition = &schema.GeoPosition{
			Longitude: source.GeoPosition.Longitude,
			Latitude:  source.GeoPosition.Latitude,
		}
	}

	if source.StopPlace != nil {
		converted.StopPlace = &schema.StopPlace{
			StopPlaceRef:  source.StopPlace.StopPlaceRef,
			StopPlaceName: source.StopPlace.StopPlaceName.Text,
		}
	}

	if source.StopPoint != nil {
		converted.StopPoint = &schema.StopPoint{
			StopPointRef:  source.StopPoint.StopPointRef,
			StopPointName: source.StopPoint.StopPointName.Text,
		}
	}

	if source.Address != nil {
		converted.Address = &schema.Address{
			AddressCode: source.Address.PublicCode,
			AddressName: source.Address.Name.Text,
			PostCode:    source.Address.PostCode,
			Street:      source.Address.Street,
			HouseNumber: source.Address.HouseNumber,
		}
	}

	if source.PointOfInterest != nil {
		poi := &schema.PointOfInterest{
			PointOfInterestCode: source.PointOfInterest.PublicCode,
			PointOfInterestName: source.PointOfInterest.Name.Text,
		}
		for _, category := range source.PointOfInterest.Categories {
			poi.Categories = append(poi.Categories, schema.PointOfInterestCategory{
				OsmTagKey:   category.OsmTag.Tag,
				OsmTagValue: category.OsmTag.Value,
			})
		}
		converted.PointOfInterest = poi
	}

	if source.TopographicPlace != nil {
		converted.TopographicPlace = &schema.TopographicPlace{
			TopographicPlaceCode: source.TopographicPlace.TopographicPlaceCode,
			TopographicPlaceName: source.TopographicPlace.TopographicPlaceName.Text,
		}
	}

	for _, placeMode := range source.Modes {
		if placeMode.PtMode != "" {
			converted.Mode = append(converted.Mode, placeMode.PtMode)
		}
	}

	return converted
}
