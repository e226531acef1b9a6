package routes

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/geojson"
)

func LocationsRouter(router fiber.Router, ojpClient *client.Client) {
	router.Get("/", func(c *fiber.Ctx) error {
		return listLocations(c, ojpClient)
	})
}

func listLocations(c *fiber.Ctx, ojpClient *client.Client) error {
	searchText := c.Query("q")
	boundsQuery := c.Query("bounds")

	if searchText == "" && boundsQuery == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "A q or bounds filter must be applied to the request",
		})
	}

	var request *client.LocationInformationRequest

	if boundsQuery != "" {
		boundsQuerySplit := strings.Split(boundsQuery, ",")
		if len(boundsQuerySplit) != 4 {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Bounds must contain 4 co-ordinates",
			})
		}

		bottomLeftLon, _ := strconv.ParseFloat(boundsQuerySplit[0], 64)
		bottomLeftLat, _ := strconv.ParseFloat(boundsQuerySplit[1], 64)
		topRightLon, _ := strconv.ParseFloat(boundsQuerySplit[2], 64)
		topRightLat, _ := strconv.ParseFloat(boundsQuerySplit[3], 64)

		bbox := geo.NewBBox(
			geo.NewPosition(bottomLeftLon, bottomLeftLat),
			geo.NewPosition(topRightLon, topRightLat),
		)

		request = client.NewLocationInformationRequestForBBox(bbox)
	} else {
		request = client.NewLocationInformationRequest(searchText)
	}

	if results := c.QueryInt("results"); results > 0 {
		request.SetNumberOfResults(results)
	}
	if placeTypes := c.Query("types"); placeTypes != "" {
		request.SetPlaceTypes(strings.Split(placeTypes, ",")...)
	}

	response, err := request.Fetch(c.Context(), ojpClient)
	if err != nil {
		return upstreamError(c, err)
	}

	if c.QueryBool("geojson") {
		return c.JSON(geojson.PlaceCollection(response.Places))
	}

	return marshalGroups(c, fiber.Map{
		"places":   response.Places,
		"warnings": response.Warnings,
	})
}
