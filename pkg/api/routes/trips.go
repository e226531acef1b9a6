package routes

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/geojson"
	"github.com/openjourney/ojp/pkg/journey"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/schema"
	"github.com/openjourney/ojp/pkg/shapes"
)

func TripsRouter(router fiber.Router, ojpClient *client.Client, shapeProvider *shapes.Provider) {
	router.Get("/", func(c *fiber.Ctx) error {
		return searchTrips(c, ojpClient, shapeProvider)
	})
}

func searchTrips(c *fiber.Ctx, ojpClient *client.Client, shapeProvider *shapes.Provider) error {
	origin := c.Query("origin")
	destination := c.Query("destination")

	if origin == "" || destination == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "origin and destination are required",
		})
	}

	at := time.Now()
	if atQuery := c.Query("at"); atQuery != "" {
		parsed, err := time.Parse("2006-01-02T15:04", atQuery)
		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "at must be formatted as 2006-01-02T15:04",
			})
		}
		at = parsed
	}

	configure := func(request *client.TripRequest) {
		if results := c.QueryInt("results"); results > 0 {
			request.SetNumberOfResults(results, 0, 0)
		}
		if modes := c.Query("modes"); modes != "" {
			request.SetModeFilter(strings.Split(modes, ","), nil)
		}
		if individualMode := c.Query("individual_mode"); individualMode != "" {
			request.SetIndividualTransportMode(model.TransportMode(individualMode))
		}
	}

	var response *client.TripsResponse
	var err error

	if viaQuery := c.Query("via"); viaQuery != "" {
		points := []schema.PlaceContext{client.PlaceContextFromInput(origin)}
		for _, via := range strings.Split(viaQuery, "|") {
			points = append(points, client.PlaceContextFromInput(via))
		}
		points = append(points, client.PlaceContextFromInput(destination))

		planner := journey.NewPlanner(ojpClient)
		planner.Configure = configure

		response, err = planner.Plan(c.Context(), points, at)
	} else {
		request := client.NewTripRequest(
			client.PlaceContextFromInput(origin),
			client.PlaceContextFromInput(destination),
			at,
			c.QueryBool("arrival"),
		)
		configure(request)

		response, err = request.Fetch(c.Context(), ojpClient)
	}

	if err != nil {
		return upstreamError(c, err)
	}

	if c.QueryBool("shapes") {
		for _, trip := range response.Trips {
			shapeProvider.Decorate(c.Context(), trip)
		}
	}

	if c.QueryBool("geojson") {
		if len(response.Trips) == 0 {
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": "no trips found",
			})
		}

		return c.JSON(geojson.TripCollection(response.Trips[0]))
	}

	return marshalGroups(c, fiber.Map{
		"trips":    response.Trips,
		"warnings": response.Warnings,
	})
}
