package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openjourney/ojp/pkg/client"
)

func TripInfoRouter(router fiber.Router, ojpClient *client.Client) {
	router.Get("/:journey", func(c *fiber.Ctx) error {
		return getTripInfo(c, ojpClient)
	})
}

func getTripInfo(c *fiber.Ctx, ojpClient *client.Client) error {
	journeyRef := c.Params("journey")
	operatingDay := c.Query("day")

	request := client.NewTripInfoRequest(journeyRef, operatingDay).
		SetIncludeTrackProjection(c.QueryBool("track"))

	response, err := request.Fetch(c.Context(), ojpClient)
	if err != nil {
		return upstreamError(c, err)
	}

	return marshalGroups(c, fiber.Map{
		"result":   response.Result,
		"warnings": response.Warnings,
	})
}
