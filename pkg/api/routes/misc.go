package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"

	"github.com/openjourney/ojp/pkg/client"
)

// marshalGroups reduces a domain object to the serialization groups the
// caller asked for. Detailed views include track geometry and resolved
// places; the basic view is the lean list representation.
func marshalGroups(c *fiber.Ctx, value interface{}) error {
	groups := []string{"basic"}
	if c.QueryBool("detailed") {
		groups = append(groups, "detailed")
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: groups,
	}, value)
	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Could not reduce response object",
		})
	}

	return c.JSON(reduced)
}

// upstreamError maps a client failure onto an HTTP status.
func upstreamError(c *fiber.Ctx, err error) error {
	switch client.ClassifyFailure(err) {
	case client.FailureNoResults:
		c.SendStatus(fiber.StatusNotFound)
	case client.FailureNetwork:
		c.SendStatus(fiber.StatusBadGateway)
	case client.FailureMalformed:
		c.SendStatus(fiber.StatusBadGateway)
	default:
		c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{
		"error": err.Error(),
	})
}
