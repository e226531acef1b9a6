package routes

import (
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/model"
)

func DeparturesRouter(router fiber.Router, ojpClient *client.Client) {
	router.Get("/", func(c *fiber.Ctx) error {
		return getDepartures(c, ojpClient)
	})
}

// getDepartures builds one merged board over every requested stop. The
// per-stop requests fan out concurrently; the merged board is ordered by
// best-known departure time.
func getDepartures(c *fiber.Ctx, ojpClient *client.Client) error {
	stopsQuery := c.Query("stops")
	if stopsQuery == "" {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "stops is required",
		})
	}

	stopRefs := strings.Split(stopsQuery, ",")

	count := c.QueryInt("count")
	if count <= 0 {
		count = 10
	}

	eventType := "departure"
	if c.QueryBool("arrivals") {
		eventType = "arrival"
	}

	requestContext := c.Context()
	now := time.Now()

	p := pool.NewWithResults[*client.StopEventsResponse]().WithErrors()

	for _, stopRef := range stopRefs {
		stopRef := strings.TrimSpace(stopRef)

		p.Go(func() (*client.StopEventsResponse, error) {
			request := client.NewStopEventRequest(stopRef, now).
				SetNumberOfResults(count).
				SetStopEventType(eventType)

			return request.Fetch(requestContext, ojpClient)
		})
	}

	responses, err := p.Wait()
	if err != nil {
		return upstreamError(c, err)
	}

	var results []*model.StopEventResult
	var warnings []model.Warning
	for _, response := range responses {
		results = append(results, response.Results...)
		warnings = append(warnings, response.Warnings...)
	}

	sort.SliceStable(results, func(a, b int) bool {
		timeA := bestBoardTime(results[a])
		timeB := bestBoardTime(results[b])

		if timeA == nil {
			return false
		}
		if timeB == nil {
			return true
		}

		return timeA.Before(*timeB)
	})

	if len(results) > count {
		results = results[:count]
	}

	return marshalGroups(c, fiber.Map{
		"events":   results,
		"warnings": warnings,
	})
}

func bestBoardTime(result *model.StopEventResult) *time.Time {
	if result.ThisCall == nil {
		return nil
	}

	if departure := result.ThisCall.Departure.Best(); departure != nil {
		return departure
	}

	return result.ThisCall.Arrival.Best()
}
