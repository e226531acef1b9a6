// Package api exposes the journey-planner client as a small JSON web API.
package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openjourney/ojp/pkg/api/routes"
	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/shapes"
	"github.com/openjourney/ojp/pkg/stages"
)

func SetupServer(listen string, config *stages.Config, ojpClient *client.Client) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/ojp")

	group.Get("version", routes.APIVersion)

	shapeProvider := shapes.NewProvider(config.Shapes)

	routes.LocationsRouter(group.Group("/locations"), ojpClient)
	routes.TripsRouter(group.Group("/trips"), ojpClient, shapeProvider)
	routes.DeparturesRouter(group.Group("/departures"), ojpClient)
	routes.TripInfoRouter(group.Group("/trip-info"), ojpClient)

	return webApp.Listen(listen)
}
