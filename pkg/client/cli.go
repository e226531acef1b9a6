package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/openjourney/ojp/pkg/geojson"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/stages"
)

var commonFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "Path to a stages configuration file",
	},
	&cli.StringFlag{
		Name:  "stage",
		Usage: "Deployment stage to query",
	},
	&cli.BoolFlag{
		Name:  "dump",
		Usage: "Pretty-print the full domain objects instead of the summary",
	},
}

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "query",
		Usage: "Query an Open Journey Planner service",
		Subcommands: []*cli.Command{
			locationsCommand(),
			tripsCommand(),
			departuresCommand(),
			tripInfoCommand(),
		},
	}
}

func clientFromContext(c *cli.Context) (*Client, error) {
	config, err := stages.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	stageName := c.String("stage")
	if stageName == "" {
		stageName = config.DefaultStage
	}

	return New(config, stageName)
}

func locationsCommand() *cli.Command {
	return &cli.Command{
		Name:      "locations",
		Usage:     "Search places by name",
		ArgsUsage: "<search text>",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "results",
				Usage: "Maximum number of results",
				Value: 10,
			},
			&cli.StringSliceFlag{
				Name:  "type",
				Usage: "Restrict to place types (stop, address, poi, topographicPlace)",
			},
			&cli.BoolFlag{
				Name:  "geojson",
				Usage: "Print the results as a GeoJSON feature collection",
			},
		}, commonFlags...),
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("search text required")
			}

			ojpClient, err := clientFromContext(c)
			if err != nil {
				return err
			}

			request := NewLocationInformationRequest(c.Args().First()).
				SetNumberOfResults(c.Int("results")).
				SetPlaceTypes(c.StringSlice("type")...)

			response, err := request.Fetch(context.Background(), ojpClient)
			if err != nil {
				return err
			}

			reportWarnings(response.Warnings)

			if c.Bool("geojson") {
				return printJSON(geojson.PlaceCollection(response.Places))
			}

			if c.Bool("dump") {
				pretty.Println(response.Places)
				return nil
			}

			for _, place := range response.Places {
				fmt.Printf("%-18s %-40s %s\n", place.Type, place.Name, place.GeoPosition.AsLonLatString())
			}

			return nil
		},
	}
}

func tripsCommand() *cli.Command {
	return &cli.Command{
		Name:      "trips",
		Usage:     "Search journeys between two places",
		ArgsUsage: "<origin> <destination>",
		Flags: append([]cli.Flag{
			&cli.TimestampFlag{
				Name:   "at",
				Usage:  "Departure (or arrival) time",
				Layout: "2006-01-02T15:04",
			},
			&cli.BoolFlag{
				Name:  "arrival",
				Usage: "Treat the time as the requested arrival",
			},
			&cli.IntFlag{
				Name:  "results",
				Usage: "Number of trip alternatives",
				Value: 5,
			},
			&cli.StringSliceFlag{
				Name:  "mode",
				Usage: "Restrict to public-transport modes",
			},
			&cli.StringFlag{
				Name:  "individual-mode",
				Usage: "Monomodal search with an individual mode (walk, cycle, self-drive-car, ...)",
			},
			&cli.BoolFlag{
				Name:  "geojson",
				Usage: "Print the first trip as a GeoJSON feature collection",
			},
		}, commonFlags...),
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return fmt.Errorf("origin and destination required")
			}

			ojpClient, err := clientFromContext(c)
			if err != nil {
				return err
			}

			at := time.Now()
			if timestamp := c.Timestamp("at"); timestamp != nil {
				at = *timestamp
			}

			request := NewTripRequest(
				PlaceContextFromInput(c.Args().Get(0)),
				PlaceContextFromInput(c.Args().Get(1)),
				at,
				c.Bool("arrival"),
			)
			request.SetNumberOfResults(c.Int("results"), 0, 0)
			request.SetModeFilter(c.StringSlice("mode"), nil)

			if mode := c.String("individual-mode"); mode != "" {
				request.SetIndividualTransportMode(model.TransportMode(mode))
			}

			response, err := request.Fetch(context.Background(), ojpClient)
			if err != nil {
				return err
			}

			reportWarnings(response.Warnings)

			if c.Bool("geojson") {
				if len(response.Trips) == 0 {
					return ErrNoResults
				}

				return printJSON(geojson.TripCollection(response.Trips[0]))
			}

			if c.Bool("dump") {
				pretty.Println(response.Trips)
				return nil
			}

			for _, trip := range response.Trips {
				printTripSummary(trip)
			}

			return nil
		},
	}
}

func departuresCommand() *cli.Command {
	return &cli.Command{
		Name:      "departures",
		Usage:     "Show the departure board of a stop",
		ArgsUsage: "<stop ref>",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "results",
				Usage: "Number of board entries",
				Value: 10,
			},
			&cli.BoolFlag{
				Name:  "arrivals",
				Usage: "Show arrivals instead of departures",
			},
			&cli.DurationFlag{
				Name:  "watch",
				Usage: "Refresh the board at this interval until interrupted",
			},
		}, commonFlags...),
		Action: func(c *cli.Context) error {
			if c.Args().Len() == 0 {
				return fmt.Errorf("stop ref required")
			}

			ojpClient, err := clientFromContext(c)
			if err != nil {
				return err
			}

			eventType := "departure"
			if c.Bool("arrivals") {
				eventType = "arrival"
			}

			fetchBoard := func() error {
				request := NewStopEventRequest(c.Args().First(), time.Now()).
					SetNumberOfResults(c.Int("results")).
					SetStopEventType(eventType)

				response, err := request.Fetch(context.Background(), ojpClient)
				if err != nil {
					return err
				}

				reportWarnings(response.Warnings)

				if c.Bool("dump") {
					pretty.Println(response.Results)
					return nil
				}

				for _, result := range response.Results {
					printBoardEntry(result)
				}

				return nil
			}

			interval := c.Duration("watch")
			if interval == 0 {
				return fetchBoard()
			}

			// Transient failures back off exponentially; a successful
			// refresh resets to the regular interval.
			policy := backoff.NewExponentialBackOff()
			policy.InitialInterval = interval
			policy.MaxElapsedTime = 0

			for {
				if err := fetchBoard(); err != nil {
					if ClassifyFailure(err) != FailureNetwork {
						return err
					}

					wait := policy.NextBackOff()
					log.Warn().Err(err).Dur("retry_in", wait).Msg("Board refresh failed")
					time.Sleep(wait)
					continue
				}

				policy.Reset()
				time.Sleep(interval)
			}
		},
	}
}

func tripInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "trip-info",
		Usage:     "Show the full call sequence of a dated journey",
		ArgsUsage: "<journey ref> <operating day>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "track",
				Usage: "Include the track projection",
			},
		}, commonFlags...),
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return fmt.Errorf("journey ref and operating day required")
			}

			ojpClient, err := clientFromContext(c)
			if err != nil {
				return err
			}

			request := NewTripInfoRequest(c.Args().Get(0), c.Args().Get(1)).
				SetIncludeTrackProjection(c.Bool("track"))

			response, err := request.Fetch(context.Background(), ojpClient)
			if err != nil {
				return err
			}

			reportWarnings(response.Warnings)

			if c.Bool("dump") {
				pretty.Println(response.Result)
				return nil
			}

			if response.Result.Service != nil {
				fmt.Println(response.Result.Service.FormatServiceName())
			}
			for _, call := range response.Result.Calls {
				fmt.Printf("%-8s %-8s %s\n", call.Arrival.Format(), call.Departure.Format(), call.StopPointName)
			}

			return nil
		},
	}
}

func printTripSummary(trip *model.Trip) {
	start := ""
	if trip.StartDateTime != nil {
		start = trip.StartDateTime.Format("15:04")
	}
	end := ""
	if trip.EndDateTime != nil {
		end = trip.EndDateTime.Format("15:04")
	}

	fmt.Printf("%s - %s  %s  %s  %d transfers\n", start, end, trip.Duration.Format(), trip.Distance.Format(), trip.Transfers)

	for _, leg := range trip.Legs {
		if timed, ok := leg.(*model.TimedLeg); ok && timed.Service != nil {
			fmt.Printf("    %s\n", timed.Service.FormatServiceName())
		}
	}
}

func printBoardEntry(result *model.StopEventResult) {
	if result.ThisCall == nil {
		return
	}

	name := ""
	if result.Service != nil {
		name = result.Service.FormatServiceName()
	}

	fmt.Printf("%-8s %-6s %s\n", result.ThisCall.Departure.Format(), result.ThisCall.Departure.DelayText(), name)
}

func reportWarnings(warnings []model.Warning) {
	for _, warning := range warnings {
		log.Debug().Str("kind", string(warning.Kind)).Str("ref", warning.Ref).Msg("Delivery resolution warning")
	}
}

func printJSON(value any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}
