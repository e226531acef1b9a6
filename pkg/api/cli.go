package api

import (
	"github.com/urfave/cli/v2"

	"github.com/openjourney/ojp/pkg/client"
	"github.com/openjourney/ojp/pkg/stages"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the journey-planner web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "Path to a stages configuration file",
					},
					&cli.StringFlag{
						Name:  "stage",
						Usage: "Deployment stage to query",
					},
				},
				Action: func(c *cli.Context) error {
					config, err := stages.Load(c.String("config"))
					if err != nil {
						return err
					}

					ojpClient, err := client.New(config, c.String("stage"))
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), config, ojpClient)
				},
			},
		},
	}
}
