// Package stages holds the deployment-stage configuration: which OJP
// endpoint a client talks to, with what token and schema generation, plus the
// shape-provider endpoint for leg geometry. Configuration is an explicit
// object built once at process start and passed to every client; nothing
// reads ambient globals to decide version or endpoint.
package stages

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openjourney/ojp/pkg/util"
)

type Stage struct {
	Name string `yaml:"name"`

	URL           string `yaml:"url"`
	Authorization string `yaml:"authorization"`
	RequestorRef  string `yaml:"requestorRef"`

	// Wire-schema generation, "1.0" or "2.0".
	Version string `yaml:"version"`
}

type ShapeProvider struct {
	URL           string `yaml:"url"`
	Authorization string `yaml:"authorization"`
}

type Config struct {
	DefaultStage string           `yaml:"defaultStage"`
	Stages       map[string]Stage `yaml:"stages"`

	Shapes ShapeProvider `yaml:"shapes"`

	// Optional redis address for the response cache; empty keeps the cache
	// in-process.
	RedisAddress  string `yaml:"redisAddress"`
	RedisPassword string `yaml:"redisPassword"`

	Language string `yaml:"language"`
}

var ErrUnknownStage = errors.New("no such stage")

// DefaultConfig carries the built-in public deployment endpoints.
func DefaultConfig() *Config {
	return &Config{
		DefaultStage: "prod",
		Stages: map[string]Stage{
			"prod": {
				Name:         "prod",
				URL:          "https://api.opentransportdata.swiss/ojp2020",
				RequestorRef: "OJP_GO_PROD",
				Version:      "1.0",
			},
			"int": {
				Name:         "int",
				URL:          "https://odpch-api.clients.liip.ch/ojp-int",
				RequestorRef: "OJP_GO_INT",
				Version:      "1.0",
			},
			"v2-prod": {
				Name:         "v2-prod",
				URL:          "https://api.opentransportdata.swiss/ojp20",
				RequestorRef: "OJP_GO_V2",
				Version:      "2.0",
			},
			"v2-test": {
				Name:         "v2-test",
				URL:          "https://odpch-api.clients.liip.ch/ojp20-test",
				RequestorRef: "OJP_GO_V2_TEST",
				Version:      "2.0",
			},
		},
		Shapes: ShapeProvider{
			URL: "https://api.opentransportdata.swiss/shapes",
		},
		Language: "en",
	}
}

// Load builds the configuration from the defaults, an optional YAML file and
// OJP_* environment overrides, in that order.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading stage config: %w", err)
		}

		if err := yaml.Unmarshal(contents, config); err != nil {
			return nil, fmt.Errorf("parsing stage config: %w", err)
		}

		for name, stage := range config.Stages {
			if stage.Name == "" {
				stage.Name = name
				config.Stages[name] = stage
			}
		}
	}

	config.applyEnvironment()

	return config, nil
}

func (c *Config) applyEnvironment() {
	env := util.GetEnvironmentVariables()

	if env["OJP_DEFAULT_STAGE"] != "" {
		c.DefaultStage = env["OJP_DEFAULT_STAGE"]
	}
	if env["OJP_REDIS_ADDRESS"] != "" {
		c.RedisAddress = env["OJP_REDIS_ADDRESS"]
	}
	if env["OJP_REDIS_PASSWORD"] != "" {
		c.RedisPassword = env["OJP_REDIS_PASSWORD"]
	}
	if env["OJP_LANGUAGE"] != "" {
		c.Language = env["OJP_LANGUAGE"]
	}
	if env["OJP_SHAPES_URL"] != "" {
		c.Shapes.URL = env["OJP_SHAPES_URL"]
	}
	if env["OJP_SHAPES_AUTHORIZATION"] != "" {
		c.Shapes.Authorization = env["OJP_SHAPES_AUTHORIZATION"]
	}

	// Per-stage bearer tokens, e.g. OJP_AUTHORIZATION overrides the selected
	// default stage only.
	if env["OJP_AUTHORIZATION"] != "" {
		if stage, found := c.Stages[c.DefaultStage]; found {
			stage.Authorization = env["OJP_AUTHORIZATION"]
			c.Stages[c.DefaultStage] = stage
		}
	}
}

// Stage returns the named stage, or the default stage for an empty name.
func (c *Config) Stage(name string) (Stage, error) {
	if name == "" {
		name = c.DefaultStage
	}

	stage, found := c.Stages[name]
	if !found {
		return Stage{}, fmt.Errorf("%w: %q", ErrUnknownStage, name)
	}

	return stage, nil
}
