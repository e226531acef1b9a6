// Package shapes decorates timed legs with detailed track geometry from an
// external shape provider, replacing the coarse link projections of the trip
// delivery.
package shapes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	libcache "github.com/eko/gocache/lib/v4/cache"
	gocachestore "github.com/eko/gocache/store/go_cache/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/stages"
)

// Shape is one decorated geometry as returned by the provider.
type Shape struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// Positions converts the raw lon/lat pairs, dropping malformed entries.
func (s *Shape) Positions() []geo.Position {
	var positions []geo.Position

	for _, pair := range s.Coordinates {
		if len(pair) != 2 {
			continue
		}

		position := geo.NewPosition(pair[0], pair[1])
		if position.IsValid() {
			positions = append(positions, position)
		}
	}

	return positions
}

// Provider fetches shapes keyed by the leg's stop sequence. Concurrent
// requests for the same key collapse into one upstream call, and successful
// responses are cached in-process.
type Provider struct {
	config stages.ShapeProvider

	httpClient *http.Client

	group singleflight.Group

	cache *libcache.Cache[*Shape]
}

func NewProvider(config stages.ShapeProvider) *Provider {
	store := gocachestore.NewGoCache(gocache.New(gocache.NoExpiration, 0))

	return &Provider{
		config: config,

		httpClient: &http.Client{},

		cache: libcache.New[*Shape](store),
	}
}

// ShapeKey builds the cache key for one timed leg: the ordered boarding,
// intermediate and alighting coordinates plus the departure platform.
func ShapeKey(leg *model.TimedLeg) string {
	var points []string

	calls := []*model.StopPointCall{leg.FromStopCall}
	calls = append(calls, leg.IntermediateStopCalls...)
	calls = append(calls, leg.ToStopCall)

	for _, call := range calls {
		if call != nil && call.Place != nil && call.Place.GeoPosition.IsValid() {
			points = append(points, call.Place.GeoPosition.AsLonLatString())
		}
	}

	platform := ""
	if leg.FromStopCall != nil {
		platform = leg.FromStopCall.Platform.Best()
	}

	return strings.Join(points, ";") + "|" + platform
}

// Fetch returns the shape for the key, deduplicating concurrent identical
// lookups. A failed fetch evicts the key so the next caller retries.
func (p *Provider) Fetch(ctx context.Context, key string) (*Shape, error) {
	if cached, err := p.cache.Get(ctx, key); err == nil && cached != nil {
		return cached, nil
	}

	result, err, _ := p.group.Do(key, func() (any, error) {
		shape, err := p.fetchRemote(ctx, key)
		if err != nil {
			if evictErr := p.cache.Delete(ctx, key); evictErr != nil {
				log.Debug().Err(evictErr).Msg("Failed to evict shape cache entry")
			}
			return nil, err
		}

		if err := p.cache.Set(ctx, key, shape); err != nil {
			log.Debug().Err(err).Msg("Failed to store shape in cache")
		}

		return shape, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Shape), nil
}

func (p *Provider) fetchRemote(ctx context.Context, key string) (*Shape, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.URL, nil)
	if err != nil {
		return nil, err
	}

	query := request.URL.Query()
	query.Set("key", key)
	request.URL.RawQuery = query.Encode()

	if p.config.Authorization != "" {
		request.Header.Set("Authorization", "Bearer "+p.config.Authorization)
	}

	response, err := p.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("shape provider returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	var shape Shape
	if err := json.Unmarshal(body, &shape); err != nil {
		return nil, err
	}

	return &shape, nil
}

// Decorate replaces the track of every timed leg that has a fetchable shape.
// Missing shapes leave the original track untouched.
func (p *Provider) Decorate(ctx context.Context, trip *model.Trip) {
	for _, leg := range trip.Legs {
		timed, ok := leg.(*model.TimedLeg)
		if !ok {
			continue
		}

		key := ShapeKey(timed)
		if key == "|" {
			continue
		}

		shape, err := p.Fetch(ctx, key)
		if err != nil {
			log.Debug().Err(err).Msg("Leg shape lookup failed")
			continue
		}

		positions := shape.Positions()
		if len(positions) < 2 {
			continue
		}

		projection := model.LinkProjection{Coordinates: positions}
		timed.Common().Track = &model.LegTrack{
			Sections: []model.TrackSection{{LinkProjection: &projection}},
		}
	}
}
