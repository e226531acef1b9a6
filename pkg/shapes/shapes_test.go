package shapes

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjourney/ojp/pkg/geo"
	"github.com/openjourney/ojp/pkg/model"
	"github.com/openjourney/ojp/pkg/stages"
)

func testProvider(serverURL string) *Provider {
	return NewProvider(stages.ShapeProvider{
		URL:           serverURL,
		Authorization: "shape-token",
	})
}

func TestProvider_FetchCachesShapes(t *testing.T) {
	var requestCount int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requestCount, 1)

		assert.Equal(t, "Bearer shape-token", r.Header.Get("Authorization"))
		assert.Equal(t, "8.5,47.3;8.54,47.37|4", r.URL.Query().Get("key"))

		w.Write([]byte(`{"coordinates":[[8.5,47.3],[8.52,47.35],[8.54,47.37]]}`))
	}))
	defer server.Close()

	provider := testProvider(server.URL)
	ctx := context.Background()

	shape, err := provider.Fetch(ctx, "8.5,47.3;8.54,47.37|4")
	require.NoError(t, err)
	require.Len(t, shape.Positions(), 3)

	_, err = provider.Fetch(ctx, "8.5,47.3;8.54,47.37|4")
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt64(&requestCount))
}

func TestProvider_ConcurrentFetchesCollapse(t *testing.T) {
	var requestCount int64
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requestCount, 1)
		<-release

		w.Write([]byte(`{"coordinates":[[8.5,47.3],[8.54,47.37]]}`))
	}))
	defer server.Close()

	provider := testProvider(server.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	var started sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		started.Add(1)
		go func() {
			defer wg.Done()
			started.Done()

			shape, err := provider.Fetch(ctx, "concurrent|")
			assert.NoError(t, err)
			if shape != nil {
				assert.Len(t, shape.Coordinates, 2)
			}
		}()
	}

	started.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt64(&requestCount))
}

func TestProvider_FailureIsNotCached(t *testing.T) {
	var requestCount int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&requestCount, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Write([]byte(`{"coordinates":[[8.5,47.3],[8.54,47.37]]}`))
	}))
	defer server.Close()

	provider := testProvider(server.URL)
	ctx := context.Background()

	_, err := provider.Fetch(ctx, "retry|")
	require.Error(t, err)

	shape, err := provider.Fetch(ctx, "retry|")
	require.NoError(t, err)
	assert.Len(t, shape.Coordinates, 2)

	assert.EqualValues(t, 2, atomic.LoadInt64(&requestCount))
}

func TestShapeKey(t *testing.T) {
	leg := &model.TimedLeg{
		FromStopCall: &model.StopPointCall{
			Place: &model.Place{GeoPosition: geo.NewPosition(8.540192, 47.378177)},
			Platform: model.StopPlatform{
				Timetable: "7",
				Realtime:  "9",
			},
		},
		IntermediateStopCalls: []*model.StopPointCall{
			{Place: &model.Place{GeoPosition: geo.NewPosition(8.521961, 47.385087)}},
		},
		ToStopCall: &model.StopPointCall{
			Place: &model.Place{GeoPosition: geo.NewPosition(7.439122, 46.948832)},
		},
	}

	key := ShapeKey(leg)

	assert.Equal(t, "8.540192,47.378177;8.521961,47.385087;7.439122,46.948832|9", key)
}

func TestShapeKey_EmptyLeg(t *testing.T) {
	assert.Equal(t, "|", ShapeKey(&model.TimedLeg{}))
}

func TestShape_PositionsDropsMalformedPairs(t *testing.T) {
	shape := &Shape{Coordinates: [][]float64{
		{8.5, 47.3},
		{8.5},
		{math.NaN(), 47.3},
		{8.54, 47.37},
	}}

	positions := shape.Positions()

	require.Len(t, positions, 2)
	assert.Equal(t, "8.500000,47.300000", positions[0].AsLonLatString())
}
