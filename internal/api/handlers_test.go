package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tulumvibe/beachpulse/internal/api"
	"github.com/tulumvibe/beachpulse/internal/conditions"
)

// ---- mock implementations ----

type mockEngine struct {
	beachConditionsFn func(ctx context.Context, lat, lng float64) (*conditions.ConditionsResponse, error)
	pulseFn           func(ctx context.Context, lat, lng float64) (*conditions.PulseResponse, error)
}

func (m *mockEngine) BeachConditions(ctx context.Context, lat, lng float64) (*conditions.ConditionsResponse, error) {
	return m.beachConditionsFn(ctx, lat, lng)
}

func (m *mockEngine) Pulse(ctx context.Context, lat, lng float64) (*conditions.PulseResponse, error) {
	return m.pulseFn(ctx, lat, lng)
}

type mockCache struct {
	getFn func(ctx context.Context, view string, lat, lng float64) ([]byte, error)
	setFn func(ctx context.Context, view string, lat, lng float64, payload []byte) error
}

func (m *mockCache) Get(ctx context.Context, view string, lat, lng float64) ([]byte, error) {
	return m.getFn(ctx, view, lat, lng)
}

func (m *mockCache) Set(ctx context.Context, view string, lat, lng float64, payload []byte) error {
	return m.setFn(ctx, view, lat, lng, payload)
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// ---- helpers ----

func sampleConditions() *conditions.ConditionsResponse {
	return &conditions.ConditionsResponse{
		Beaches: []conditions.ScoredBeach{
			{ID: 1, Name: "Playa Norte Club", DistanceKM: 1.3},
		},
		Forecast: []conditions.ForecastDay{
			{Day: "Wednesday", Score: 7.8, Emoji: "✨"},
			{Day: "Thursday", Score: 7.6, Emoji: "✨"},
			{Day: "Friday", Score: 7.4, Emoji: "✨"},
		},
	}
}

func passthroughCache() *mockCache {
	return &mockCache{
		getFn: func(_ context.Context, _ string, _, _ float64) ([]byte, error) { return nil, nil },
		setFn: func(_ context.Context, _ string, _, _ float64, _ []byte) error { return nil },
	}
}

func buildRouter(engine api.ConditionsEngine, cache api.ResponseCache, db, redis *mockPinger) http.Handler {
	if db == nil {
		db = &mockPinger{}
	}
	if redis == nil {
		redis = &mockPinger{}
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := api.NewHandlers(engine, cache, conditions.DefaultLat, conditions.DefaultLng, log)
	return api.NewRouter(handlers, db, redis, log)
}

// ---- GET /api/v1/beaches/conditions ----

func TestGetConditions_OK(t *testing.T) {
	var setPayload []byte
	cache := passthroughCache()
	cache.setFn = func(_ context.Context, view string, _, _ float64, payload []byte) error {
		assert.Equal(t, "beaches", view)
		setPayload = payload
		return nil
	}

	engine := &mockEngine{
		beachConditionsFn: func(_ context.Context, lat, lng float64) (*conditions.ConditionsResponse, error) {
			assert.Equal(t, 20.18, lat)
			assert.Equal(t, -87.45, lng)
			return sampleConditions(), nil
		},
	}

	router := buildRouter(engine, cache, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches/conditions?lat=20.18&lng=-87.45", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got conditions.ConditionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Beaches, 1)
	assert.Equal(t, "Playa Norte Club", got.Beaches[0].Name)

	assert.NotNil(t, setPayload, "rendered payload must be cached")
}

func TestGetConditions_CacheHitSkipsEngine(t *testing.T) {
	cached := []byte(`{"beaches":[],"forecast":[],"weather":null}`)
	cache := passthroughCache()
	cache.getFn = func(_ context.Context, _ string, _, _ float64) ([]byte, error) { return cached, nil }

	engine := &mockEngine{
		beachConditionsFn: func(_ context.Context, _, _ float64) (*conditions.ConditionsResponse, error) {
			t.Fatal("engine should not be called on cache hit")
			return nil, nil
		},
	}

	router := buildRouter(engine, cache, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches/conditions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cached, w.Body.Bytes())
}

func TestGetConditions_DefaultsWhenNoCoordinate(t *testing.T) {
	engine := &mockEngine{
		beachConditionsFn: func(_ context.Context, lat, lng float64) (*conditions.ConditionsResponse, error) {
			assert.Equal(t, conditions.DefaultLat, lat)
			assert.Equal(t, conditions.DefaultLng, lng)
			return sampleConditions(), nil
		},
	}

	router := buildRouter(engine, passthroughCache(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches/conditions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetConditions_EngineFailureIs500(t *testing.T) {
	engine := &mockEngine{
		beachConditionsFn: func(_ context.Context, _, _ float64) (*conditions.ConditionsResponse, error) {
			return nil, errors.New("listing venues: connection refused")
		},
	}

	router := buildRouter(engine, passthroughCache(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches/conditions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "listing venues")
}

func TestGetConditions_BadQuery(t *testing.T) {
	engine := &mockEngine{
		beachConditionsFn: func(_ context.Context, _, _ float64) (*conditions.ConditionsResponse, error) {
			t.Fatal("engine should not be called on invalid input")
			return nil, nil
		},
	}
	router := buildRouter(engine, passthroughCache(), nil, nil)

	cases := []struct {
		name  string
		query string
	}{
		{"non-numeric lat", "?lat=abc&lng=-87.45"},
		{"non-numeric lng", "?lat=20.18&lng=west"},
		{"lat without lng", "?lat=20.18"},
		{"lng without lat", "?lng=-87.45"},
		{"lat out of range", "?lat=95&lng=-87.45"},
		{"lng out of range", "?lat=20.18&lng=200"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches/conditions"+tc.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

// ---- GET /api/v1/beaches/pulse ----

func TestGetPulse_OK(t *testing.T) {
	water := 29.4
	engine := &mockEngine{
		pulseFn: func(_ context.Context, _, _ float64) (*conditions.PulseResponse, error) {
			return &conditions.PulseResponse{
				Segment:    "midday",
				LocalTime:  "1:00 PM",
				WaterTemp:  &water,
				BeachCount: 2,
			}, nil
		},
	}

	router := buildRouter(engine, passthroughCache(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/beaches/pulse", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got conditions.PulseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "midday", got.Segment)
	require.NotNil(t, got.WaterTemp)
	assert.Equal(t, 29.4, *got.WaterTemp)
}

func TestGetPulse_CacheIsKeyedSeparately(t *testing.T) {
	var views []string
	cache := passthroughCache()
	cache.getFn = func(_ context.Context, view string, _, _ float64) ([]byte, error) {
		views = append(views, view)
		return nil, nil
	}

	engine := &mockEngine{
		beachConditionsFn: func(_ context.Context, _, _ float64) (*conditions.ConditionsResponse, error) {
			return sampleConditions(), nil
		},
		pulseFn: func(_ context.Context, _, _ float64) (*conditions.PulseResponse, error) {
			return &conditions.PulseResponse{Segment: "night"}, nil
		},
	}

	router := buildRouter(engine, cache, nil, nil)

	for _, path := range []string{"/api/v1/beaches/conditions", "/api/v1/beaches/pulse"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, []string{"beaches", "pulse"}, views)
}

// ---- GET /api/v1/health ----

func TestHealth_OK(t *testing.T) {
	router := buildRouter(&mockEngine{}, passthroughCache(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHealth_DatabaseDown(t *testing.T) {
	router := buildRouter(&mockEngine{}, passthroughCache(), &mockPinger{err: errors.New("down")}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, "error", body["db"])
	assert.Equal(t, "ok", body["redis"])
}
