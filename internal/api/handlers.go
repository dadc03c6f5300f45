package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Cache view names. Each view caches its rendered payload separately.
const (
	viewConditions = "beaches"
	viewPulse      = "pulse"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	engine     ConditionsEngine
	cache      ResponseCache
	defaultLat float64
	defaultLng float64
	log        *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies. The
// default coordinate is used when a request carries no lat/lng.
func NewHandlers(engine ConditionsEngine, cache ResponseCache, defaultLat, defaultLng float64, log *slog.Logger) *Handlers {
	return &Handlers{
		engine:     engine,
		cache:      cache,
		defaultLat: defaultLat,
		defaultLng: defaultLng,
		log:        log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes an already-rendered JSON payload.
func writeRawJSON(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// coordQuery holds the optional caller coordinate.
type coordQuery struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lng float64 `validate:"gte=-180,lte=180"`
}

var errHalfCoordinate = errors.New("lat and lng must be provided together")

// parseCoord reads lat/lng from the query string. Both absent falls
// back to the configured reference point.
func (h *Handlers) parseCoord(r *http.Request) (coordQuery, error) {
	latStr := r.URL.Query().Get("lat")
	lngStr := r.URL.Query().Get("lng")

	if latStr == "" && lngStr == "" {
		return coordQuery{Lat: h.defaultLat, Lng: h.defaultLng}, nil
	}
	if latStr == "" || lngStr == "" {
		return coordQuery{}, errHalfCoordinate
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return coordQuery{}, errors.New("lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return coordQuery{}, errors.New("lng must be a number")
	}

	q := coordQuery{Lat: lat, Lng: lng}
	if err := validate.Struct(q); err != nil {
		return coordQuery{}, errors.New("lat/lng out of range")
	}
	return q, nil
}

// GetConditions handles GET /api/v1/beaches/conditions.
// Cache hit → serve rendered payload. Miss → aggregate, cache, serve.
func (h *Handlers) GetConditions(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, viewConditions, func(ctx context.Context, lat, lng float64) (any, error) {
		return h.engine.BeachConditions(ctx, lat, lng)
	})
}

// GetPulse handles GET /api/v1/beaches/pulse.
func (h *Handlers) GetPulse(w http.ResponseWriter, r *http.Request) {
	h.serveView(w, r, viewPulse, func(ctx context.Context, lat, lng float64) (any, error) {
		return h.engine.Pulse(ctx, lat, lng)
	})
}

func (h *Handlers) serveView(w http.ResponseWriter, r *http.Request, view string, compute func(ctx context.Context, lat, lng float64) (any, error)) {
	q, err := h.parseCoord(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cached, err := h.cache.Get(r.Context(), view, q.Lat, q.Lng)
	if err != nil {
		h.log.Error("cache get failed", "view", view, "err", err)
	}
	if cached != nil {
		writeRawJSON(w, http.StatusOK, cached)
		return
	}

	result, err := compute(r.Context(), q.Lat, q.Lng)
	if err != nil {
		h.log.Error("aggregation failed", "view", view, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		h.log.Error("marshaling response failed", "view", view, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if err := h.cache.Set(r.Context(), view, q.Lat, q.Lng, payload); err != nil {
		h.log.Warn("cache set failed", "view", view, "err", err)
	}

	writeRawJSON(w, http.StatusOK, payload)
}

// HealthCheck pings DB and Redis; returns 200 if both ok, 503 otherwise.
type dbPinger interface {
	Ping(ctx context.Context) error
}

type redisPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
func HealthHandlerFunc(db dbPinger, redis redisPinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		dbStatus := "ok"
		redisStatus := "ok"

		if err := db.Ping(ctx); err != nil {
			log.Error("health check: db ping failed", "err", err)
			dbStatus = "error"
			status = http.StatusServiceUnavailable
		}

		if err := redis.Ping(ctx); err != nil {
			log.Error("health check: redis ping failed", "err", err)
			redisStatus = "error"
			status = http.StatusServiceUnavailable
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}

		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
