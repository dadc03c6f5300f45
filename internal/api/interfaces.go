package api

import (
	"context"

	"github.com/tulumvibe/beachpulse/internal/conditions"
)

// ConditionsEngine defines the aggregation operations needed by handlers.
type ConditionsEngine interface {
	BeachConditions(ctx context.Context, lat, lng float64) (*conditions.ConditionsResponse, error)
	Pulse(ctx context.Context, lat, lng float64) (*conditions.PulseResponse, error)
}

// ResponseCache defines the rendered-response cache needed by handlers.
type ResponseCache interface {
	Get(ctx context.Context, view string, lat, lng float64) ([]byte, error)
	Set(ctx context.Context, view string, lat, lng float64, payload []byte) error
}
