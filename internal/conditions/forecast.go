package conditions

import (
	"math"
	"time"

	"github.com/tulumvibe/beachpulse/internal/scoring"
)

// Fixed day-over-day variance applied to today's top score. This is a
// placeholder extrapolation pending live sargassum-forecast data, not a
// predictive model; it must decay by exactly these deltas.
var forecastDeltas = [3]float64{0, -0.2, -0.4}

const (
	forecastFloor   = 5.0
	forecastCeiling = 10.0
)

// buildForecast projects the baseline score over today and the next two
// days. Each entry is clamped to [5,10] and rounded to one decimal.
func buildForecast(baseline float64, localNow time.Time) []ForecastDay {
	days := make([]ForecastDay, 0, len(forecastDeltas))
	for i, delta := range forecastDeltas {
		projected := baseline + delta
		projected = math.Max(forecastFloor, math.Min(forecastCeiling, projected))
		projected = round1(projected)

		day := localNow.AddDate(0, 0, i)
		days = append(days, ForecastDay{
			Day:   day.Weekday().String(),
			Score: projected,
			Emoji: scoring.EmojiFor(projected),
		})
	}
	return days
}
