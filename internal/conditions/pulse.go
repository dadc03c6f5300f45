package conditions

import (
	"context"
	"time"
)

// Pulse produces the denser single-screen summary: time-of-day segment,
// UV tier, water temperature, sun times, and the top-beach digest.
func (a *Aggregator) Pulse(ctx context.Context, lat, lng float64) (*PulseResponse, error) {
	snap, err := a.aggregate(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	resp := &PulseResponse{
		Segment:    daySegment(snap.localNow.Hour()),
		LocalTime:  snap.localNow.Format("3:04 PM"),
		Weather:    weatherSummary(snap.weather),
		WaterTemp:  snap.waterTemp,
		BeachCount: len(snap.beaches),
	}

	if snap.weather != nil {
		resp.UV = uvReport(snap.weather.UVIndexMax)
		resp.Sunrise = formatSunTime(snap.weather.Sunrise)
		resp.Sunset = formatSunTime(snap.weather.Sunset)
	}

	if len(snap.beaches) > 0 {
		top := snap.beaches[0]
		resp.TopBeach = &TopBeach{
			Name:       top.Name,
			Score:      top.Score.Score,
			Rating:     top.Score.Rating,
			Emoji:      top.Score.Emoji,
			DistanceKM: top.DistanceKM,
		}
	}

	return resp, nil
}

// daySegment buckets the venue-local hour into the five dashboard
// segments.
func daySegment(hour int) string {
	switch {
	case hour >= 5 && hour <= 10:
		return "morning"
	case hour >= 11 && hour <= 13:
		return "midday"
	case hour >= 14 && hour <= 17:
		return "afternoon"
	case hour >= 18 && hour <= 21:
		return "evening"
	default:
		return "night"
	}
}

// uvReport maps a UV index to the WHO exposure tiers.
func uvReport(index *float64) *UVReport {
	if index == nil {
		return nil
	}
	r := &UVReport{Index: *index}
	switch uv := *index; {
	case uv < 3:
		r.Label, r.Color = "Low", "green"
	case uv < 6:
		r.Label, r.Color = "Moderate", "yellow"
	case uv < 8:
		r.Label, r.Color = "High", "orange"
	case uv < 11:
		r.Label, r.Color = "Very High", "red"
	default:
		r.Label, r.Color = "Extreme", "purple"
	}
	return r
}

// formatSunTime converts a provider-local ISO timestamp into a short
// clock string. Returns "" for anything unparseable.
func formatSunTime(iso string) string {
	t, err := time.Parse("2006-01-02T15:04", iso)
	if err != nil {
		return ""
	}
	return t.Format("3:04 PM")
}
