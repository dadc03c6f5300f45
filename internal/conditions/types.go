package conditions

import (
	"time"

	"github.com/tulumvibe/beachpulse/internal/scoring"
)

// Venue is a directory record. The directory owns these; this engine
// only reads them.
type Venue struct {
	ID        int       `json:"id"`
	PlaceID   string    `json:"place_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Rating    *float64  `json:"rating,omitempty"`
	PhotoURL  *string   `json:"photo_url,omitempty"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// WeatherReport is the normalized current-conditions view of the
// weather provider response. Nil fields were absent or unavailable.
type WeatherReport struct {
	Temperature         *float64
	ApparentTemperature *float64
	Humidity            *float64
	WindSpeed           *float64 // km/h
	WeatherCode         *int
	UVIndexMax          *float64
	PrecipProbability   *float64 // percent, for the current hour
	Sunrise             string   // provider-local ISO timestamp, may be empty
	Sunset              string
}

// ScoredBeach is one venue with its computed conditions.
type ScoredBeach struct {
	ID           int                    `json:"id"`
	PlaceID      string                 `json:"place_id"`
	Name         string                 `json:"name"`
	Lat          float64                `json:"lat"`
	Lng          float64                `json:"lng"`
	DistanceKM   float64                `json:"distance_km"`
	Sargassum    scoring.SargassumLevel `json:"sargassum_level"`
	Crowd        scoring.CrowdLevel     `json:"crowd_level"`
	WeatherLabel string                 `json:"weather_label"`
	Score        scoring.Result         `json:"score"`
}

// WeatherSummary is the compact current-weather block on responses.
// The whole block is null when the weather call failed.
type WeatherSummary struct {
	Temp      float64 `json:"temp"`
	Code      int     `json:"code"`
	WindSpeed float64 `json:"wind_speed"`
}

// ForecastDay is one entry of the 3-day projection.
type ForecastDay struct {
	Day   string  `json:"day"`
	Score float64 `json:"score"`
	Emoji string  `json:"emoji"`
}

// ConditionsResponse is the beach-conditions dashboard view.
type ConditionsResponse struct {
	Beaches  []ScoredBeach   `json:"beaches"`
	Forecast []ForecastDay   `json:"forecast"`
	Weather  *WeatherSummary `json:"weather"`
}

// UVReport is the tiered UV block on the pulse view.
type UVReport struct {
	Index float64 `json:"index"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

// TopBeach is the single-venue digest on the pulse view.
type TopBeach struct {
	Name       string  `json:"name"`
	Score      float64 `json:"score"`
	Rating     string  `json:"rating"`
	Emoji      string  `json:"emoji"`
	DistanceKM float64 `json:"distance_km"`
}

// PulseResponse is the denser single-screen summary view.
type PulseResponse struct {
	Segment    string          `json:"segment"`
	LocalTime  string          `json:"local_time"`
	Weather    *WeatherSummary `json:"weather"`
	UV         *UVReport       `json:"uv,omitempty"`
	WaterTemp  *float64        `json:"water_temp,omitempty"`
	Sunrise    string          `json:"sunrise,omitempty"`
	Sunset     string          `json:"sunset,omitempty"`
	BeachCount int             `json:"beach_count"`
	TopBeach   *TopBeach       `json:"top_beach,omitempty"`
}
