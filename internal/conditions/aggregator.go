// Package conditions fuses weather, marine, and venue-directory data
// into ranked beach suitability scores and a short-horizon forecast.
// All work is request-scoped: inputs are fetched, scored, and discarded
// within a single call.
package conditions

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tulumvibe/beachpulse/internal/scoring"
)

// tzTulum is the fixed venue-local clock. Quintana Roo does not observe
// daylight saving.
var tzTulum = time.FixedZone("UTC-5", -5*60*60)

// Known placeholders, kept as explicit constants rather than inferred
// behavior: there is no live sargassum feed yet, and the venue
// directory does not carry amenity data.
const regionalSargassum = scoring.SargassumModerate

var placeholderAmenities = scoring.Input{
	HasRestrooms:          true,
	HasShowers:            true,
	HasFood:               true,
	HasUmbrellas:          true,
	HasLifeguard:          true,
	ParkingAvailable:      true,
	PublicTransportNearby: false,
	Walkable:              true,
}

// Only venues of this category inside the beach zone qualify for scoring.
const scoredCategory = "club"

// weatherFetcher is the interface satisfied by WeatherClient.
type weatherFetcher interface {
	Fetch(ctx context.Context, lat, lng float64) (*WeatherReport, error)
}

// marineFetcher is the interface satisfied by MarineClient.
type marineFetcher interface {
	Fetch(ctx context.Context, lat, lng float64) (*float64, error)
}

// VenueDirectory is the venue lookup; in production it is backed by the
// venues table in Postgres.
type VenueDirectory interface {
	ListVenues(ctx context.Context) ([]Venue, error)
}

// Aggregator orchestrates the three upstream sources and assembles the
// two response views. It holds no mutable state across requests.
type Aggregator struct {
	weather weatherFetcher
	marine  marineFetcher
	venues  VenueDirectory
	log     *slog.Logger
	now     func() time.Time
}

// NewAggregator constructs an Aggregator with production dependencies.
func NewAggregator(weather weatherFetcher, marine marineFetcher, venues VenueDirectory, log *slog.Logger) *Aggregator {
	return &Aggregator{
		weather: weather,
		marine:  marine,
		venues:  venues,
		log:     log,
		now:     time.Now,
	}
}

// NewAggregatorWithClock constructs an Aggregator with an injected clock (used in tests).
func NewAggregatorWithClock(weather weatherFetcher, marine marineFetcher, venues VenueDirectory, log *slog.Logger, now func() time.Time) *Aggregator {
	a := NewAggregator(weather, marine, venues, log)
	a.now = now
	return a
}

// snapshot is the joined result of one aggregation pass.
type snapshot struct {
	weather   *WeatherReport // nil when the weather call failed
	waterTemp *float64       // nil when the marine call failed
	beaches   []ScoredBeach
	localNow  time.Time
}

// aggregate fetches all three sources concurrently and scores the
// qualifying venues. Weather and marine failures degrade to nil fields;
// a venue-directory failure aborts the whole aggregation, since without
// venues there is nothing to score.
func (a *Aggregator) aggregate(ctx context.Context, lat, lng float64) (*snapshot, error) {
	g, gCtx := errgroup.WithContext(ctx)

	var (
		report    *WeatherReport
		waterTemp *float64
		venues    []Venue
	)

	g.Go(func() error {
		wr, err := a.weather.Fetch(gCtx, lat, lng)
		if err != nil {
			a.log.Warn("weather fetch failed, scoring without weather signals", "err", err)
			return nil
		}
		report = wr
		return nil
	})

	g.Go(func() error {
		wt, err := a.marine.Fetch(gCtx, lat, lng)
		if err != nil {
			a.log.Warn("marine fetch failed, omitting water temperature", "err", err)
			return nil
		}
		waterTemp = wt
		return nil
	})

	g.Go(func() error {
		vs, err := a.venues.ListVenues(gCtx)
		if err != nil {
			return fmt.Errorf("listing venues: %w", err)
		}
		venues = vs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	localNow := a.now().In(tzTulum)
	crowd := scoring.EstimateCrowd(localNow)

	var weatherIn scoring.WeatherInput
	var label string
	if report != nil {
		weatherIn = scoring.WeatherInput{
			Temperature:   report.Temperature,
			Precipitation: report.PrecipProbability,
			WindSpeed:     report.WindSpeed,
			UVIndex:       report.UVIndexMax,
			WeatherCode:   report.WeatherCode,
		}
		label = scoring.WeatherLabel(report.WeatherCode)
	} else {
		label = scoring.WeatherLabel(nil)
	}

	beaches := make([]ScoredBeach, 0, len(venues))
	for _, v := range venues {
		if v.Category != scoredCategory || !inBeachZone(v.Lat, v.Lng) {
			continue
		}

		distance := Haversine(lat, lng, v.Lat, v.Lng)

		in := placeholderAmenities
		in.Sargassum = regionalSargassum
		in.Crowd = crowd
		in.Weather = weatherIn
		in.DistanceKM = &distance

		beaches = append(beaches, ScoredBeach{
			ID:           v.ID,
			PlaceID:      v.PlaceID,
			Name:         v.Name,
			Lat:          v.Lat,
			Lng:          v.Lng,
			DistanceKM:   round1(distance),
			Sargassum:    regionalSargassum,
			Crowd:        crowd,
			WeatherLabel: label,
			Score:        scoring.Score(in),
		})
	}

	// Stable sort keeps retrieval order on ties, so ranking is deterministic.
	sort.SliceStable(beaches, func(i, j int) bool {
		return beaches[i].Score.Score > beaches[j].Score.Score
	})

	return &snapshot{
		weather:   report,
		waterTemp: waterTemp,
		beaches:   beaches,
		localNow:  localNow,
	}, nil
}

// BeachConditions produces the ranked beach list with forecast and
// weather summary for the conditions dashboard view.
func (a *Aggregator) BeachConditions(ctx context.Context, lat, lng float64) (*ConditionsResponse, error) {
	snap, err := a.aggregate(ctx, lat, lng)
	if err != nil {
		return nil, err
	}

	return &ConditionsResponse{
		Beaches:  snap.beaches,
		Forecast: buildForecast(topScore(snap.beaches), snap.localNow),
		Weather:  weatherSummary(snap.weather),
	}, nil
}

func topScore(beaches []ScoredBeach) float64 {
	if len(beaches) == 0 {
		return 0
	}
	return beaches[0].Score.Score
}

func weatherSummary(report *WeatherReport) *WeatherSummary {
	if report == nil {
		return nil
	}
	s := &WeatherSummary{}
	if report.Temperature != nil {
		s.Temp = *report.Temperature
	}
	if report.WeatherCode != nil {
		s.Code = *report.WeatherCode
	}
	if report.WindSpeed != nil {
		s.WindSpeed = *report.WindSpeed
	}
	return s
}
