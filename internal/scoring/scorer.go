// Package scoring implements the Tulum Score: a pure, deterministic
// 0-10 composite suitability score for beach venues. It performs no I/O
// and never fails; unknown enum values fall back to neutral defaults.
package scoring

import "math"

// Factor weights. Product-defined constants; must always sum to 1.0.
const (
	weightSargassum     = 0.40
	weightWeather       = 0.20
	weightCrowd         = 0.20
	weightFacilities    = 0.10
	weightAccessibility = 0.10
)

var sargassumScores = map[SargassumLevel]float64{
	SargassumNone:     10,
	SargassumMinimal:  9,
	SargassumLow:      8,
	SargassumModerate: 6,
	SargassumMedium:   4,
	SargassumHigh:     2,
	SargassumSevere:   0,
}

var crowdScores = map[CrowdLevel]float64{
	CrowdEmpty:    10,
	CrowdQuiet:    8,
	CrowdModerate: 7,
	CrowdBusy:     5,
	CrowdCrowded:  3,
	CrowdPacked:   1,
}

// Unknown enum values read as their "moderate" tier.
const (
	defaultSargassumScore = 6
	defaultCrowdScore     = 7
)

// Score computes the composite Tulum Score for one venue.
func Score(in Input) Result {
	f := Factors{
		Sargassum:     sargassumScore(in.Sargassum),
		Weather:       WeatherScore(in.Weather),
		Crowd:         crowdScore(in.Crowd),
		Facilities:    facilitiesScore(in),
		Accessibility: accessibilityScore(in),
	}

	total := f.Sargassum*weightSargassum +
		f.Weather*weightWeather +
		f.Crowd*weightCrowd +
		f.Facilities*weightFacilities +
		f.Accessibility*weightAccessibility

	score := clamp(round1(total), 0, 10)

	return Result{
		Score:   score,
		Rating:  RatingFor(score),
		Emoji:   EmojiFor(score),
		Factors: f,
	}
}

func sargassumScore(level SargassumLevel) float64 {
	if s, ok := sargassumScores[level]; ok {
		return s
	}
	return defaultSargassumScore
}

func crowdScore(level CrowdLevel) float64 {
	if s, ok := crowdScores[level]; ok {
		return s
	}
	return defaultCrowdScore
}

// facilitiesScore starts at 5 and adds per-amenity points, capped at 10.
// Food weighs double: beach clubs are food and beverage venues first.
func facilitiesScore(in Input) float64 {
	s := 5.0
	if in.HasRestrooms {
		s++
	}
	if in.HasShowers {
		s++
	}
	if in.HasFood {
		s += 2
	}
	if in.HasUmbrellas {
		s++
	}
	if in.HasLifeguard {
		s++
	}
	return math.Min(s, 10)
}

// accessibilityScore starts at 7, adjusts by distance band, and adds a
// small parking bonus. A nil distance skips the band adjustment.
func accessibilityScore(in Input) float64 {
	s := 7.0
	if in.DistanceKM != nil {
		switch d := *in.DistanceKM; {
		case d <= 2:
			s += 3
		case d <= 5:
			s += 2
		case d <= 10:
			// no adjustment
		case d <= 20:
			s -= 2
		default:
			s -= 3
		}
	}
	if in.ParkingAvailable {
		s += 0.5
	}
	return clamp(s, 0, 10)
}

// RatingFor maps a final score to its six-tier user-facing label.
func RatingFor(score float64) string {
	switch {
	case score >= 9:
		return "Perfect"
	case score >= 8:
		return "Excellent"
	case score >= 7:
		return "Great"
	case score >= 6:
		return "Good"
	case score >= 5:
		return "Fair"
	default:
		return "Skip Today"
	}
}

// EmojiFor maps a score to its coarser emoji tier.
func EmojiFor(score float64) string {
	switch {
	case score >= 9:
		return "🌟"
	case score >= 8:
		return "⭐"
	case score >= 7:
		return "✨"
	case score >= 6:
		return "💫"
	default:
		return "⚠️"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
