package scoring

// WMO weather interpretation code buckets. Low codes are clear skies,
// high codes are severe weather.
const (
	wmoPartlyCloudyMax = 2
	wmoOvercast        = 3
	wmoDrizzleMin      = 51
	wmoRainMax         = 67
	wmoShowersMin      = 80
	wmoShowersMax      = 82
	wmoThunderstormMin = 95
)

// WeatherScore converts raw weather signals into a 0-10 sub-score.
// Baseline is 8; each present signal adjusts it independently and the
// result is clamped once at the end. Missing signals are skipped, so a
// fully absent input scores the plain baseline.
func WeatherScore(in WeatherInput) float64 {
	s := 8.0

	if in.WeatherCode != nil {
		switch c := *in.WeatherCode; {
		case c <= wmoPartlyCloudyMax:
			s += 2
		case c == wmoOvercast:
			// overcast is neutral
		case (c >= wmoDrizzleMin && c <= wmoRainMax) || (c >= wmoShowersMin && c <= wmoShowersMax):
			s -= 4
		case c >= wmoThunderstormMin:
			s -= 6
		}
	}
	if in.Precipitation != nil && *in.Precipitation > 50 {
		s -= 3
	}
	if in.WindSpeed != nil && *in.WindSpeed > 30 {
		s -= 2
	}
	if in.UVIndex != nil && *in.UVIndex > 10 {
		s--
	}

	return clamp(s, 0, 10)
}

// WeatherLabel maps a WMO code to a short human label for display.
func WeatherLabel(code *int) string {
	if code == nil {
		return "Unknown"
	}
	switch c := *code; {
	case c == 0:
		return "Sunny"
	case c <= wmoPartlyCloudyMax:
		return "Partly Cloudy"
	case c == wmoOvercast:
		return "Overcast"
	case c == 45 || c == 48:
		return "Hazy"
	case (c >= wmoDrizzleMin && c <= wmoRainMax) || (c >= wmoShowersMin && c <= wmoShowersMax):
		return "Rainy"
	case c >= wmoThunderstormMin:
		return "Stormy"
	default:
		return "Changing"
	}
}
