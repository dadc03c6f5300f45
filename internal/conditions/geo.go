package conditions

import "math"

// Default caller coordinate: Tulum centro.
const (
	DefaultLat = 20.2114
	DefaultLng = -87.4654
)

// Beach zone: the coastal strip south of town. Only club venues inside
// this box are scored.
const (
	beachZoneLatMin = 20.10
	beachZoneLatMax = 20.25
	beachZoneLngMin = -87.48
	beachZoneLngMax = -87.38
)

const earthRadiusKM = 6371.0

// Haversine returns the great-circle distance in kilometers between two
// coordinates.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func inBeachZone(lat, lng float64) bool {
	return lat >= beachZoneLatMin && lat <= beachZoneLatMax &&
		lng >= beachZoneLngMin && lng <= beachZoneLngMax
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
