package scoring

// SargassumLevel is the categorical severity of seaweed accumulation.
type SargassumLevel string

const (
	SargassumNone     SargassumLevel = "none"
	SargassumMinimal  SargassumLevel = "minimal"
	SargassumLow      SargassumLevel = "low"
	SargassumModerate SargassumLevel = "moderate"
	SargassumMedium   SargassumLevel = "medium"
	SargassumHigh     SargassumLevel = "high"
	SargassumSevere   SargassumLevel = "severe"
)

// CrowdLevel is a heuristic, time-derived busyness estimate.
type CrowdLevel string

const (
	CrowdEmpty    CrowdLevel = "empty"
	CrowdQuiet    CrowdLevel = "quiet"
	CrowdModerate CrowdLevel = "moderate"
	CrowdBusy     CrowdLevel = "busy"
	CrowdCrowded  CrowdLevel = "crowded"
	CrowdPacked   CrowdLevel = "packed"
)

// WeatherInput holds the raw weather signals for one scoring pass.
// Every field is optional: a nil pointer means the provider call failed
// or the provider did not return that field.
type WeatherInput struct {
	Temperature   *float64
	Precipitation *float64 // probability, percent
	WindSpeed     *float64 // km/h
	UVIndex       *float64
	WeatherCode   *int // WMO weather interpretation code
}

// Input is the full per-venue scoring input, built fresh per request.
type Input struct {
	Sargassum SargassumLevel
	Crowd     CrowdLevel
	Weather   WeatherInput

	HasRestrooms bool
	HasShowers   bool
	HasFood      bool
	HasUmbrellas bool
	HasLifeguard bool

	DistanceKM            *float64
	ParkingAvailable      bool
	PublicTransportNearby bool
	Walkable              bool
}

// Factors is the per-factor breakdown behind a composite score.
type Factors struct {
	Sargassum     float64 `json:"sargassum"`
	Weather       float64 `json:"weather"`
	Crowd         float64 `json:"crowd"`
	Facilities    float64 `json:"facilities"`
	Accessibility float64 `json:"accessibility"`
}

// Result is the composite Tulum Score for one venue.
type Result struct {
	Score   float64 `json:"score"`
	Rating  string  `json:"rating"`
	Emoji   string  `json:"emoji"`
	Factors Factors `json:"factors"`
}
