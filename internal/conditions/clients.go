package conditions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// newBreaker returns the circuit breaker guarding one upstream host.
// One attempt per request; there is no retry anywhere in this engine,
// the breaker only sheds load from a host that keeps failing.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doGet performs a GET through the breaker and decodes the JSON
// response into dst.
func doGet(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, rawURL string, dst any) error {
	_, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request for %s: %w", rawURL, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", rawURL, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("GET %s returned status %d", rawURL, resp.StatusCode)
		}

		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			return nil, fmt.Errorf("decoding response from %s: %w", rawURL, err)
		}

		return nil, nil
	})
	return err
}

// ---- Open-Meteo forecast ----

// WeatherClient fetches current weather plus daily sun/UV data from
// Open-Meteo (no API key required).
type WeatherClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

const openMeteoDefaultURL = "https://api.open-meteo.com/v1/forecast"

// NewWeatherClient constructs a WeatherClient against the production API.
func NewWeatherClient(client *http.Client) *WeatherClient {
	return &WeatherClient{baseURL: openMeteoDefaultURL, client: client, breaker: newBreaker("open-meteo")}
}

// NewWeatherClientWithURL constructs a WeatherClient pointing at a custom base URL (for tests).
func NewWeatherClientWithURL(client *http.Client, baseURL string) *WeatherClient {
	return &WeatherClient{baseURL: baseURL, client: client, breaker: newBreaker("open-meteo")}
}

type openMeteoResponse struct {
	Current struct {
		Temperature2M       *float64 `json:"temperature_2m"`
		ApparentTemperature *float64 `json:"apparent_temperature"`
		RelativeHumidity2M  *float64 `json:"relative_humidity_2m"`
		WeatherCode         *int     `json:"weather_code"`
		WindSpeed10M        *float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Daily struct {
		UVIndexMax []float64 `json:"uv_index_max"`
		Sunrise    []string  `json:"sunrise"`
		Sunset     []string  `json:"sunset"`
	} `json:"daily"`
	Hourly struct {
		PrecipitationProbability []float64 `json:"precipitation_probability"`
	} `json:"hourly"`
}

// Fetch retrieves current weather for the given coordinate.
func (c *WeatherClient) Fetch(ctx context.Context, lat, lng float64) (*WeatherReport, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lng))
	values.Set("current", "temperature_2m,apparent_temperature,relative_humidity_2m,weather_code,wind_speed_10m")
	values.Set("daily", "uv_index_max,sunrise,sunset")
	values.Set("hourly", "precipitation_probability")
	values.Set("forecast_days", "1")
	values.Set("timezone", "America/Cancun")

	endpoint := c.baseURL + "?" + values.Encode()

	var raw openMeteoResponse
	if err := doGet(ctx, c.client, c.breaker, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("open-meteo fetch: %w", err)
	}

	report := &WeatherReport{
		Temperature:         raw.Current.Temperature2M,
		ApparentTemperature: raw.Current.ApparentTemperature,
		Humidity:            raw.Current.RelativeHumidity2M,
		WindSpeed:           raw.Current.WindSpeed10M,
		WeatherCode:         raw.Current.WeatherCode,
	}

	if len(raw.Daily.UVIndexMax) > 0 {
		uv := raw.Daily.UVIndexMax[0]
		report.UVIndexMax = &uv
	}
	if len(raw.Daily.Sunrise) > 0 {
		report.Sunrise = raw.Daily.Sunrise[0]
	}
	if len(raw.Daily.Sunset) > 0 {
		report.Sunset = raw.Daily.Sunset[0]
	}

	// Hourly probabilities are provider-local, one entry per hour of today.
	if hour := time.Now().In(tzTulum).Hour(); hour < len(raw.Hourly.PrecipitationProbability) {
		p := raw.Hourly.PrecipitationProbability[hour]
		report.PrecipProbability = &p
	}

	return report, nil
}

// ---- Open-Meteo marine ----

// MarineClient fetches sea-surface temperature from the Open-Meteo
// marine API (no API key required).
type MarineClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

const marineDefaultURL = "https://marine-api.open-meteo.com/v1/marine"

// NewMarineClient constructs a MarineClient against the production API.
func NewMarineClient(client *http.Client) *MarineClient {
	return &MarineClient{baseURL: marineDefaultURL, client: client, breaker: newBreaker("open-meteo-marine")}
}

// NewMarineClientWithURL constructs a MarineClient pointing at a custom base URL (for tests).
func NewMarineClientWithURL(client *http.Client, baseURL string) *MarineClient {
	return &MarineClient{baseURL: baseURL, client: client, breaker: newBreaker("open-meteo-marine")}
}

type marineResponse struct {
	Current struct {
		SeaSurfaceTemperature *float64 `json:"sea_surface_temperature"`
	} `json:"current"`
}

// Fetch retrieves the current sea-surface temperature for the given coordinate.
func (c *MarineClient) Fetch(ctx context.Context, lat, lng float64) (*float64, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lng))
	values.Set("current", "sea_surface_temperature")

	endpoint := c.baseURL + "?" + values.Encode()

	var raw marineResponse
	if err := doGet(ctx, c.client, c.breaker, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("open-meteo marine fetch: %w", err)
	}

	return raw.Current.SeaSurfaceTemperature, nil
}
