package infra

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"trailhub/internal/config"
	"trailhub/pkg/metrics"
)

var ErrWeatherUpstream = errors.New("weather upstream failure")

type WeatherProvider interface {
	// Current returns a one-line description of the current weather.
	Current(ctx context.Context, lat, lng float64) (string, error)
}

type currentWeather struct {
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

type forecastResponse struct {
	CurrentWeather *currentWeather `json:"current_weather"`
}

// OpenMeteoClient queries the Open-Meteo forecast API behind a circuit
// breaker so a failing upstream is not hammered by admin refreshes.
type OpenMeteoClient struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker[string]
	log     *zap.Logger
}

func NewOpenMeteoClient(cfg config.Weather, log *zap.Logger) *OpenMeteoClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	l := log.Named("weather")
	settings := gobreaker.Settings{
		Name:        "open-meteo",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	return &OpenMeteoClient{
		http:    client,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
		log:     l,
	}
}

func (c *OpenMeteoClient) Current(ctx context.Context, lat, lng float64) (string, error) {
	info, err := c.breaker.Execute(func() (string, error) {
		return c.fetch(ctx, lat, lng)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordWeatherRequest("open")
		return "", fmt.Errorf("%w: %v", ErrWeatherUpstream, err)
	case err != nil:
		metrics.RecordWeatherRequest("error")
		c.log.Warn("weather lookup failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrWeatherUpstream, err)
	}
	metrics.RecordWeatherRequest("ok")
	return info, nil
}

func (c *OpenMeteoClient) fetch(ctx context.Context, lat, lng float64) (string, error) {
	var out forecastResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":        strconv.FormatFloat(lat, 'f', 4, 64),
			"longitude":       strconv.FormatFloat(lng, 'f', 4, 64),
			"current_weather": "true",
		}).
		SetResult(&out).
		Get("/v1/forecast")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("open-meteo status %d", resp.StatusCode())
	}
	if out.CurrentWeather == nil {
		return "", errors.New("open-meteo response without current_weather")
	}
	return FormatWeather(*out.CurrentWeather), nil
}

func FormatWeather(w currentWeather) string {
	return fmt.Sprintf("%.1f°C, wind %.1f km/h, %s", w.Temperature, w.WindSpeed, describeWeatherCode(w.WeatherCode))
}

// WMO weather interpretation codes.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 3:
		return "partly cloudy"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case code >= 61 && code <= 67:
		return "rain"
	case code >= 71 && code <= 77:
		return "snow"
	case code >= 80 && code <= 82:
		return "rain showers"
	case code == 85 || code == 86:
		return "snow showers"
	case code >= 95:
		return "thunderstorm"
	default:
		return "unknown conditions"
	}
}
