package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	logx "github.com/travel-planner-agent/server/pkg/logger"
	"github.com/travel-planner-agent/server/pkg/openweather"
)

// WeatherUnavailable is returned in place of a report on any failure.
const WeatherUnavailable = "Weather data unavailable."

const forecastEntries = 5

// WeatherSource is the provider contract used by the weather tool.
type WeatherSource interface {
	CurrentWeather(ctx context.Context, city string) (*openweather.Current, error)
	Forecast(ctx context.Context, city string) (*openweather.Forecast, error)
}

// WeatherLookup builds the weather tool's text from two provider calls.
type WeatherLookup struct {
	source WeatherSource
}

func NewWeatherLookup(source WeatherSource) *WeatherLookup {
	return &WeatherLookup{source: source}
}

// Lookup returns current conditions plus the first five forecast slots for
// city, or WeatherUnavailable. It never fails: a broken forecast with valid
// current data also yields WeatherUnavailable.
func (w *WeatherLookup) Lookup(ctx context.Context, city string) string {
	report, err := w.fetch(ctx, city)
	if err != nil {
		logx.Warn().Err(err).Str("city", city).Msg("Weather lookup failed")
		return WeatherUnavailable
	}
	return report
}

func (w *WeatherLookup) fetch(ctx context.Context, city string) (string, error) {
	if w == nil || w.source == nil {
		return "", fmt.Errorf("weather source is nil")
	}

	// Both requests go out before either body is inspected.
	current, curErr := w.source.CurrentWeather(ctx, city)
	forecast, fcErr := w.source.Forecast(ctx, city)
	if curErr != nil {
		return "", fmt.Errorf("current weather: %w", curErr)
	}
	if fcErr != nil {
		return "", fmt.Errorf("forecast: %w", fcErr)
	}

	entries, err := forecast.Entries(forecastEntries)
	if err != nil {
		return "", err
	}

	var lines strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&lines, "%s → %s°C, %s\n", *e.DtTxt, formatTemp(*e.Main.Temp), *e.Weather[0].Description)
	}

	return fmt.Sprintf("\nCurrent Weather in %s:\nTemperature: %s°C\nCondition: %s\n\n5-Day Forecast:\n%s\n",
		city, formatTemp(current.Temperature()), current.Description(), lines.String()), nil
}

func formatTemp(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
