package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const DefaultBaseURL = "http://api.openweathermap.org/data/2.5"

// ErrMissingField is returned when a provider payload lacks a field the
// planner depends on. OpenWeatherMap error bodies ({"cod":"404",...}) land here.
var ErrMissingField = errors.New("openweather: missing field")

type Config struct {
	APIKey  string        `envconfig:"OPENWEATHER_API_KEY"`
	BaseURL string        `envconfig:"OPENWEATHER_BASE_URL" default:"http://api.openweathermap.org/data/2.5"`
	Timeout time.Duration `envconfig:"OPENWEATHER_TIMEOUT" default:"15s"`
}

// Client talks to the OpenWeatherMap 2.5 REST API in metric units.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func (c *Config) New() *Client {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		apiKey:     c.APIKey,
		baseURL:    base,
		httpClient: &http.Client{Timeout: c.Timeout},
	}
}

// Condition is one entry of the provider's "weather" array.
type Condition struct {
	Description *string `json:"description"`
}

// Reading holds the "main" block.
type Reading struct {
	Temp *float64 `json:"temp"`
}

// Current is the subset of /weather the planner consumes.
type Current struct {
	Main    *Reading    `json:"main"`
	Weather []Condition `json:"weather"`
}

// Temperature returns main.temp in °C.
func (c *Current) Temperature() float64 {
	return *c.Main.Temp
}

// Description returns weather[0].description.
func (c *Current) Description() string {
	return *c.Weather[0].Description
}

// ForecastEntry is one 3-hour slot of /forecast.
type ForecastEntry struct {
	DtTxt   *string     `json:"dt_txt"`
	Main    *Reading    `json:"main"`
	Weather []Condition `json:"weather"`
}

// Forecast is the subset of /forecast the planner consumes. Entries stay
// raw until Entries decodes them, so slots past the ones read are never
// inspected.
type Forecast struct {
	List []json.RawMessage `json:"list"`
}

// Entries decodes and validates the first n slots.
func (f *Forecast) Entries(n int) ([]ForecastEntry, error) {
	raw := f.List
	if len(raw) > n {
		raw = raw[:n]
	}
	out := make([]ForecastEntry, len(raw))
	for i, r := range raw {
		if err := sonic.Unmarshal(r, &out[i]); err != nil {
			return nil, fmt.Errorf("openweather: decode forecast entry %d: %w", i, err)
		}
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("forecast entry %d: %w", i, err)
		}
	}
	return out, nil
}

// CurrentWeather fetches current conditions for city.
// The body is decoded regardless of status code; a body without "main"
// reports ErrMissingField.
func (c *Client) CurrentWeather(ctx context.Context, city string) (*Current, error) {
	var out Current
	if err := c.get(ctx, "weather", city, &out); err != nil {
		return nil, err
	}
	if out.Main == nil {
		return nil, fmt.Errorf("%w: main", ErrMissingField)
	}
	if out.Main.Temp == nil {
		return nil, fmt.Errorf("%w: main.temp", ErrMissingField)
	}
	if len(out.Weather) == 0 {
		return nil, fmt.Errorf("%w: weather[0]", ErrMissingField)
	}
	if out.Weather[0].Description == nil {
		return nil, fmt.Errorf("%w: weather[0].description", ErrMissingField)
	}
	return &out, nil
}

// Forecast fetches the 5-day/3-hour forecast for city.
func (c *Client) Forecast(ctx context.Context, city string) (*Forecast, error) {
	var out struct {
		List *[]json.RawMessage `json:"list"`
	}
	if err := c.get(ctx, "forecast", city, &out); err != nil {
		return nil, err
	}
	if out.List == nil {
		return nil, fmt.Errorf("%w: list", ErrMissingField)
	}
	return &Forecast{List: *out.List}, nil
}

// Validate checks that an entry carries dt_txt, main.temp and
// weather[0].description.
func (e *ForecastEntry) Validate() error {
	switch {
	case e.DtTxt == nil:
		return fmt.Errorf("%w: dt_txt", ErrMissingField)
	case e.Main == nil || e.Main.Temp == nil:
		return fmt.Errorf("%w: main.temp", ErrMissingField)
	case len(e.Weather) == 0:
		return fmt.Errorf("%w: weather[0]", ErrMissingField)
	case e.Weather[0].Description == nil:
		return fmt.Errorf("%w: weather[0].description", ErrMissingField)
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint, city string, out any) error {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("openweather: create %s request: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openweather: %s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("openweather: read %s response: %w", endpoint, err)
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("openweather: decode %s response (status %d): %w", endpoint, resp.StatusCode, err)
	}
	return nil
}
