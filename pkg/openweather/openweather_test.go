package openweather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := Config{APIKey: "secret", BaseURL: srv.URL + "/"}
	return cfg.New()
}

func TestCurrentWeatherQuery(t *testing.T) {
	var got *http.Request
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"main":{"temp":18},"weather":[{"description":"clear sky"}]}`))
	})

	cur, err := c.CurrentWeather(context.Background(), "New York")
	require.NoError(t, err)
	assert.Equal(t, 18.0, cur.Temperature())
	assert.Equal(t, "clear sky", cur.Description())

	require.NotNil(t, got)
	assert.Equal(t, "/weather", got.URL.Path)
	assert.Equal(t, "New York", got.URL.Query().Get("q"))
	assert.Equal(t, "secret", got.URL.Query().Get("appid"))
	assert.Equal(t, "metric", got.URL.Query().Get("units"))
}

func TestCurrentWeatherMissingMain(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})

	_, err := c.CurrentWeather(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestCurrentWeatherEmptyConditions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main":{"temp":3.5},"weather":[]}`))
	})

	_, err := c.CurrentWeather(context.Background(), "Oslo")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestForecast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		_, _ = w.Write([]byte(`{"list":[{"dt_txt":"2024-05-01 12:00:00","main":{"temp":20.5},"weather":[{"description":"few clouds"}]}]}`))
	})

	fc, err := c.Forecast(context.Background(), "Paris")
	require.NoError(t, err)
	entries, err := fc.Entries(5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-05-01 12:00:00", *entries[0].DtTxt)
	assert.Equal(t, "few clouds", *entries[0].Weather[0].Description)
}

func TestCurrentWeatherMissingDescription(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"main":{"temp":18},"weather":[{"main":"Clear"}]}`))
	})

	_, err := c.CurrentWeather(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestForecastEntriesReadsOnlyFirstSlots(t *testing.T) {
	entry := `{"dt_txt":"2024-05-01 12:00:00","main":{"temp":1},"weather":[{"description":"rain"}]}`
	body := `{"list":[` + strings.Repeat(entry+",", 5) + `{"main":"broken","weather":7}]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	})

	fc, err := c.Forecast(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, fc.List, 6)

	entries, err := fc.Entries(5)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	_, err = fc.Entries(6)
	assert.Error(t, err)
}

func TestForecastEntriesMissingDescription(t *testing.T) {
	fc := &Forecast{List: []json.RawMessage{
		json.RawMessage(`{"dt_txt":"2024-05-01 12:00:00","main":{"temp":1},"weather":[{"id":800}]}`),
	}}
	_, err := fc.Entries(5)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestForecastMissingList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"cod":"401","message":"Invalid API key"}`))
	})

	_, err := c.Forecast(context.Background(), "Paris")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestForecastEntryValidate(t *testing.T) {
	assert.ErrorIs(t, (&ForecastEntry{}).Validate(), ErrMissingField)

	dt, temp := "2024-05-01 12:00:00", 1.0
	e := ForecastEntry{DtTxt: &dt, Main: &Reading{Temp: &temp}, Weather: []Condition{{}}}
	assert.ErrorIs(t, e.Validate(), ErrMissingField)
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.CurrentWeather(context.Background(), "Paris")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingField)
}

func TestDefaultBaseURL(t *testing.T) {
	c := (&Config{}).New()
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
