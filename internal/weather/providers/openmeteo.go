package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/galicia-weather-report/internal/common"
	"github.com/i474232898/galicia-weather-report/internal/weather"
)

const (
	// DefaultArchiveURL is the Open-Meteo historical weather endpoint.
	DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

	ArchiveStartDate = "2023-01-01"
	ArchiveEndDate   = "2023-12-31"
	ArchiveDaily     = "precipitation_sum,temperature_2m_max,temperature_2m_min"
)

// OpenMeteoArchive implements weather.Provider against the Open-Meteo archive API.
type OpenMeteoArchive struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoArchive creates the provider. An empty baseURL falls back to
// DefaultArchiveURL.
func NewOpenMeteoArchive(client *http.Client, baseURL string, backoff BackoffConfig) *OpenMeteoArchive {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}
	return &OpenMeteoArchive{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: backoff,
		},
		circuit: newCircuit("openmeteo-archive"),
	}
}

func (p *OpenMeteoArchive) Name() string {
	return p.name
}

// ArchiveURL returns the request URL for one location.
func (p *OpenMeteoArchive) ArchiveURL(lat, lon float64) string {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("start_date", ArchiveStartDate)
	values.Set("end_date", ArchiveEndDate)
	values.Set("daily", ArchiveDaily)
	values.Set("timezone", "auto")

	return fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
}

func (p *OpenMeteoArchive) FetchDaily(ctx context.Context, lat, lon float64) (weather.DailyWeather, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.ArchiveURL(lat, lon), nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		// Open-Meteo reports quota exhaustion as a 429 carrying the error marker.
		var statusErr *statusError
		if errors.As(err, &statusErr) && common.HasAny(string(statusErr.Body), weather.ErrorMarker) {
			return parseArchiveBody(lat, lon, statusErr.Body)
		}
		return weather.DailyWeather{}, &weather.TransportError{Latitude: lat, Longitude: lon, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.DailyWeather{}, &weather.TransportError{Latitude: lat, Longitude: lon, Err: err}
	}

	return parseArchiveBody(lat, lon, body)
}

func parseArchiveBody(lat, lon float64, body []byte) (weather.DailyWeather, error) {
	if common.HasAny(string(body), weather.ErrorMarker) {
		apiErr := &weather.APIError{Latitude: lat, Longitude: lon, Body: string(body)}

		var payload struct {
			Reason string `json:"reason"`
		}
		if json.Unmarshal(body, &payload) == nil {
			apiErr.Reason = payload.Reason
		}
		return weather.DailyWeather{}, apiErr
	}

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return weather.DailyWeather{}, &weather.DecodeError{Latitude: lat, Longitude: lon, Err: errNullBody}
	}

	var payload struct {
		Daily *weather.DailyWeather `json:"daily"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.DailyWeather{}, &weather.DecodeError{Latitude: lat, Longitude: lon, Err: err}
	}
	if payload.Daily == nil {
		return weather.DailyWeather{}, nil
	}
	return *payload.Daily, nil
}

// NewHTTPClient returns the shared client for outbound calls. A zero timeout
// leaves the transport default (no overall deadline).
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
