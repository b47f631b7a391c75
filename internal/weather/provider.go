package weather

import (
	"context"
)

// Provider abstracts a daily weather archive source (e.g. Open-Meteo).
//
// FetchDaily performs a single best-effort request and returns an *APIError,
// *TransportError or *DecodeError on failure.
type Provider interface {
	Name() string
	FetchDaily(ctx context.Context, lat, lon float64) (DailyWeather, error)
}
