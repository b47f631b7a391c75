package weather

import (
	"context"
	"errors"
	"log"

	"github.com/i474232898/galicia-weather-report/internal/obs"
)

var errNoProvider = errors.New("no weather provider configured")

// FailureFunc is notified of every location that contributed no data.
type FailureFunc func(loc Location, err error)

// Service fetches daily archives location by location and summarises them.
type Service struct {
	provider  Provider
	policy    AveragePolicy
	onFailure FailureFunc
}

// Option customises a Service.
type Option func(*Service)

// WithAveragePolicy overrides the default AverageZeroFill policy.
func WithAveragePolicy(p AveragePolicy) Option {
	return func(s *Service) { s.policy = p }
}

// WithFailureHandler registers fn to be called as soon as a fetch fails.
func WithFailureHandler(fn FailureFunc) Option {
	return func(s *Service) { s.onFailure = fn }
}

// NewService creates a new Service.
func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{provider: provider}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the configured average policy.
func (s *Service) Policy() AveragePolicy {
	return s.policy
}

// Collect fetches every location sequentially, in order. Failed locations are
// reported to the failure handler and left out of the returned slice.
func (s *Service) Collect(ctx context.Context, locations []Location) ([]LocationWeather, []FetchFailure) {
	var (
		results  []LocationWeather
		failures []FetchFailure
	)

	for _, loc := range locations {
		daily, err := s.fetch(ctx, loc)
		if err != nil {
			log.Printf("ERROR: fetch failed for %s: %v", loc.Key(), err)
			failures = append(failures, FetchFailure{
				Location: loc,
				Kind:     FailureKind(err),
				Message:  err.Error(),
			})
			if s.onFailure != nil {
				s.onFailure(loc, err)
			}
			continue
		}
		results = append(results, LocationWeather{Location: loc, Daily: daily})
	}

	return results, failures
}

// Run collects and summarises locations into a Report tagged with a fresh run id.
func (s *Service) Run(ctx context.Context, locations []Location) Report {
	ctx, runID := obs.WithRunID(ctx)
	log.Printf("INFO: run_id=%s report for %d location(s)", runID, len(locations))

	results, failures := s.Collect(ctx, locations)

	report := Summarize(results, s.policy)
	report.RunID = runID
	report.Failures = failures
	return report
}

func (s *Service) fetch(ctx context.Context, loc Location) (_ DailyWeather, err error) {
	if s.provider == nil {
		return DailyWeather{}, errNoProvider
	}
	defer obs.Time(ctx, s.provider.Name()+".fetchDaily")(&err)

	return s.provider.FetchDaily(ctx, loc.Latitude, loc.Longitude)
}
