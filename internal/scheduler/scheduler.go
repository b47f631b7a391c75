package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/galicia-weather-report/internal/weather"
)

// ReportFunc receives every report produced by a scheduled run.
type ReportFunc func(weather.Report)

// Scheduler periodically produces a report for a fixed set of locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	locations []weather.Location
	interval  time.Duration
	cronExpr  string
	onReport  ReportFunc
}

// New creates a new Scheduler. Exactly one of interval and cronExpr should be
// set; cronExpr wins when both are.
func New(locations []weather.Location, interval time.Duration, cronExpr string, service *weather.Service, onReport ReportFunc) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// A slow run delays the next one instead of overlapping it.
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		service:   service,
		locations: locations,
		interval:  interval,
		cronExpr:  cronExpr,
		onReport:  onReport,
	}
}

// RunOnce produces a single report synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) weather.Report {
	log.Println("INFO: scheduler: running weather report job")
	report := s.service.Run(ctx, s.locations)
	if s.onReport != nil {
		s.onReport(report)
	}
	log.Printf("INFO: scheduler: completed run %s", report.RunID)
	return report
}

// Start schedules the job and starts the underlying scheduler. Interval jobs
// run once right away, cron jobs wait for their first match.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("INFO: scheduler: no locations configured; nothing to schedule")
		return nil
	}

	job := func() { s.RunOnce(context.Background()) }

	var err error
	if s.cronExpr != "" {
		_, err = s.scheduler.Cron(s.cronExpr).Do(job)
	} else {
		interval := s.interval
		if interval <= 0 {
			interval = 24 * time.Hour
		}
		_, err = s.scheduler.Every(interval).Do(job)
	}
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// Jobs returns the number of scheduled jobs.
func (s *Scheduler) Jobs() int {
	return len(s.scheduler.Jobs())
}
