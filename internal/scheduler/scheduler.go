package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Scheduler periodically resolves the watched places and logs their current
// conditions. Nothing is kept between runs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	resolver  *weather.Resolver
	service   *weather.Service
	places    []string
	interval  time.Duration
}

// New creates a new Scheduler.
func New(places []string, interval time.Duration, resolver *weather.Resolver, service *weather.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		resolver:  resolver,
		service:   service,
		places:    places,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.places) == 0 {
		log.Println("scheduler: no places configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce checks every watched place one after another. Log lines of one
// run share a run id.
func (s *Scheduler) RunOnce() {
	run := uuid.NewString()
	log.Printf("scheduler: running weather watch job run=%s", run)
	for _, place := range s.places {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		s.check(ctx, run, place)
		cancel()
	}
	log.Printf("scheduler: completed weather watch job run=%s", run)
}

func (s *Scheduler) check(ctx context.Context, run, place string) {
	loc, err := s.resolver.ResolveByName(ctx, place)
	if err != nil {
		log.Printf("scheduler: run=%s resolve failed for %q: %v", run, place, err)
		return
	}

	current, err := s.service.CurrentConditions(ctx, loc)
	if err != nil {
		log.Printf("scheduler: run=%s current conditions failed for %s: %v", run, loc.Key(), err)
		return
	}

	log.Printf("INFO: run=%s %s (%s) %s %s: %.1f°C feels %.1f°C, %s, wind %.1f %s, visibility %.2f km",
		run, loc.City, loc.Timezone, current.Date, current.Time,
		current.Temperature.Current, current.Temperature.Apparent, current.Condition,
		current.Wind.Speed, current.Wind.Compass, current.Visibility)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
