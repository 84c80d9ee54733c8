package weather

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const dateLayout = "2006-01-02"

// Service fetches weather data for a resolved Location and normalizes it.
// It never mutates the Location it is given and keeps no state between calls.
type Service struct {
	forecast ForecastSource
	sun      SunSource
	moon     MoonSource
}

// NewService creates a new Service.
func NewService(forecast ForecastSource, sun SunSource, moon MoonSource) *Service {
	return &Service{
		forecast: forecast,
		sun:      sun,
		moon:     moon,
	}
}

// CurrentConditions returns the latest observation for loc.
func (s *Service) CurrentConditions(ctx context.Context, loc Location) (CurrentConditions, error) {
	snap, err := s.forecast.Current(ctx, loc, CurrentFields)
	if err != nil {
		return CurrentConditions{}, err
	}
	return mapCurrent(snap)
}

// DailyForecast returns one entry per forecast day in provider order.
func (s *Service) DailyForecast(ctx context.Context, loc Location) ([]DailyForecastEntry, error) {
	cols, err := s.forecast.Daily(ctx, loc, DailyFields)
	if err != nil {
		return nil, err
	}
	if err := cols.Check(DailyFields); err != nil {
		return nil, fmt.Errorf("%s daily: %w", s.forecast.Name(), err)
	}

	days := make([]DailyForecastEntry, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		day, err := mapDaily(cols, i)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	log.Printf("DEBUG: daily forecast for %s: %d days", loc.Key(), len(days))
	return days, nil
}

// HourlyForecast returns the hours of date (YYYY-MM-DD) in loc's timezone.
func (s *Service) HourlyForecast(ctx context.Context, loc Location, date string) ([]HourlyForecastEntry, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}

	cols, err := s.forecast.Hourly(ctx, loc, date, HourlyFields)
	if err != nil {
		return nil, err
	}
	if err := cols.Check(HourlyFields); err != nil {
		return nil, fmt.Errorf("%s hourly: %w", s.forecast.Name(), err)
	}

	hours := make([]HourlyForecastEntry, 0, cols.Len())
	for i := 0; i < cols.Len(); i++ {
		hour, err := mapHourly(cols, i)
		if err != nil {
			return nil, err
		}
		if hour.Date != date {
			return nil, fmt.Errorf("%w: hour %s %s outside requested date %s", ErrMalformedResponse, hour.Date, hour.Time, date)
		}
		hours = append(hours, hour)
	}
	return hours, nil
}

// Astronomy merges sun events for loc with today's moon events for loc.City.
// Both calls run concurrently; either failing fails the whole record.
func (s *Service) Astronomy(ctx context.Context, loc Location) (AstronomyRecord, error) {
	var (
		wg            sync.WaitGroup
		sun           SunTimes
		moon          MoonTimes
		sunErr, mnErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sun, sunErr = s.sun.SunTimes(ctx, loc)
	}()
	go func() {
		defer wg.Done()
		moon, mnErr = s.moon.MoonTimes(ctx, loc.City)
	}()
	wg.Wait()

	if sunErr != nil {
		log.Printf("provider %s failed for %s: %v", s.sun.Name(), loc.Key(), sunErr)
		return AstronomyRecord{}, sunErr
	}
	if mnErr != nil {
		log.Printf("provider %s failed for %s: %v", s.moon.Name(), loc.Key(), mnErr)
		return AstronomyRecord{}, mnErr
	}

	return AstronomyRecord{
		Date: moon.Date,
		Sun:  sun,
		Moon: moon,
	}, nil
}
