package httpapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
//
// The resolved Location is owned by the caller and sent back on every
// weather request as city, lat, lng and tz query parameters.
func RegisterRoutes(app *fiber.App, resolver *weather.Resolver, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/location", func(c *fiber.Ctx) error {
		q := placeQuery{Place: c.Query("place")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		loc, err := resolver.ResolveByName(c.UserContext(), q.Place)
		if err != nil {
			return toFiberError(err, "failed to resolve location")
		}
		return c.JSON(loc)
	})

	v1.Get("/location/ip", func(c *fiber.Ctx) error {
		loc, err := resolver.ResolveByIP(c.UserContext(), c.IP())
		if err != nil {
			return toFiberError(err, "failed to resolve location from ip")
		}
		return c.JSON(loc)
	})

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		current, err := service.CurrentConditions(c.UserContext(), loc)
		if err != nil {
			return toFiberError(err, "failed to fetch current conditions")
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"current":  current,
		})
	})

	v1.Get("/weather/daily", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days, err := service.DailyForecast(c.UserContext(), loc)
		if err != nil {
			return toFiberError(err, "failed to fetch daily forecast")
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"daily":    days,
		})
	})

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q := dateQuery{Date: c.Query("date")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		hours, err := service.HourlyForecast(c.UserContext(), loc, q.Date)
		if err != nil {
			return toFiberError(err, "failed to fetch hourly forecast")
		}
		return c.JSON(fiber.Map{
			"location": loc,
			"date":     q.Date,
			"hourly":   hours,
		})
	})

	v1.Get("/weather/astronomy", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		record, err := service.Astronomy(c.UserContext(), loc)
		if err != nil {
			return toFiberError(err, "failed to fetch astronomy data")
		}
		return c.JSON(fiber.Map{
			"location":  loc,
			"astronomy": record,
		})
	})
}

// toFiberError maps core errors to HTTP statuses. Upstream problems are 502
// so the page can show that data is unavailable.
func toFiberError(err error, msg string) error {
	switch {
	case errors.Is(err, weather.ErrLocationNotFound):
		return fiber.NewError(fiber.StatusNotFound, "location not found")
	case errors.Is(err, weather.ErrInvalidDate):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrUpstreamUnavailable), errors.Is(err, weather.ErrMalformedResponse):
		log.Printf("ERROR: %s: %v", msg, err)
		return fiber.NewError(fiber.StatusBadGateway, msg)
	default:
		log.Printf("ERROR: %s: %v", msg, err)
		return fiber.NewError(fiber.StatusInternalServerError, msg)
	}
}

type placeQuery struct {
	Place string `validate:"required"`
}

type dateQuery struct {
	Date string `validate:"required,datetime=2006-01-02"`
}

// locationQuery holds query parameters identifying a resolved location.
type locationQuery struct {
	City     string `validate:"required"`
	Lat      string `validate:"required,latitude"`
	Lng      string `validate:"required,longitude"`
	Timezone string `validate:"required,timezone"`
}

func (l locationQuery) toLocation() weather.Location {
	return weather.Location{
		City:        l.City,
		Coordinates: weather.Coordinates{Lat: l.Lat, Lng: l.Lng},
		Timezone:    l.Timezone,
	}
}

func parseLocationQuery(c *fiber.Ctx) (weather.Location, error) {
	q := locationQuery{
		City:     c.Query("city"),
		Lat:      c.Query("lat"),
		Lng:      c.Query("lng"),
		Timezone: c.Query("tz"),
	}
	if err := validate.Struct(q); err != nil {
		return weather.Location{}, err
	}
	return q.toLocation(), nil
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
