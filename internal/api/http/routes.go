package httpapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/galicia-weather-report/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	// Fixed locations by default, a single custom location when both
	// coordinates are given.
	v1.Get("/report", func(c *fiber.Ctx) error {
		locs, err := parseReportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report := service.Run(c.UserContext(), locs)
		return c.JSON(report)
	})

	v1.Get("/locations", func(c *fiber.Ctx) error {
		return c.JSON(weather.FixedLocations())
	})
}

// coordinateQuery holds the optional query parameters for a custom location.
type coordinateQuery struct {
	Latitude  string `validate:"required,latitude"`
	Longitude string `validate:"required,longitude"`
}

func (q coordinateQuery) toLocation() weather.Location {
	lat, _ := strconv.ParseFloat(q.Latitude, 64)
	lon, _ := strconv.ParseFloat(q.Longitude, 64)
	return weather.CustomLocation(lat, lon)
}

func parseReportQuery(c *fiber.Ctx) ([]weather.Location, error) {
	q := coordinateQuery{
		Latitude:  c.Query("latitude"),
		Longitude: c.Query("longitude"),
	}

	if q.Latitude == "" && q.Longitude == "" {
		return weather.SelectLocations(weather.LocationModeFixed, weather.Location{}), nil
	}

	if err := validate.Struct(q); err != nil {
		return nil, err
	}

	return weather.SelectLocations(weather.LocationModeManual, q.toLocation()), nil
}
