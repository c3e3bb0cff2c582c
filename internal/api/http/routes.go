package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/surfaumaroc/surfcast/internal/contact"
	"github.com/surfaumaroc/surfcast/internal/geo"
	"github.com/surfaumaroc/surfcast/internal/news"
	"github.com/surfaumaroc/surfcast/internal/spots"
	"github.com/surfaumaroc/surfcast/internal/store"
	"github.com/surfaumaroc/surfcast/internal/surf"
	"github.com/surfaumaroc/surfcast/internal/videos"
)

var validate = validator.New()

// Services bundles everything the HTTP handlers need.
type Services struct {
	Surf    *surf.Service
	News    *news.Service
	Videos  *videos.Service
	Contact *contact.Service
	Geo     *geo.Geocoder
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc Services) {
	v1 := app.Group("/api/v1")

	v1.Get("/spots", func(c *fiber.Ctx) error {
		return c.JSON(spots.All())
	})

	// Registered before /spots/:id so "nearest" is not taken as an ID.
	v1.Get("/spots/nearest", func(c *fiber.Ctx) error {
		address := c.Query("address")
		if address == "" {
			return fiber.NewError(fiber.StatusBadRequest, "address query parameter is required")
		}
		if !svc.Geo.Enabled() {
			return fiber.NewError(fiber.StatusServiceUnavailable, "geocoding is not configured")
		}

		lat, lon, err := svc.Geo.Locate(address)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to geocode address")
		}

		return c.JSON(spots.Nearest(lat, lon))
	})

	v1.Get("/spots/:id", func(c *fiber.Ctx) error {
		spot, err := spots.Resolve(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "unknown surf spot")
		}
		return c.JSON(spot)
	})

	// Conditions always resolve to a well-formed record; unknown spots get
	// the default spot's data and provider failures get synthetic data.
	v1.Get("/spots/:id/conditions", func(c *fiber.Ctx) error {
		refresh := c.QueryBool("refresh")
		cond := svc.Surf.Current(c.Context(), c.Params("id"), refresh)
		return c.JSON(cond)
	})

	v1.Get("/spots/:id/forecast", func(c *fiber.Ctx) error {
		q := forecastQuery{Days: c.QueryInt("days")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(svc.Surf.Forecast(c.Context(), c.Params("id"), q.Days))
	})

	v1.Get("/spots/:id/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := svc.Surf.History(c.Params("id"), req.From, req.To)
		if err != nil {
			if errors.Is(err, spots.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "unknown surf spot")
			}
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no condition history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch condition history")
		}

		return c.JSON(fiber.Map{
			"spotId":    c.Params("id"),
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/news", func(c *fiber.Ctx) error {
		return c.JSON(svc.News.Latest(c.Context()))
	})

	v1.Get("/videos", func(c *fiber.Ctx) error {
		return c.JSON(svc.Videos.Search(c.Context()))
	})

	v1.Post("/contact", func(c *fiber.Ctx) error {
		var sub contact.Submission
		if err := c.BodyParser(&sub); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		rec, err := svc.Contact.Submit(c.Context(), sub)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"id":          rec.ID,
			"submittedAt": rec.SubmittedAt,
		})
	})
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Days int `validate:"required,min=1,max=7"`
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return validate.Struct(h)
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
