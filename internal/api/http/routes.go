package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"shorecast/internal/conditions"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, aggregator *conditions.Aggregator) {
	v1 := app.Group("/api/v1")

	// Form submission boundary: runs the full pipeline for the queried
	// place and returns the aggregate view model.
	v1.Get("/conditions", func(c *fiber.Ctx) error {
		req, err := parseConditionsQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		result, err := aggregator.Submit(c.UserContext(), req.Place)
		if err != nil {
			var notFound *conditions.NotFoundError
			if errors.As(err, &notFound) {
				return fiber.NewError(fiber.StatusNotFound, notFound.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}

		return c.JSON(result)
	})

	// Current request state for a polling presentation layer.
	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(aggregator.State())
	})
}

// conditionsQuery holds query parameters for the conditions endpoint.
// Place may be empty; the aggregator substitutes the default place.
type conditionsQuery struct {
	Place string `validate:"omitempty,max=128"`
}

func parseConditionsQuery(c *fiber.Ctx) (conditionsQuery, error) {
	var q conditionsQuery

	q.Place = c.Query("place")

	if err := validate.Struct(q); err != nil {
		return q, err
	}

	return q, nil
}
