package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"countrystats/internal/controller"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// A nil gatherer leaves /metrics unregistered.
func RegisterRoutes(app *fiber.App, actions controller.Actions, pages PageRenderer, gatherer prometheus.Gatherer) {
	app.Get("/", Index(pages))
	app.Get("/all", ShowAllPage(actions, pages))
	app.Get("/search", SearchPage(actions, pages))
	app.Post("/search", SearchPage(actions, pages))

	api := app.Group("/api/countries")
	api.Get("/summary", SummaryAll(actions))
	api.Get("/summary/search", SummarySearch(actions))

	app.Get("/healthz", LivenessProbe())

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// LivenessProbe reports that the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
