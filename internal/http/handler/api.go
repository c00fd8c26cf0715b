package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"countrystats/internal/controller"
	"countrystats/internal/model"
)

// SummaryResponse is the JSON body of a successful summary request.
type SummaryResponse struct {
	Summary   model.AggregateResult `json:"summary"`
	Countries []CountryItem         `json:"countries"`
}

// CountryItem is one row of the per-country table.
type CountryItem struct {
	Name       string `json:"name"`
	Population int64  `json:"population"`
	Region     string `json:"region"`
}

// SummaryAll godoc
// @Summary Summarize all countries
// @Tags countries
// @Produce json
// @Success 200 {object} SummaryResponse
// @Failure 502 {object} errorPayload
// @Router /api/countries/summary [get]
func SummaryAll(actions controller.Actions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := &outcome{}
		actions.ShowAll(c.UserContext(), out)
		return sendJSON(c, out)
	}
}

// SummarySearch godoc
// @Summary Summarize countries matching a name
// @Tags countries
// @Produce json
// @Param name query string true "Country name fragment"
// @Success 200 {object} SummaryResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/countries/summary/search [get]
func SummarySearch(actions controller.Actions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := &outcome{}
		actions.Search(c.UserContext(), utils.CopyString(c.Query("name")), out)
		return sendJSON(c, out)
	}
}

func sendJSON(c *fiber.Ctx, out *outcome) error {
	switch out.state() {
	case controller.StateError:
		status, code := failureStatus(out.failure.Kind)
		return writeError(c, status, code, out.failure.Message)
	case controller.StateIdle:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	items := make([]CountryItem, 0, len(out.results.Countries))
	for _, ct := range out.results.Countries {
		items = append(items, CountryItem{
			Name:       ct.CommonName(),
			Population: int64(ct.Population),
			Region:     ct.EffectiveRegion(),
		})
	}
	return c.JSON(SummaryResponse{Summary: out.results.Summary, Countries: items})
}
