package handler

import (
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"countrystats/internal/controller"
	"countrystats/internal/render"
)

// PageRenderer renders the full HTML document.
type PageRenderer interface {
	Page(w io.Writer, data render.PageData) error
}

// Index serves the idle page.
func Index(pages PageRenderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return sendOutcome(c, pages, "", &outcome{})
	}
}

// ShowAllPage runs the "show all" trigger and renders the page.
func ShowAllPage(actions controller.Actions, pages PageRenderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := &outcome{}
		actions.ShowAll(c.UserContext(), out)
		return sendOutcome(c, pages, "", out)
	}
}

// SearchPage runs the search trigger for the "name" form or query value.
// The submit control and the secondary search button both post here.
func SearchPage(actions controller.Actions, pages PageRenderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := utils.CopyString(c.FormValue("name"))
		out := &outcome{}
		actions.Search(c.UserContext(), query, out)
		return sendOutcome(c, pages, query, out)
	}
}

func sendOutcome(c *fiber.Ctx, pages PageRenderer, query string, out *outcome) error {
	data := render.PageData{Query: query}
	status := fiber.StatusOK

	switch out.state() {
	case controller.StateError:
		status, _ = failureStatus(out.failure.Kind)
		data.Error = out.failure.Message
	case controller.StateSuccess:
		data.Results = out.results.Fragment
	default:
		data.Idle = true
	}
	return sendPage(c, pages, status, data)
}

func sendPage(c *fiber.Ctx, pages PageRenderer, status int, data render.PageData) error {
	var buf bytes.Buffer
	if err := pages.Page(&buf, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
