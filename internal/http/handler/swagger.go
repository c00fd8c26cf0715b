package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"

	"countrystats/docs"
)

// SwaggerUI serves the Swagger UI with the host and scheme of the current
// request. appHost is advertised when the request carries no Host header.
func SwaggerUI(appHost string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		// SwaggerInfo is package state and outlives the request buffers.
		docs.SwaggerInfo.Host = swaggerHost(utils.CopyString(c.Get(fiber.HeaderHost)), appHost)
		docs.SwaggerInfo.Schemes = []string{utils.CopyString(scheme)}

		return swagger.HandlerDefault(c)
	}
}

func swaggerHost(header, fallback string) string {
	if header != "" {
		return header
	}
	return fallback
}
