package handler

import (
	"time"

	"go-inventory-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Health always answers 200 while the process is serving.
func Health(c *fiber.Ctx) error {
	return response.Message(c, "API funcionando correctamente", fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Index lists the API's resource roots.
func Index(appName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return response.Message(c, appName, fiber.Map{
			"endpoints": fiber.Map{
				"proveedores": "/api/proveedores",
				"inventario":  "/api/inventario",
				"dashboard":   "/api/dashboard/stats",
				"health":      "/api/health",
				"ws":          "/ws",
			},
		})
	}
}
