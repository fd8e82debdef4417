package router

import (
	"go-inventory-api/internal/handler"
	"go-inventory-api/internal/middleware"
	"go-inventory-api/internal/ws"
	"go-inventory-api/pkg/jwt"
	"go-inventory-api/pkg/response"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Supplier  *handler.SupplierHandler
	Inventory *handler.InventoryHandler
	Dashboard *handler.DashboardHandler
}

// Options configures Setup. A nil Signer leaves write routes open; a nil
// Hub disables the /ws route.
type Options struct {
	AppName string
	Signer  *jwt.Signer
	Hub     *ws.Hub
}

// Setup registers every route on app, ending with the 404 catch-all.
func Setup(app *fiber.App, h Handlers, opts Options) {
	write := middleware.WriteGuard(opts.Signer)

	app.Get("/", handler.Index(opts.AppName))

	api := app.Group("/api")
	api.Get("/health", handler.Health)

	// Supplier routes; /todos must precede /:id
	proveedores := api.Group("/proveedores")
	proveedores.Get("/", h.Supplier.ListBrief)
	proveedores.Get("/todos", h.Supplier.ListAll)
	proveedores.Get("/:id", h.Supplier.Get)
	proveedores.Post("/", write, h.Supplier.Create)
	proveedores.Put("/:id", write, h.Supplier.Update)
	proveedores.Delete("/:id", write, h.Supplier.Delete)

	// Inventory routes; /proveedor/:id must precede /:id
	inventario := api.Group("/inventario")
	inventario.Get("/", h.Inventory.List)
	inventario.Get("/proveedor/:id", h.Inventory.ListBySupplier)
	inventario.Get("/:id", h.Inventory.Get)
	inventario.Post("/", write, h.Inventory.Create)
	inventario.Put("/:id", write, h.Inventory.Update)
	inventario.Delete("/:id", write, h.Inventory.Delete)

	api.Get("/dashboard/stats", h.Dashboard.GetInventoryStats)

	if opts.Hub != nil {
		mountChangeFeed(app, opts.Hub)
	}

	app.Use(response.RouteNotFound)
}

func mountChangeFeed(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		// clients only listen; reads detect disconnects
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
