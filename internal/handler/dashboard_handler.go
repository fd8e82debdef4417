package handler

import (
	"strconv"

	"go-inventory-api/internal/service"
	"go-inventory-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetInventoryStats returns stock totals and valuation.
// Query params: low_stock (default 10)
func (h *DashboardHandler) GetInventoryStats(c *fiber.Ctx) error {
	lowStock, err := strconv.Atoi(c.Query("low_stock", strconv.Itoa(service.DefaultLowStockBelow)))
	if err != nil || lowStock <= 0 {
		lowStock = service.DefaultLowStockBelow
	}

	stats, err := h.service.GetInventoryStats(c.UserContext(), lowStock)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, stats)
}
