package handler

import (
	"go-inventory-api/internal/service"
	"go-inventory-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.service.List(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, items)
}

// ListBySupplier returns an empty list for suppliers without items or
// unknown ids.
func (h *InventoryHandler) ListBySupplier(c *fiber.Ctx) error {
	supplierID, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	items, err := h.service.ListBySupplier(c.UserContext(), supplierID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, items)
}

func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, item)
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var req service.InventoryRequest
	if err := parseBody(c, &req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Producto agregado al inventario exitosamente", item)
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req service.InventoryRequest
	if err := parseBody(c, &req); err != nil {
		return response.Error(c, err)
	}

	item, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Producto actualizado exitosamente", item)
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	item, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Producto eliminado del inventario exitosamente", item)
}
