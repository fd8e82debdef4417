package handler

import (
	"go-inventory-api/internal/service"
	"go-inventory-api/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type SupplierHandler struct {
	service service.SupplierService
}

func NewSupplierHandler(s service.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: s}
}

// ListBrief returns id and company name of every supplier, for selectors.
func (h *SupplierHandler) ListBrief(c *fiber.Ctx) error {
	suppliers, err := h.service.ListBrief(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, suppliers)
}

func (h *SupplierHandler) ListAll(c *fiber.Ctx) error {
	suppliers, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return response.Error(c, err)
	}
	return response.List(c, suppliers)
}

func (h *SupplierHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	supplier, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.OK(c, supplier)
}

func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var req service.SupplierRequest
	if err := parseBody(c, &req); err != nil {
		return response.Error(c, err)
	}

	supplier, err := h.service.Create(c.UserContext(), &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, "Proveedor creado exitosamente", supplier)
}

func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	var req service.SupplierRequest
	if err := parseBody(c, &req); err != nil {
		return response.Error(c, err)
	}

	supplier, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Proveedor actualizado exitosamente", supplier)
}

func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return response.Error(c, err)
	}

	supplier, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Proveedor eliminado exitosamente", supplier)
}
