package handler

import (
	"go-inventory-api/pkg/apperror"
	"go-inventory-api/pkg/formval"

	"github.com/gofiber/fiber/v2"
)

// paramID parses the :id path parameter as a positive integer.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := formval.ParseID(c.Params("id"))
	if err != nil {
		return 0, apperror.Validation("ID inválido", "El ID debe ser un número entero positivo")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperror.Validation("JSON inválido", "El cuerpo de la petición no es un JSON válido")
	}
	return nil
}
