package service

import (
	"errors"
	"fmt"

	"go-inventory-api/internal/repository"
	"go-inventory-api/pkg/apperror"
	"go-inventory-api/pkg/database"
	"go-inventory-api/pkg/formval"
	"go-inventory-api/pkg/validator"
)

func supplierNotFound(id uint) error {
	return apperror.NotFound("Proveedor no encontrado", fmt.Sprintf("No existe un proveedor con ID %d", id))
}

func itemNotFound(id uint) error {
	return apperror.NotFound("Producto no encontrado", fmt.Sprintf("No existe un producto con ID %d", id))
}

func supplierInvalid(id uint) error {
	return apperror.ForeignKeyInvalid("Proveedor no válido", fmt.Sprintf("No existe un proveedor con ID %d", id))
}

func emailTaken() error {
	return apperror.Conflict("Email duplicado", "Ya existe un proveedor con este email")
}

func supplierInUse(items int64) error {
	return apperror.Conflict("No se puede eliminar",
		fmt.Sprintf("Este proveedor tiene %d producto(s) asociados en el inventario", items))
}

// fieldErrors turns validator output into a single client error. Missing
// required fields win over every other failure so the client always learns
// about them first.
func fieldErrors(errs []*validator.ErrorResponse, requiredMsg string) error {
	if len(errs) == 0 {
		return nil
	}
	for _, e := range errs {
		if e.Tag == "required" {
			return apperror.Validation("Campos requeridos faltantes", requiredMsg)
		}
	}
	first := errs[0]
	switch first.Tag {
	case validator.TagSimpleEmail:
		return apperror.InvalidFormat("Email inválido", "El formato del email no es válido")
	case "max":
		return apperror.Validation("Valor demasiado largo",
			fmt.Sprintf("El campo %s admite como máximo %s caracteres", first.FailedField, first.Value))
	default:
		return apperror.Validation("Datos inválidos",
			fmt.Sprintf("El campo %s no es válido (%s)", first.FailedField, first.Tag))
	}
}

// numberError explains why a stock or cost value was rejected.
func numberError(title, field string, err error) error {
	switch {
	case errors.Is(err, formval.ErrNegative):
		return apperror.Validation(title, fmt.Sprintf("El %s no puede ser negativo", field))
	case errors.Is(err, formval.ErrOutOfRange):
		return apperror.Validation(title, fmt.Sprintf("El %s excede el valor máximo permitido", field))
	default:
		return apperror.Validation(title, fmt.Sprintf("El %s debe ser un valor numérico", field))
	}
}

// translateWrite maps what a write transaction returned to a client error.
// Errors already classified pass through; constraint violations the checks
// inside the transaction should have prevented are still classified, in
// case another writer slipped past them.
func translateWrite(err error, title string, onUnique, onForeignKey func() error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case database.IsUniqueViolation(err) && onUnique != nil:
		return onUnique()
	case database.IsForeignKeyViolation(err) && onForeignKey != nil:
		return onForeignKey()
	case database.IsCheckViolation(err):
		return apperror.Validation("Datos inválidos", "El stock y el costo unitario no pueden ser negativos")
	case database.IsNotNullViolation(err):
		return apperror.Validation("Campos requeridos faltantes", "Falta un valor obligatorio")
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(title, "El registro ya no existe")
	}
	return apperror.Internal(title, err)
}
