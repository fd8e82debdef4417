// Package response shapes every API body into the same JSON envelope:
//
//	{"success": bool, "data": ..., "error": "...", "message": "...", "count": n}
package response

import (
	"errors"
	"log"

	"go-inventory-api/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// OK writes a 200 envelope carrying data.
func OK(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: data})
}

// List writes a 200 envelope carrying items and their count. A nil slice
// must not reach here; callers pass empty slices so data serializes as [].
func List[T any](c *fiber.Ctx, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Data: items, Count: &n})
}

// Created writes a 201 envelope.
func Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Message writes a 200 envelope with a confirmation message.
func Message(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Error maps err to its status and writes a failure envelope.
func Error(c *fiber.Ctx, err error) error {
	status, body := Failure(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("Error: %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(status).JSON(body)
}

// Failure returns the status and envelope for err without writing them.
func Failure(err error) (int, Envelope) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Kind.Status(), Envelope{Error: appErr.Title, Message: appErr.Message}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return fiberErr.Code, Envelope{Error: "Ruta no encontrada", Message: fiberErr.Message}
		case fiber.StatusMethodNotAllowed:
			return fiberErr.Code, Envelope{Error: "Método no permitido", Message: fiberErr.Message}
		default:
			return fiberErr.Code, Envelope{Error: fiberErr.Message, Message: fiberErr.Message}
		}
	}

	return fiber.StatusInternalServerError, Envelope{Error: "Error interno del servidor", Message: err.Error()}
}

// ErrorHandler is installed as fiber.Config.ErrorHandler so errors returned
// from handlers and middleware leave as envelopes too.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return Error(c, err)
}

// RouteNotFound is the catch-all handler registered after every route.
func RouteNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(Envelope{
		Error:   "Ruta no encontrada",
		Message: "La ruta " + c.OriginalURL() + " no existe",
	})
}
