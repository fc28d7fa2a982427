package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/stock-recon/internal/application/dto"
	"github.com/invorya/stock-recon/internal/application/reconcile"
	"github.com/invorya/stock-recon/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP con un código
// estable por categoría. Un guardado de stock abortado responde 500 con la
// traza parcial, porque las escrituras previas ya quedaron persistidas y el
// operador necesita saber cuáles.
func respondError(c *fiber.Ctx, err error) error {
	var saveErr *reconcile.SaveError
	if errors.As(err, &saveErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    "SAVE_ABORTED",
			Message: saveErr.Error(),
			Trace:   toTraceResponse(saveErr.Trace),
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// toTraceResponse convierte la traza del protocolo al DTO de salida.
func toTraceResponse(entries []reconcile.TraceEntry) []dto.TraceEntryResponse {
	out := make([]dto.TraceEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.TraceEntryResponse{At: e.At, Message: e.Message})
	}
	return out
}
