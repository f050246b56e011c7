package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
)

// ErrorHandler traduce los errores de dominio a respuestas HTTP con dto.ErrorResponse.
// Solo los 5xx se registran en el log.
func ErrorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Int("status", status).
				Msg("error procesando petición")
		}
		return c.Status(status).JSON(body)
	}
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		fiberErr      *fiber.Error
		validationErr *ValidationError
		stockErr      *domain.InsufficientStockError
		serialErr     *domain.SerialStateError
	)
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Details: validationErr.Details(),
		}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.ErrorResponse{Code: httpCode(fiberErr.Code), Message: fiberErr.Message}

	// El libro inconsistente es un bug, nunca un error del cliente: va antes que los demás.
	case errors.Is(err, domain.ErrLedgerInconsistency):
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "LEDGER_INCONSISTENCY", Message: err.Error()}

	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()}

	case errors.As(err, &stockErr):
		code := "INSUFFICIENT_STOCK"
		if errors.Is(err, domain.ErrInsufficientDirtyStock) {
			code = "INSUFFICIENT_DIRTY_STOCK"
		}
		details := map[string]any{
			"product_id": stockErr.ProductID,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
		}
		if stockErr.WarehouseID != "" {
			details["warehouse_id"] = stockErr.WarehouseID
		}
		if stockErr.Bucket != "" {
			details["bucket"] = stockErr.Bucket
		}
		if stockErr.Reserved > 0 {
			details["reserved"] = stockErr.Reserved
		}
		return fiber.StatusConflict, dto.ErrorResponse{Code: code, Message: err.Error(), Details: details}
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()}

	case errors.As(err, &serialErr):
		code := "SERIAL_UNAVAILABLE"
		if errors.Is(err, domain.ErrSerialInUse) {
			code = "SERIAL_IN_USE"
		}
		return fiber.StatusConflict, dto.ErrorResponse{Code: code, Message: err.Error(), Details: map[string]any{
			"serial_id":     serialErr.SerialID,
			"serial_number": serialErr.Serial,
			"status":        serialErr.Status,
		}}
	case errors.Is(err, domain.ErrSerialInUse):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SERIAL_IN_USE", Message: err.Error()}
	case errors.Is(err, domain.ErrSerialUnavailable):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "SERIAL_UNAVAILABLE", Message: err.Error()}

	case errors.Is(err, domain.ErrInvalidStatusTransition):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}

	case errors.Is(err, orders.ErrDeliveryNoteDisabled):
		return fiber.StatusServiceUnavailable, dto.ErrorResponse{Code: "PDF_DISABLED", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"}
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "INVALID_BODY"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "ERROR"
	}
}
