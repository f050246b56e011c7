package http

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rental-inventory-api/internal/domain"
)

func TestMapError(t *testing.T) {
	stockErr := &domain.InsufficientStockError{ProductID: "p1", Bucket: "available", Requested: 4, Available: 1, Reserved: 2}
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"no encontrado", fmt.Errorf("x: %w", domain.ErrOrderNotFound), fiber.StatusNotFound, "NOT_FOUND"},
		{"entrada inválida", domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
		{"stock", stockErr, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{"serial en uso", &domain.SerialStateError{Serial: "SN", Status: "ON_RENT", Sentinel: domain.ErrSerialInUse}, fiber.StatusConflict, "SERIAL_IN_USE"},
		{"serial no disponible", &domain.SerialStateError{Serial: "SN", Status: "BROKEN", Sentinel: domain.ErrSerialUnavailable}, fiber.StatusConflict, "SERIAL_UNAVAILABLE"},
		{"transición", domain.ErrInvalidStatusTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
		{"libro inconsistente gana a stock", fmt.Errorf("%w: %w", domain.ErrLedgerInconsistency, stockErr), fiber.StatusInternalServerError, "LEDGER_INCONSISTENCY"},
		{"desconocido", fmt.Errorf("boom"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}

	_, body := mapError(stockErr)
	assert.Equal(t, 2, body.Details["reserved"])
	assert.Equal(t, "available", body.Details["bucket"])
}

func TestValidator_NombresJSON(t *testing.T) {
	type item struct {
		Quantity int `json:"quantity" validate:"required,min=1"`
	}
	type body struct {
		Items []item `json:"items" validate:"required,min=1,dive"`
	}
	err := NewValidator().Struct(body{Items: []item{{Quantity: 0}}})
	var verr *ValidationError
	if assert.ErrorAs(t, err, &verr) {
		assert.Equal(t, "required", verr.Details()["items[0].quantity"])
	}
}
