package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/orders"
)

// OrderHandler ciclo de vida de pedidos de alquiler.
type OrderHandler struct {
	uc  *orders.UseCase
	val *Validator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase, val *Validator) *OrderHandler {
	return &OrderHandler{uc: uc, val: val}
}

// Create godoc
// @Summary      Crear pedido (BOOKED si todas las líneas tienen disponibilidad)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Cliente, fechas y líneas"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener pedido con sus líneas
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Prepare godoc
// @Summary      Reservar unidades (available -> reserved) para una línea
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del pedido"
// @Param        body  body  dto.PrepareRequest   true  "Producto y cantidad o seriales"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/prepare [post]
func (h *OrderHandler) Prepare(c *fiber.Ctx) error {
	var in dto.PrepareRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Prepare(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Release reserved -> available para una línea.
func (h *OrderHandler) Release(c *fiber.Ctx) error {
	var in dto.PrepareRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Release(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Despachar (reserved/available -> onRent). Sin body despacha todo lo pendiente
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string            true   "ID del pedido"
// @Param        body  body  dto.ItemsRequest  false  "Cantidades por línea"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ItemsRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Ship(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver (onRent -> dirty). Sin body devuelve todo lo pendiente
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string            true   "ID del pedido"
// @Param        body  body  dto.ItemsRequest  false  "Cantidades por línea"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/return [post]
func (h *OrderHandler) Return(c *fiber.Ctx) error {
	var in dto.ItemsRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Return(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ForceComplete cierra el pedido reconciliando el libro de stock.
func (h *OrderHandler) ForceComplete(c *fiber.Ctx) error {
	out, err := h.uc.ForceComplete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PatchStatus godoc
// @Summary      Cambiar estado (COMPLETED y CANCELLED pasan por la reconciliación)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del pedido"
// @Param        body  body  dto.StatusPatchRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [patch]
func (h *OrderHandler) PatchStatus(c *fiber.Ctx) error {
	var in dto.StatusPatchRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.PatchStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *OrderHandler) Logs(c *fiber.Ctx) error {
	out, err := h.uc.Logs(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": out})
}

// DeliveryNote godoc
// @Summary      Nota de entrega en PDF
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/delivery-note [get]
func (h *OrderHandler) DeliveryNote(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.DeliveryNote(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(pdf)
}
