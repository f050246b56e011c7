package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
)

// InventoryHandler disponibilidad, operaciones de stock, log de auditoría y seriales.
type InventoryHandler struct {
	stock   *inventory.StockUseCase
	serials *inventory.SerialUseCase
	val     *Validator
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stock *inventory.StockUseCase, serials *inventory.SerialUseCase, val *Validator) *InventoryHandler {
	return &InventoryHandler{stock: stock, serials: serials, val: val}
}

// Availability godoc
// @Summary      Disponibilidad de un producto en un rango de fechas
// @Tags         inventory
// @Produce      json
// @Param        product_id        query  string  true   "Producto"
// @Param        quantity          query  int     false  "Cantidad solicitada"
// @Param        start_date        query  string  true   "YYYY-MM-DD"
// @Param        end_date          query  string  true   "YYYY-MM-DD (inclusivo)"
// @Param        exclude_order_id  query  string  false  "Pedido a excluir del cálculo"
// @Success      200  {object}  dto.AvailabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/availability [get]
func (h *InventoryHandler) Availability(c *fiber.Ctx) error {
	var q dto.AvailabilityQuery
	if err := h.val.bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.stock.Check(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Buckets del producto por bodega y chequeo de conservación
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockOverviewResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/stock [get]
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	out, err := h.stock.Overview(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Log de inventario del producto (más reciente primero)
// @Tags         inventory
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InventoryLogListResponse
// @Router       /api/inventory/products/{id}/logs [get]
func (h *InventoryHandler) Logs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := h.val.bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.stock.Logs(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Replay reconstruye los buckets desde el log y los compara con los contadores actuales.
func (h *InventoryHandler) Replay(c *fiber.Ctx) error {
	out, err := h.stock.Replay(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receive godoc
// @Summary      Alta de unidades a granel (available y total_owned)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockQuantityRequest  true  "Producto, bodega y cantidad"
// @Success      201   {object}  dto.StockOverviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.stock.Receive(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Clean godoc
// @Summary      Limpieza: dirty -> available
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockQuantityRequest  true  "Producto, bodega y cantidad"
// @Success      200   {object}  dto.StockOverviewResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/clean [post]
func (h *InventoryHandler) Clean(c *fiber.Ctx) error {
	var in dto.StockQuantityRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.stock.Clean(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Damage godoc
// @Summary      Reporte de daño: dirty|available -> broken
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DamageRequest  true  "Cantidad a granel o seriales"
// @Success      200   {object}  dto.StockOverviewResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/damage [post]
func (h *InventoryHandler) Damage(c *fiber.Ctx) error {
	var in dto.DamageRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.stock.Damage(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Repair broken -> available.
func (h *InventoryHandler) Repair(c *fiber.Ctx) error {
	var in dto.RepairRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.stock.Repair(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddSerial godoc
// @Summary      Registrar serial (entra como AVAILABLE y suma una unidad)
// @Tags         serials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSerialRequest  true  "Producto, bodega y número de serie"
// @Success      201   {object}  dto.SerialResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/serials [post]
func (h *InventoryHandler) AddSerial(c *fiber.Ctx) error {
	var in dto.CreateSerialRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.serials.Add(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DeleteSerial baja de un serial AVAILABLE.
func (h *InventoryHandler) DeleteSerial(c *fiber.Ctx) error {
	if err := h.serials.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *InventoryHandler) ListSerials(c *fiber.Ctx) error {
	var q dto.SerialListQuery
	if err := h.val.bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.serials.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"items": out})
}
