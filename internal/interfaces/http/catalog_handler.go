package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/rental-inventory-api/internal/application/dto"
	"github.com/jhoicas/rental-inventory-api/internal/application/usecase"
)

// CatalogHandler CRUD de productos, bodegas, clientes y proveedores.
type CatalogHandler struct {
	products   *usecase.ProductUseCase
	warehouses *usecase.WarehouseUseCase
	customers  *usecase.CustomerUseCase
	suppliers  *usecase.SupplierUseCase
	val        *Validator
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(
	products *usecase.ProductUseCase,
	warehouses *usecase.WarehouseUseCase,
	customers *usecase.CustomerUseCase,
	suppliers *usecase.SupplierUseCase,
	val *Validator,
) *CatalogHandler {
	return &CatalogHandler{products: products, warehouses: warehouses, customers: customers, suppliers: suppliers, val: val}
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.products.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := h.val.bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.products.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto (total_owned no es editable)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.products.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateWarehouse godoc
// @Summary      Crear bodega
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWarehouseRequest  true  "Datos de la bodega"
// @Success      201   {object}  dto.WarehouseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouses [post]
func (h *CatalogHandler) CreateWarehouse(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.warehouses.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) GetWarehouse(c *fiber.Ctx) error {
	out, err := h.warehouses.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) ListWarehouses(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := h.val.bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.warehouses.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateCustomer godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CatalogHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.customers.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListCustomers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := h.val.bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.customers.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := h.val.bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.suppliers.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := h.val.bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.suppliers.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
