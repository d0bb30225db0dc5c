package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-ledger/internal/application/catalog"
	"github.com/tu-usuario/pos-ledger/internal/application/dto"
)

// CatalogHandler maneja el CRUD de catálogo y maestros (protegido).
type CatalogHandler struct {
	hub *Hub
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(hub *Hub) *CatalogHandler {
	return &CatalogHandler{hub: hub}
}

func (h *CatalogHandler) services(c *fiber.Ctx) (*TenantServices, error) {
	return h.hub.ForTenant(c.Context(), GetTenantID(c))
}

// ── Categorías ──

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.CreateCategory(c.Context(), GetTenantID(c), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.ListCategories(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.UpdateCategory(c.Context(), GetTenantID(c), c.Params("id"), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := svc.Catalog.DeleteCategory(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Productos ──

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.CreateProduct(c.Context(), GetTenantID(c), catalog.ProductInput{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.ListProducts(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.UpdateProduct(c.Context(), GetTenantID(c), c.Params("id"), catalog.ProductInput{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := svc.Catalog.DeleteProduct(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Variantes ──

func (h *CatalogHandler) CreateVariant(c *fiber.Ctx) error {
	var in dto.VariantRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.CreateVariant(c.Context(), GetTenantID(c), catalog.VariantInput{
		ProductID:         in.ProductID,
		Name:              in.Name,
		Barcode:           in.Barcode,
		Price:             in.Price,
		LowStockThreshold: in.LowStockThreshold,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListVariants(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.ListVariants(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateVariant(c *fiber.Ctx) error {
	var in dto.VariantRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.UpdateVariant(c.Context(), GetTenantID(c), c.Params("id"), catalog.VariantInput{
		ProductID:         in.ProductID,
		Name:              in.Name,
		Barcode:           in.Barcode,
		Price:             in.Price,
		LowStockThreshold: in.LowStockThreshold,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) DeleteVariant(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := svc.Catalog.DeleteVariant(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Clientes ──

func (h *CatalogHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.CreateCustomer(c.Context(), GetTenantID(c), in.Name, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListCustomers(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.ListCustomers(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateCustomer(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.UpdateCustomer(c.Context(), GetTenantID(c), c.Params("id"), in.Name, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteCustomer rechaza con 409 si el cliente debe (guardia de deuda).
func (h *CatalogHandler) DeleteCustomer(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := svc.Catalog.DeleteCustomer(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Proveedores ──

func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.CreateSupplier(c.Context(), GetTenantID(c), in.Name, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.ListSuppliers(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := svc.Catalog.UpdateSupplier(c.Context(), GetTenantID(c), c.Params("id"), in.Name, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteSupplier rechaza con 409 si hay compras sin pagar (guardia de deuda).
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	svc, err := h.services(c)
	if err != nil {
		return respondError(c, err)
	}
	if err := svc.Catalog.DeleteSupplier(c.Context(), GetTenantID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
