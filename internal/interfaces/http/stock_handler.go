package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-ledger/internal/application/dto"
)

// StockHandler expone la proyección de stock: mapa resuelto, alertas de stock
// bajo y búsqueda de variantes. Todo se deriva en fresco desde la caché local.
type StockHandler struct {
	hub *Hub
}

// NewStockHandler construye el handler.
func NewStockHandler(hub *Hub) *StockHandler {
	return &StockHandler{hub: hub}
}

// Resolved devuelve el mapa completo variante -> cantidad resuelta. Valores
// negativos señalan sobreventa; no son un error.
func (h *StockHandler) Resolved(c *fiber.Ctx) error {
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	snap, err := svc.Projector.Snapshot(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap.Resolved)
}

// Low devuelve las variantes en o bajo su umbral, déficit descendente.
func (h *StockHandler) Low(c *fiber.Ctx) error {
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	snap, err := svc.Projector.Snapshot(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap.LowStock)
}

// Lookup resuelve variantes por código de barras (?barcode=) o por producto
// (?product_id=), desde los índices derivados.
func (h *StockHandler) Lookup(c *fiber.Ctx) error {
	barcode := c.Query("barcode")
	productID := c.Query("product_id")
	if barcode == "" && productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "barcode o product_id requerido"})
	}

	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}
	snap, err := svc.Projector.Snapshot(c.Context())
	if err != nil {
		return respondError(c, err)
	}

	if barcode != "" {
		v, ok := snap.Variants.ByBarcode[barcode]
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "código de barras no registrado"})
		}
		return c.JSON(v)
	}
	return c.JSON(snap.Variants.ByProductID[productID])
}
