package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/pos-ledger/internal/application/dto"
	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// PosHandler expone el pipeline de mutaciones: entradas de stock, ventas,
// devoluciones y liquidación de deudas. Ninguna operación es idempotente; el
// cliente garantiza un solo envío.
type PosHandler struct {
	hub *Hub
}

// NewPosHandler construye el handler.
func NewPosHandler(hub *Hub) *PosHandler {
	return &PosHandler{hub: hub}
}

// Intake registra una entrada de stock: compra a proveedor, restock manual o
// corrección negativa.
func (h *PosHandler) Intake(c *fiber.Ctx) error {
	var in dto.IntakeRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	lines := make([]pos.IntakeLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, pos.IntakeLine{
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			NewPrice:  l.NewPrice,
		})
	}
	out, err := svc.Intake.Intake(c.Context(), pos.IntakeInput{
		TenantID:   GetTenantID(c),
		UserID:     GetUserID(c),
		SupplierID: in.SupplierID,
		AmountPaid: in.AmountPaid,
		Lines:      lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Sale cierra una venta.
func (h *PosHandler) Sale(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	lines := make([]entity.SaleLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.SaleLine{
			VariantID: l.VariantID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			SalePrice: l.SalePrice,
			UnitCost:  l.UnitCost,
			Kind:      l.Kind,
			Custom:    l.Custom,
		})
	}
	out, err := svc.Sale.CompleteSale(c.Context(), pos.SaleInput{
		TenantID:    GetTenantID(c),
		UserID:      GetUserID(c),
		CustomerID:  in.CustomerID,
		DownPayment: in.DownPayment,
		Lines:       lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Return procesa la devolución de un subconjunto de líneas de una venta.
func (h *PosHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	lines := make([]pos.ReturnLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, pos.ReturnLineInput{LineIndex: l.LineIndex, Quantity: l.Quantity})
	}
	out, err := svc.Return.ProcessReturn(c.Context(), pos.ReturnInput{
		TenantID: GetTenantID(c),
		UserID:   GetUserID(c),
		SaleID:   in.SaleID,
		Lines:    lines,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Settlement aplica un abono de cliente o un pago a proveedor, oldest-first.
func (h *PosHandler) Settlement(c *fiber.Ctx) error {
	var in dto.SettlementRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	svc, err := h.hub.ForTenant(c.Context(), GetTenantID(c))
	if err != nil {
		return respondError(c, err)
	}

	switch in.Party {
	case "customer":
		out, err := svc.Debt.SettleCustomerDebt(c.Context(), GetTenantID(c), in.PartyID, in.Amount)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	default: // "supplier", garantizado por el validador
		out, err := svc.Debt.SettleSupplierDebt(c.Context(), GetTenantID(c), in.PartyID, in.Amount)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
}
