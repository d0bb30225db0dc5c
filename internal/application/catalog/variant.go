package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// VariantInput campos de alta de una variante. El costo unitario inicial lo
// fija la primera entrada de stock, no el alta.
type VariantInput struct {
	ProductID         string
	Name              string
	Barcode           string
	Price             decimal.Decimal
	LowStockThreshold int64
}

// CreateVariant da de alta una variante vendible de un producto del tenant.
func (s *Service) CreateVariant(ctx context.Context, tenantID string, in VariantInput) (*entity.Variant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if tenantID == "" || in.Name == "" || in.Price.LessThan(decimal.Zero) || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.getProduct(tenantID, in.ProductID); err != nil {
		return nil, err
	}
	now := time.Now()
	v := &entity.Variant{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		TenantID:          tenantID,
		Name:              in.Name,
		Barcode:           in.Barcode,
		Price:             in.Price,
		UnitCost:          decimal.Zero,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.variantRepo.Create(v); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindVariants, v.ID, v)
	return v, nil
}

// UpdateVariant muta los campos editables de la variante: nombre, código de
// barras, precio y umbral. El costo unitario solo lo toca la entrada de stock.
func (s *Service) UpdateVariant(ctx context.Context, tenantID, id string, in VariantInput) (*entity.Variant, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidInput
	}
	v, err := s.getVariant(tenantID, id)
	if err != nil {
		return nil, err
	}
	v.Name = in.Name
	v.Barcode = in.Barcode
	v.Price = in.Price
	v.LowStockThreshold = in.LowStockThreshold
	v.UpdatedAt = time.Now()
	if err := s.variantRepo.Update(v); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindVariants, v.ID, v)
	return v, nil
}

// DeleteVariant borra una variante del tenant. El ledger (lotes, líneas
// vendidas) la sigue refiriendo por id; la proyección simplemente deja de
// listarla en el catálogo.
func (s *Service) DeleteVariant(ctx context.Context, tenantID, id string) error {
	if _, err := s.getVariant(tenantID, id); err != nil {
		return err
	}
	if err := s.variantRepo.Delete(id); err != nil {
		return err
	}
	s.mirror().Remove(ctx, entity.KindVariants, id)
	return nil
}

// ListVariants devuelve las variantes del tenant desde el remoto.
func (s *Service) ListVariants(ctx context.Context, tenantID string) ([]*entity.Variant, error) {
	return s.variantRepo.ListByTenant(ctx, tenantID)
}

func (s *Service) getVariant(tenantID, id string) (*entity.Variant, error) {
	v, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil || v.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return v, nil
}
