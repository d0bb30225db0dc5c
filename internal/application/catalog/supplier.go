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

// CreateSupplier registra un proveedor del tenant.
func (s *Service) CreateSupplier(ctx context.Context, tenantID, name, phone string) (*entity.Supplier, error) {
	name = strings.TrimSpace(name)
	if tenantID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	sup := &entity.Supplier{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.supplierRepo.Create(sup); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindSuppliers, sup.ID, sup)
	return sup, nil
}

// UpdateSupplier muta nombre y teléfono del proveedor.
func (s *Service) UpdateSupplier(ctx context.Context, tenantID, id, name, phone string) (*entity.Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	sup, err := s.getSupplier(tenantID, id)
	if err != nil {
		return nil, err
	}
	sup.Name = name
	sup.Phone = phone
	sup.UpdatedAt = time.Now()
	if err := s.supplierRepo.Update(sup); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindSuppliers, sup.ID, sup)
	return sup, nil
}

// DeleteSupplier borra un proveedor sin compras pendientes de pago; con saldo
// el borrado se rechaza.
func (s *Service) DeleteSupplier(ctx context.Context, tenantID, id string) error {
	if _, err := s.getSupplier(tenantID, id); err != nil {
		return err
	}
	owed, err := s.purchaseRepo.SumRemainingBySupplier(id)
	if err != nil {
		return err
	}
	if owed.GreaterThan(decimal.Zero) {
		return domain.ErrConstraintViolation
	}
	if err := s.supplierRepo.Delete(id); err != nil {
		return err
	}
	s.mirror().Remove(ctx, entity.KindSuppliers, id)
	return nil
}

// ListSuppliers devuelve los proveedores del tenant desde el remoto.
func (s *Service) ListSuppliers(ctx context.Context, tenantID string) ([]*entity.Supplier, error) {
	return s.supplierRepo.ListByTenant(ctx, tenantID)
}

func (s *Service) getSupplier(tenantID, id string) (*entity.Supplier, error) {
	sup, err := s.supplierRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil || sup.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return sup, nil
}
