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

// CreateCustomer registra un cliente del tenant.
func (s *Service) CreateCustomer(ctx context.Context, tenantID, name, phone string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if tenantID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Phone:     phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customerRepo.Create(c); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindCustomers, c.ID, c)
	return c, nil
}

// UpdateCustomer muta nombre y teléfono del cliente.
func (s *Service) UpdateCustomer(ctx context.Context, tenantID, id, name, phone string) (*entity.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := s.getCustomer(tenantID, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Phone = phone
	c.UpdatedAt = time.Now()
	if err := s.customerRepo.Update(c); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindCustomers, c.ID, c)
	return c, nil
}

// DeleteCustomer borra un cliente sin deuda. Con saldo pendiente en cualquier
// venta el borrado se rechaza; saldo exactamente cero borra.
func (s *Service) DeleteCustomer(ctx context.Context, tenantID, id string) error {
	if _, err := s.getCustomer(tenantID, id); err != nil {
		return err
	}
	owed, err := s.saleRepo.SumRemainingByCustomer(id)
	if err != nil {
		return err
	}
	if owed.GreaterThan(decimal.Zero) {
		return domain.ErrConstraintViolation
	}
	if err := s.customerRepo.Delete(id); err != nil {
		return err
	}
	s.mirror().Remove(ctx, entity.KindCustomers, id)
	return nil
}

// ListCustomers devuelve los clientes del tenant desde el remoto.
func (s *Service) ListCustomers(ctx context.Context, tenantID string) ([]*entity.Customer, error) {
	return s.customerRepo.ListByTenant(ctx, tenantID)
}

func (s *Service) getCustomer(tenantID, id string) (*entity.Customer, error) {
	c, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return c, nil
}
