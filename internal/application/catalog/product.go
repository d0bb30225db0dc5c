package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// ProductInput campos editables de un producto.
type ProductInput struct {
	CategoryID  string
	Name        string
	Description string
}

// CreateProduct crea un producto del catálogo. La categoría, si viene, debe
// existir y ser del tenant.
func (s *Service) CreateProduct(ctx context.Context, tenantID string, in ProductInput) (*entity.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if tenantID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.CategoryID != "" {
		if _, err := s.getCategory(tenantID, in.CategoryID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.productRepo.Create(p); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindProducts, p.ID, p)
	return p, nil
}

// UpdateProduct muta los campos editables de un producto del tenant.
func (s *Service) UpdateProduct(ctx context.Context, tenantID, id string, in ProductInput) (*entity.Product, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := s.getProduct(tenantID, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != "" && in.CategoryID != p.CategoryID {
		if _, err := s.getCategory(tenantID, in.CategoryID); err != nil {
			return nil, err
		}
	}
	p.CategoryID = in.CategoryID
	p.Name = in.Name
	p.Description = in.Description
	p.UpdatedAt = time.Now()
	if err := s.productRepo.Update(p); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindProducts, p.ID, p)
	return p, nil
}

// DeleteProduct borra un producto del tenant junto con nada más: las variantes
// existentes quedan huérfanas de catálogo pero el ledger las sigue refiriendo.
func (s *Service) DeleteProduct(ctx context.Context, tenantID, id string) error {
	if _, err := s.getProduct(tenantID, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.mirror().Remove(ctx, entity.KindProducts, id)
	return nil
}

// ListProducts devuelve los productos del tenant desde el remoto.
func (s *Service) ListProducts(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	return s.productRepo.ListByTenant(ctx, tenantID)
}

func (s *Service) getProduct(tenantID, id string) (*entity.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
