package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

// CreateCategory crea una categoría del tenant.
func (s *Service) CreateCategory(ctx context.Context, tenantID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if tenantID == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categoryRepo.Create(cat); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindCategories, cat.ID, cat)
	return cat, nil
}

// UpdateCategory renombra una categoría existente del tenant.
func (s *Service) UpdateCategory(ctx context.Context, tenantID, id, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := s.getCategory(tenantID, id)
	if err != nil {
		return nil, err
	}
	cat.Name = name
	cat.UpdatedAt = time.Now()
	if err := s.categoryRepo.Update(cat); err != nil {
		return nil, err
	}
	s.mirror().Upsert(ctx, entity.KindCategories, cat.ID, cat)
	return cat, nil
}

// DeleteCategory borra una categoría del tenant.
func (s *Service) DeleteCategory(ctx context.Context, tenantID, id string) error {
	if _, err := s.getCategory(tenantID, id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return err
	}
	s.mirror().Remove(ctx, entity.KindCategories, id)
	return nil
}

// ListCategories devuelve las categorías del tenant desde el remoto.
func (s *Service) ListCategories(ctx context.Context, tenantID string) ([]*entity.Category, error) {
	return s.categoryRepo.ListByTenant(ctx, tenantID)
}

func (s *Service) getCategory(tenantID, id string) (*entity.Category, error) {
	cat, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil || cat.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return cat, nil
}
