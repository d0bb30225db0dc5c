package catalog

import (
	"github.com/tu-usuario/pos-ledger/internal/domain/repository"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// Service agrupa el CRUD del catálogo y los maestros del tenant: categorías,
// productos, variantes, clientes y proveedores. Todas las escrituras van
// remoto-primero y después espejan en la caché local, igual que el pipeline
// de mutaciones.
type Service struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
	purchaseRepo repository.PurchaseRepository
	store        localcache.Store
	log          *logger.Logger
}

// NewService construye el servicio de catálogo.
func NewService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	store localcache.Store,
	log *logger.Logger,
) *Service {
	return &Service{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		saleRepo:     saleRepo,
		purchaseRepo: purchaseRepo,
		store:        store,
		log:          log,
	}
}

func (s *Service) mirror() localcache.Mirror {
	return localcache.Mirror{Store: s.store, Log: s.log}
}
