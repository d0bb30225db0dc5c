package http

import (
	"context"
	"sync"

	"github.com/tu-usuario/pos-ledger/internal/application/catalog"
	"github.com/tu-usuario/pos-ledger/internal/application/pos"
	"github.com/tu-usuario/pos-ledger/internal/application/projection"
	appsync "github.com/tu-usuario/pos-ledger/internal/application/sync"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
)

// TenantServices son los casos de uso atados a la caché local de un tenant.
// La capa HTTP resuelve el bundle a partir del tenant del token.
type TenantServices struct {
	Store     localcache.Store
	Projector *projection.Projector
	Catalog   *catalog.Service
	Intake    *pos.IntakeUseCase
	Sale      *pos.CompleteSaleUseCase
	Return    *pos.ProcessReturnUseCase
	Debt      *pos.SettleDebtUseCase
	Sync      *appsync.Coordinator
}

// Hub memoiza el bundle por tenant. La construcción real (abrir la caché del
// tenant, cablear repos) la inyecta main como builder.
type Hub struct {
	mu      sync.Mutex
	build   func(ctx context.Context, tenantID string) (*TenantServices, error)
	tenants map[string]*TenantServices
}

// NewHub construye el hub con el builder de servicios por tenant.
func NewHub(build func(ctx context.Context, tenantID string) (*TenantServices, error)) *Hub {
	return &Hub{build: build, tenants: make(map[string]*TenantServices)}
}

// ForTenant devuelve el bundle del tenant, construyéndolo la primera vez.
func (h *Hub) ForTenant(ctx context.Context, tenantID string) (*TenantServices, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if svc, ok := h.tenants[tenantID]; ok {
		return svc, nil
	}
	svc, err := h.build(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	h.tenants[tenantID] = svc
	return svc, nil
}

// Close cierra las cachés de todos los tenants abiertos.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, svc := range h.tenants {
		_ = svc.Store.Close()
		delete(h.tenants, id)
	}
}
