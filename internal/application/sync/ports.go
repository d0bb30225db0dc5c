package sync

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
)

// RemoteSource entrega el conjunto remoto completo de un tipo de entidad,
// filtrado por tenant y ya traducido al formato de wire de la caché.
type RemoteSource interface {
	FetchAll(ctx context.Context, tenantID string, kind entity.Kind) ([]localcache.Document, error)
}

// Locker garantiza un solo sync en vuelo por tenant.
type Locker interface {
	// Obtain toma el lock o devuelve domain.ErrSyncInProgress si ya está tomado.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// Release libera un lock obtenido.
type Release interface {
	Release(ctx context.Context) error
}
