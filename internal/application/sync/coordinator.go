package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/pos-ledger/internal/domain"
	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/internal/localcache"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// Options parámetros del sync full-replace.
type Options struct {
	// PauseBetweenKinds pausa entre tipos para acotar el pico de red/memoria
	// durante un import grande. Secuencial a propósito: más lento en total,
	// pero la caché y la UI siguen respondiendo.
	PauseBetweenKinds time.Duration
	// LockTTL vida del lock por tenant.
	LockTTL time.Duration
}

// Coordinator lleva la caché local al estado del backend remoto cada vez que
// cambia el contexto de tenant (login, cambio de tenant) o se pide
// explícitamente. Estrategia full-replace: por cada tipo, traer el conjunto
// remoto completo, vaciar el store local y reinsertarlo. No hay protocolo
// incremental ni hace falta: el siguiente sync exitoso siempre parte de cero.
type Coordinator struct {
	source RemoteSource
	locker Locker
	opts   Options
	log    *logger.Logger
}

// NewCoordinator construye el coordinador.
func NewCoordinator(source RemoteSource, locker Locker, opts Options, log *logger.Logger) *Coordinator {
	return &Coordinator{source: source, locker: locker, opts: opts, log: log}
}

// FullSync sincroniza todos los tipos rastreados para el tenant de la caché,
// secuencialmente y en orden fijo, priorizando los tipos pendientes de
// reconciliación. Ante cualquier fallo aborta el resto y devuelve el error:
// los tipos ya sincronizados quedan frescos, los posteriores quedan stale
// (estado parcial explícito, sin rollback). Un fallo de sync nunca debe tumbar
// la aplicación: el caller sigue operando sobre datos stale hasta el próximo
// sync exitoso.
func (c *Coordinator) FullSync(ctx context.Context, store localcache.Store) error {
	tenantID := store.TenantID()

	release, err := c.locker.Obtain(ctx, "sync:"+tenantID, c.opts.LockTTL)
	if err != nil {
		return err
	}
	defer func() { _ = release.Release(ctx) }()

	runID := uuid.New().String()
	started := time.Now()
	c.log.Info().Str("tenant_id", tenantID).Str("sync_run", runID).Msg("sync completo iniciado")

	// Tipos con espejo local fallido van primero; el resto en el orden fijo.
	pending, err := store.DrainReconcile(ctx)
	if err != nil {
		return fmt.Errorf("drenar cola de reconciliación: %w", err)
	}
	order := syncOrder(pending)

	for i, kind := range order {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.syncKind(ctx, store, tenantID, kind); err != nil {
			c.log.Error().Err(err).
				Str("tenant_id", tenantID).
				Str("sync_run", runID).
				Str("kind", string(kind)).
				Int("kinds_synced", i).
				Msg("sync abortado; los tipos restantes quedan stale")
			return err
		}
		if i < len(order)-1 && c.opts.PauseBetweenKinds > 0 {
			time.Sleep(c.opts.PauseBetweenKinds)
		}
	}

	c.log.Info().
		Str("tenant_id", tenantID).
		Str("sync_run", runID).
		Dur("elapsed", time.Since(started)).
		Msg("sync completo terminado")
	return nil
}

// syncKind reemplaza un tipo completo: fetch remoto → clear → insertMany.
func (c *Coordinator) syncKind(ctx context.Context, store localcache.Store, tenantID string, kind entity.Kind) error {
	docs, err := c.source.FetchAll(ctx, tenantID, kind)
	if err != nil {
		return fmt.Errorf("fetch %s: %w: %w", kind, domain.ErrRemoteUnavailable, err)
	}
	if err := store.Clear(ctx, kind); err != nil {
		return fmt.Errorf("clear %s: %w", kind, err)
	}
	if err := store.InsertMany(ctx, kind, docs); err != nil {
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	c.log.Debug().Str("tenant_id", tenantID).Str("kind", string(kind)).Int("records", len(docs)).Msg("tipo sincronizado")
	return nil
}

// syncOrder antepone los tipos pendientes de reconciliación al orden fijo,
// sin duplicar.
func syncOrder(pending []entity.Kind) []entity.Kind {
	seen := make(map[entity.Kind]bool, len(pending))
	order := make([]entity.Kind, 0, len(entity.SyncOrder))
	for _, k := range pending {
		if k.Valid() && !seen[k] {
			order = append(order, k)
			seen[k] = true
		}
	}
	for _, k := range entity.SyncOrder {
		if !seen[k] {
			order = append(order, k)
		}
	}
	return order
}
