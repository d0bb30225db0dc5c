package localcache

import (
	"context"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
	"github.com/tu-usuario/pos-ledger/pkg/logger"
)

// Mirror espeja escrituras ya confirmadas en el remoto hacia la caché local.
// Orden remoto-primero: si el espejo falla la operación ya es un hecho, así
// que no se propaga el error; el tipo se encola para reconciliación y el
// próximo sync completo lo re-trae (ventana de divergencia documentada).
type Mirror struct {
	Store Store
	Log   *logger.Logger
}

// Upsert serializa y escribe el registro en la caché, mejor esfuerzo.
func (m Mirror) Upsert(ctx context.Context, kind entity.Kind, id string, v interface{}) {
	doc, err := Encode(id, v)
	if err == nil {
		err = m.Store.UpdateOne(ctx, kind, doc)
	}
	if err != nil {
		m.Log.Warn().Err(err).
			Str("tenant_id", m.Store.TenantID()).
			Str("kind", string(kind)).
			Str("id", id).
			Msg("espejo local falló tras commit remoto; encolado para reconciliación")
		if qErr := m.Store.EnqueueReconcile(ctx, kind); qErr != nil {
			m.Log.Error().Err(qErr).Str("kind", string(kind)).Msg("no se pudo encolar la reconciliación")
		}
	}
}

// Remove borra el registro de la caché, mejor esfuerzo.
func (m Mirror) Remove(ctx context.Context, kind entity.Kind, id string) {
	if err := m.Store.RemoveOne(ctx, kind, id); err != nil {
		m.Log.Warn().Err(err).
			Str("tenant_id", m.Store.TenantID()).
			Str("kind", string(kind)).
			Str("id", id).
			Msg("borrado local falló tras commit remoto; encolado para reconciliación")
		if qErr := m.Store.EnqueueReconcile(ctx, kind); qErr != nil {
			m.Log.Error().Err(qErr).Str("kind", string(kind)).Msg("no se pudo encolar la reconciliación")
		}
	}
}
