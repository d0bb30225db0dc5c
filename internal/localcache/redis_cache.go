package localcache

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

var _ Store = (*RedisStore)(nil)

// RedisStore implementación de Store sobre Redis: un hash por (tenant, tipo),
// field = id, value = JSON de wire. El DEL del hash es el Clear; HSET da la
// semántica last-write-wins por registro.
type RedisStore struct {
	client   *redis.Client
	tenantID string
	closed   atomic.Bool
}

// OpenTenant abre la caché local del tenant con lifecycle explícito (login →
// Open, logout → Close); no hay instancia global. Verifica la versión de
// esquema: una caché escrita por un esquema más nuevo se rechaza; una más
// vieja solo registra la versión nueva (migración aditiva, los hashes
// existentes no se tocan).
func OpenTenant(ctx context.Context, client *redis.Client, tenantID string) (*RedisStore, error) {
	s := &RedisStore{client: client, tenantID: tenantID}

	stored, err := client.Get(ctx, s.schemaKey()).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("leer versión de esquema: %w", err)
	}
	if err == nil {
		version, convErr := strconv.Atoi(stored)
		if convErr != nil {
			return nil, fmt.Errorf("versión de esquema corrupta %q: %w", stored, convErr)
		}
		if version > SchemaVersion {
			return nil, ErrSchemaTooNew
		}
	}
	if err := client.Set(ctx, s.schemaKey(), strconv.Itoa(SchemaVersion), 0).Err(); err != nil {
		return nil, fmt.Errorf("registrar versión de esquema: %w", err)
	}
	return s, nil
}

func (s *RedisStore) key(kind entity.Kind) string {
	return fmt.Sprintf("cache:%s:%s", s.tenantID, kind)
}

func (s *RedisStore) schemaKey() string {
	return fmt.Sprintf("cache:%s:schema", s.tenantID)
}

func (s *RedisStore) reconcileKey() string {
	return fmt.Sprintf("cache:%s:reconcile", s.tenantID)
}

func (s *RedisStore) guard(kind entity.Kind) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return nil
}

// TenantID devuelve el tenant de esta instancia.
func (s *RedisStore) TenantID() string { return s.tenantID }

// LoadAll devuelve todos los documentos del tipo, sin orden garantizado.
func (s *RedisStore) LoadAll(ctx context.Context, kind entity.Kind) ([]Document, error) {
	if err := s.guard(kind); err != nil {
		return nil, err
	}
	raw, err := s.client.HGetAll(ctx, s.key(kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("load all %s: %w", kind, err)
	}
	docs := make([]Document, 0, len(raw))
	for id, data := range raw {
		docs = append(docs, Document{ID: id, Data: []byte(data)})
	}
	return docs, nil
}

// InsertOne escribe un documento (last-write-wins si el id ya existe).
func (s *RedisStore) InsertOne(ctx context.Context, kind entity.Kind, doc Document) error {
	if err := s.guard(kind); err != nil {
		return err
	}
	if err := s.client.HSet(ctx, s.key(kind), doc.ID, doc.Data).Err(); err != nil {
		return fmt.Errorf("insert %s/%s: %w", kind, doc.ID, err)
	}
	return nil
}

// InsertMany escribe un lote en un solo comando.
func (s *RedisStore) InsertMany(ctx context.Context, kind entity.Kind, docs []Document) error {
	if err := s.guard(kind); err != nil {
		return err
	}
	if len(docs) == 0 {
		return nil
	}
	pairs := make([]interface{}, 0, len(docs)*2)
	for _, doc := range docs {
		pairs = append(pairs, doc.ID, doc.Data)
	}
	if err := s.client.HSet(ctx, s.key(kind), pairs...).Err(); err != nil {
		return fmt.Errorf("insert many %s: %w", kind, err)
	}
	return nil
}

// UpdateOne escribe el documento completo; con HSET es el mismo camino que
// InsertOne y conserva la semántica last-write-wins.
func (s *RedisStore) UpdateOne(ctx context.Context, kind entity.Kind, doc Document) error {
	return s.InsertOne(ctx, kind, doc)
}

// RemoveOne borra un documento por id; borrar un id inexistente no es error.
func (s *RedisStore) RemoveOne(ctx context.Context, kind entity.Kind, id string) error {
	if err := s.guard(kind); err != nil {
		return err
	}
	if err := s.client.HDel(ctx, s.key(kind), id).Err(); err != nil {
		return fmt.Errorf("remove %s/%s: %w", kind, id, err)
	}
	return nil
}

// Clear vacía el store del tipo.
func (s *RedisStore) Clear(ctx context.Context, kind entity.Kind) error {
	if err := s.guard(kind); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.key(kind)).Err(); err != nil {
		return fmt.Errorf("clear %s: %w", kind, err)
	}
	return nil
}

// EnqueueReconcile marca el tipo para re-traerse en el próximo sync.
func (s *RedisStore) EnqueueReconcile(ctx context.Context, kind entity.Kind) error {
	if err := s.guard(kind); err != nil {
		return err
	}
	if err := s.client.SAdd(ctx, s.reconcileKey(), string(kind)).Err(); err != nil {
		return fmt.Errorf("enqueue reconcile %s: %w", kind, err)
	}
	return nil
}

// DrainReconcile devuelve y vacía la cola de reconciliación.
func (s *RedisStore) DrainReconcile(ctx context.Context) ([]entity.Kind, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	members, err := s.client.SMembers(ctx, s.reconcileKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("drain reconcile: %w", err)
	}
	if len(members) == 0 {
		return nil, nil
	}
	if err := s.client.Del(ctx, s.reconcileKey()).Err(); err != nil {
		return nil, fmt.Errorf("drain reconcile: %w", err)
	}
	kinds := make([]entity.Kind, 0, len(members))
	for _, m := range members {
		kinds = append(kinds, entity.Kind(m))
	}
	return kinds, nil
}

// Close marca la instancia como cerrada. No cierra el cliente Redis: es
// compartido entre tenants y lo administra quien lo construyó.
func (s *RedisStore) Close() error {
	s.closed.Store(true)
	return nil
}
