package localcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/tu-usuario/pos-ledger/internal/domain/entity"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implementación en memoria de Store con la misma semántica que
// RedisStore (last-write-wins por id, Clear total, cola de reconciliación).
// Respaldo para tests y modo sin Redis.
type MemoryStore struct {
	mu        sync.RWMutex
	tenantID  string
	kinds     map[entity.Kind]map[string][]byte
	reconcile map[entity.Kind]struct{}
	closed    bool
}

// NewMemory crea la caché en memoria del tenant.
func NewMemory(tenantID string) *MemoryStore {
	return &MemoryStore{
		tenantID:  tenantID,
		kinds:     make(map[entity.Kind]map[string][]byte),
		reconcile: make(map[entity.Kind]struct{}),
	}
}

func (s *MemoryStore) guard(kind entity.Kind) error {
	if s.closed {
		return ErrClosed
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return nil
}

func (s *MemoryStore) bucket(kind entity.Kind) map[string][]byte {
	b, ok := s.kinds[kind]
	if !ok {
		b = make(map[string][]byte)
		s.kinds[kind] = b
	}
	return b
}

// TenantID devuelve el tenant de esta instancia.
func (s *MemoryStore) TenantID() string { return s.tenantID }

func (s *MemoryStore) LoadAll(_ context.Context, kind entity.Kind) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.guard(kind); err != nil {
		return nil, err
	}
	bucket := s.kinds[kind]
	docs := make([]Document, 0, len(bucket))
	for id, data := range bucket {
		cp := make([]byte, len(data))
		copy(cp, data)
		docs = append(docs, Document{ID: id, Data: cp})
	}
	return docs, nil
}

func (s *MemoryStore) InsertOne(_ context.Context, kind entity.Kind, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(kind); err != nil {
		return err
	}
	s.bucket(kind)[doc.ID] = append([]byte(nil), doc.Data...)
	return nil
}

func (s *MemoryStore) InsertMany(_ context.Context, kind entity.Kind, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(kind); err != nil {
		return err
	}
	bucket := s.bucket(kind)
	for _, doc := range docs {
		bucket[doc.ID] = append([]byte(nil), doc.Data...)
	}
	return nil
}

func (s *MemoryStore) UpdateOne(ctx context.Context, kind entity.Kind, doc Document) error {
	return s.InsertOne(ctx, kind, doc)
}

func (s *MemoryStore) RemoveOne(_ context.Context, kind entity.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(kind); err != nil {
		return err
	}
	delete(s.kinds[kind], id)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, kind entity.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(kind); err != nil {
		return err
	}
	delete(s.kinds, kind)
	return nil
}

func (s *MemoryStore) EnqueueReconcile(_ context.Context, kind entity.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.guard(kind); err != nil {
		return err
	}
	s.reconcile[kind] = struct{}{}
	return nil
}

func (s *MemoryStore) DrainReconcile(_ context.Context) ([]entity.Kind, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if len(s.reconcile) == 0 {
		return nil, nil
	}
	kinds := make([]entity.Kind, 0, len(s.reconcile))
	for k := range s.reconcile {
		kinds = append(kinds, k)
	}
	s.reconcile = make(map[entity.Kind]struct{})
	return kinds, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
