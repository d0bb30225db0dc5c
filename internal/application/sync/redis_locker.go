package sync

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"

	"github.com/tu-usuario/pos-ledger/internal/domain"
)

var _ Locker = (*RedisLocker)(nil)

// RedisLocker implementa Locker sobre bsm/redislock.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker construye el locker con el cliente redislock.
func NewRedisLocker(client *redislock.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

// Obtain toma el lock sin reintentos: si otro sync del tenant está en vuelo,
// se reporta de inmediato en lugar de encolar.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, domain.ErrSyncInProgress
		}
		return nil, err
	}
	return redisRelease{lock: lock}, nil
}

type redisRelease struct {
	lock *redislock.Lock
}

func (r redisRelease) Release(ctx context.Context) error {
	return r.lock.Release(ctx)
}
