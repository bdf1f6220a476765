// Package secrets isolates session signer keys behind an explicit
// capability boundary instead of the generic key-value store. The kv-backed
// implementation keeps the original single-store behavior (with its known
// residual risk); the AWS Secrets Manager implementation is the hardened
// option for deployments that have it.
package secrets

import (
	"context"
	"errors"

	"github.com/pawclick/clicker-api/internal/kv"
)

// ErrNotFound is returned by Get when no secret exists under the name.
var ErrNotFound = errors.New("secrets: not found")

// Store holds small named secrets.
type Store interface {
	Put(ctx context.Context, name, value string) error
	Get(ctx context.Context, name string) (string, error)
	Delete(ctx context.Context, name string) error
}

// KVStore keeps secrets in the same key-value boundary as the session cache,
// under a distinct prefix. This mirrors the localStorage behavior the cache
// format was born with and should only be used where no platform secret
// backend is available.
type KVStore struct {
	kv     kv.Store
	prefix string
}

// NewKVStore wraps a key-value store as a secret backend.
func NewKVStore(store kv.Store, prefix string) *KVStore {
	return &KVStore{kv: store, prefix: prefix}
}

func (s *KVStore) key(name string) string {
	return s.prefix + "/" + name
}

func (s *KVStore) Put(ctx context.Context, name, value string) error {
	return s.kv.Set(ctx, s.key(name), value)
}

func (s *KVStore) Get(ctx context.Context, name string) (string, error) {
	value, err := s.kv.Get(ctx, s.key(name))
	if errors.Is(err, kv.ErrNotFound) {
		return "", ErrNotFound
	}
	return value, err
}

func (s *KVStore) Delete(ctx context.Context, name string) error {
	return s.kv.Remove(ctx, s.key(name))
}
