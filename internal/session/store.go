package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/kv"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/pawclick/clicker-api/internal/secrets"
	"go.uber.org/zap"
)

const keyPrefix = "session_"

// StorageKey returns the key-value entry key for an owner. One entry per
// wallet address by construction.
func StorageKey(owner common.Address) string {
	return keyPrefix + owner.Hex()
}

// Store persists at most one session record per owning wallet address.
// Expiry is enforced lazily at read time; stale and undecodable records are
// purged and reported as absent, never as errors.
type Store struct {
	kv      kv.Store
	secrets secrets.Store
	log     *zap.Logger
	now     func() time.Time
}

// NewStore creates a session store over the key-value boundary. secretStore
// may be nil, in which case the signer key stays inline in the record (the
// original single-store layout). now may be nil for the wall clock.
func NewStore(kvs kv.Store, secretStore secrets.Store, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		kv:      kvs,
		secrets: secretStore,
		log:     logger.Log,
		now:     now,
	}
}

// Load reads the record for an owner. Missing entries, undecodable entries
// (purged, with a warning) and expired entries (purged) all normalize to
// nil; only key-value I/O failures surface as errors.
func (s *Store) Load(ctx context.Context, owner common.Address) (*Record, error) {
	raw, err := s.kv.Get(ctx, StorageKey(owner))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session for %s: %w", owner.Hex(), err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn("Purging undecodable session record",
			zap.String("owner", owner.Hex()),
			zap.Error(fmt.Errorf("%w: %v", ErrMalformedSession, err)))
		_ = s.kv.Remove(ctx, StorageKey(owner))
		return nil, nil
	}

	if rec.ExpiresAtMillis <= s.now().UnixMilli() {
		s.log.Info("Purging expired session record",
			zap.String("owner", owner.Hex()),
			zap.Int64("expires_at_millis", rec.ExpiresAtMillis))
		if err := s.Clear(ctx, owner); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if rec.SignerPrivateKey == "" && s.secrets != nil {
		key, err := s.secrets.Get(ctx, owner.Hex())
		if errors.Is(err, secrets.ErrNotFound) {
			s.log.Warn("Purging session record with missing signer secret",
				zap.String("owner", owner.Hex()))
			_ = s.kv.Remove(ctx, StorageKey(owner))
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load signer secret for %s: %w", owner.Hex(), err)
		}
		rec.SignerPrivateKey = key
	}

	return &rec, nil
}

// Save overwrites any existing record for the owner. With a secret backend
// configured, the signer key is stored there and blanked from the key-value
// record.
func (s *Store) Save(ctx context.Context, owner common.Address, rec *Record) error {
	stored := *rec
	if s.secrets != nil {
		if err := s.secrets.Put(ctx, owner.Hex(), stored.SignerPrivateKey); err != nil {
			return fmt.Errorf("save signer secret for %s: %w", owner.Hex(), err)
		}
		stored.SignerPrivateKey = ""
	}

	raw, err := json.Marshal(&stored)
	if err != nil {
		return fmt.Errorf("marshal session for %s: %w", owner.Hex(), err)
	}
	if err := s.kv.Set(ctx, StorageKey(owner), string(raw)); err != nil {
		return fmt.Errorf("save session for %s: %w", owner.Hex(), err)
	}
	return nil
}

// Clear removes the owner's record and signer secret. Idempotent.
func (s *Store) Clear(ctx context.Context, owner common.Address) error {
	if err := s.kv.Remove(ctx, StorageKey(owner)); err != nil {
		return fmt.Errorf("clear session for %s: %w", owner.Hex(), err)
	}
	if s.secrets != nil {
		if err := s.secrets.Delete(ctx, owner.Hex()); err != nil {
			return fmt.Errorf("clear signer secret for %s: %w", owner.Hex(), err)
		}
	}
	return nil
}
