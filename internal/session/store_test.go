package session_test

import (
	"context"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/kv"
	"github.com/pawclick/clicker-api/internal/secrets"
	"github.com/pawclick/clicker-api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRecord(t *testing.T, now time.Time, ttl time.Duration) *session.Record {
	t.Helper()

	signer, err := session.GenerateSigner()
	require.NoError(t, err)

	policy := session.BuildPolicy(signer.Address(), testEntryPoints(), ttl, big.NewInt(1), now)
	hash, err := session.PolicyHash(policy)
	require.NoError(t, err)

	return &session.Record{
		Policy:           session.EncodePolicy(policy),
		PolicyHash:       hash,
		ExpiresAtMillis:  policy.ExpiresAt.Int64() * 1000,
		CreatedAtMillis:  now.UnixMilli(),
		SignerPrivateKey: signer.PrivateKeyHex(),
	}
}

func TestStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	mem := kv.NewMemoryStore()
	store := session.NewStore(mem, nil, clock.Now)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000001")

	rec := newTestRecord(t, clock.Now(), 24*time.Hour)
	require.NoError(t, store.Save(ctx, owner, rec))

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec, loaded)
}

func TestStore_LoadMissing(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(kv.NewMemoryStore(), nil, nil)

	loaded, err := store.Load(ctx, common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadExpiredPurges(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	mem := kv.NewMemoryStore()
	store := session.NewStore(mem, nil, clock.Now)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000002")

	rec := newTestRecord(t, clock.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, owner, rec))

	clock.Advance(2 * time.Hour)

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Equal(t, 0, mem.Len())
}

func TestStore_LoadExactExpiryBoundary(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	store := session.NewStore(kv.NewMemoryStore(), nil, clock.Now)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000003")

	rec := newTestRecord(t, clock.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, owner, rec))

	// A record whose expiry equals the current instant is already stale.
	clock.t = time.UnixMilli(rec.ExpiresAtMillis)

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_LoadUndecodablePurges(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	store := session.NewStore(mem, nil, nil)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000004")

	require.NoError(t, mem.Set(ctx, session.StorageKey(owner), "{not json"))

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Equal(t, 0, mem.Len())
}

func TestStore_LastSaveWins(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	mem := kv.NewMemoryStore()
	store := session.NewStore(mem, nil, clock.Now)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000005")

	first := newTestRecord(t, clock.Now(), time.Hour)
	second := newTestRecord(t, clock.Now(), 2*time.Hour)
	require.NoError(t, store.Save(ctx, owner, first))
	require.NoError(t, store.Save(ctx, owner, second))

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
	assert.Equal(t, 1, mem.Len())
}

func TestStore_PerOwnerIsolation(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	mem := kv.NewMemoryStore()
	store := session.NewStore(mem, nil, clock.Now)
	ownerA := common.HexToAddress("0xAAA0000000000000000000000000000000000006")
	ownerB := common.HexToAddress("0xBBB0000000000000000000000000000000000006")

	recA := newTestRecord(t, clock.Now(), time.Hour)
	recB := newTestRecord(t, clock.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, ownerA, recA))
	require.NoError(t, store.Save(ctx, ownerB, recB))

	require.NoError(t, store.Clear(ctx, ownerA))

	gone, err := store.Load(ctx, ownerA)
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := store.Load(ctx, ownerB)
	require.NoError(t, err)
	assert.Equal(t, recB, kept)
}

func TestStore_ClearIdempotent(t *testing.T) {
	ctx := context.Background()
	store := session.NewStore(kv.NewMemoryStore(), nil, nil)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000007")

	require.NoError(t, store.Clear(ctx, owner))
	require.NoError(t, store.Clear(ctx, owner))
}

func TestStore_SecretBackendRoutesSignerKey(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	mem := kv.NewMemoryStore()
	secretMem := kv.NewMemoryStore()
	secretStore := secrets.NewKVStore(secretMem, "signer")
	store := session.NewStore(mem, secretStore, clock.Now)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000008")

	rec := newTestRecord(t, clock.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, owner, rec))

	// The key-value record carries no key material.
	raw, err := mem.Get(ctx, session.StorageKey(owner))
	require.NoError(t, err)
	var onDisk session.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &onDisk))
	assert.Empty(t, onDisk.SignerPrivateKey)

	// Load reattaches it from the secret backend.
	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, rec.SignerPrivateKey, loaded.SignerPrivateKey)

	// Clearing removes both halves.
	require.NoError(t, store.Clear(ctx, owner))
	assert.Equal(t, 0, mem.Len())
	assert.Equal(t, 0, secretMem.Len())
}

func TestStore_MissingSecretPurgesRecord(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	mem := kv.NewMemoryStore()
	secretMem := kv.NewMemoryStore()
	store := session.NewStore(mem, secrets.NewKVStore(secretMem, "signer"), clock.Now)
	owner := common.HexToAddress("0xAAA0000000000000000000000000000000000009")

	rec := newTestRecord(t, clock.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, owner, rec))
	require.NoError(t, secretMem.Remove(ctx, "signer/"+owner.Hex()))

	loaded, err := store.Load(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, loaded)
	assert.Equal(t, 0, mem.Len())
}
