package session

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/logger"
	"go.uber.org/zap"
)

// WalletProvider is the wallet SDK boundary: it registers and revokes
// session policies on behalf of the owning smart-contract wallet, and binds
// a signer/policy pair into a client that can act under the policy.
type WalletProvider interface {
	RegisterSession(ctx context.Context, owner common.Address, policy Policy) error
	RevokeSession(ctx context.Context, owner common.Address, policy Policy) error
	SessionClient(signer *Signer, policy Policy) (DelegatedClient, error)
}

// DelegatedClient submits contract calls under a session policy.
type DelegatedClient interface {
	Call(ctx context.Context, target common.Address, contractABI abi.ABI, method string, args ...any) (common.Hash, error)
}

// State names the lifecycle machine's position.
type State string

const (
	StateDisconnected State = "disconnected"
	StateNoSession    State = "no_session"
	StateCreating     State = "creating"
	StateActive       State = "active"
	StateRevoking     State = "revoking"
)

// LifecycleConfig scopes every created session: which contract entry points
// the delegated key may call, for how long, and under what fee ceiling.
type LifecycleConfig struct {
	Contract    common.Address
	ContractABI abi.ABI
	EntryPoints []EntryPoint
	TTL         time.Duration
	FeeLimit    *big.Int
}

// Lifecycle owns the session runtime state for the currently connected
// wallet: creation, restoration from the store, validity, delegated
// execution, revocation. Transitions are driven by explicit inputs
// (OnOwnerChanged, CreateSession, RevokeSession), never by ambient side
// effects, and are atomic with respect to concurrent triggers.
type Lifecycle struct {
	provider WalletProvider
	store    *Store
	cfg      LifecycleConfig
	log      *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	state    State
	owner    common.Address
	creating bool
	record   *Record
	policy   *Policy
	signer   *Signer
	client   DelegatedClient
}

// NewLifecycle creates a lifecycle in the Disconnected state. now may be nil
// for the wall clock.
func NewLifecycle(provider WalletProvider, store *Store, cfg LifecycleConfig, now func() time.Time) *Lifecycle {
	if now == nil {
		now = time.Now
	}
	return &Lifecycle{
		provider: provider,
		store:    store,
		cfg:      cfg,
		log:      logger.Log,
		now:      now,
		state:    StateDisconnected,
	}
}

// State reports the current machine state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Owner reports the connected wallet address, zero when disconnected.
func (l *Lifecycle) Owner() common.Address {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.owner
}

// Record returns a copy of the persisted session record held in memory, or
// nil.
func (l *Lifecycle) Record() *Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.record == nil {
		return nil
	}
	rec := *l.record
	return &rec
}

// IsValid reports whether a session can be used for delegated execution:
// a persisted record is held AND it is unexpired AND the policy, signer and
// delegated client are all loaded. A partially reconstructed session is
// invalid.
func (l *Lifecycle) IsValid() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.validLocked()
}

// IsExpired reports whether a record is held but past its expiry.
func (l *Lifecycle) IsExpired() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.record != nil && l.record.ExpiresAtMillis <= l.now().UnixMilli()
}

func (l *Lifecycle) validLocked() bool {
	return l.record != nil &&
		l.record.ExpiresAtMillis > l.now().UnixMilli() &&
		l.policy != nil &&
		l.signer != nil &&
		l.client != nil
}

func (l *Lifecycle) clearRuntimeLocked() {
	l.record = nil
	l.policy = nil
	l.signer = nil
	l.client = nil
}

// OnOwnerChanged is the explicit owner-change transition input. Passing the
// zero address means the wallet disconnected. Any active session for the
// previous owner is revoked best-effort and its state cleared; clearing is
// scoped to that owner's entry only. A stored session for the new owner is
// restored to Active when it fully reconstructs.
func (l *Lifecycle) OnOwnerChanged(ctx context.Context, owner common.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if owner == l.owner {
		return nil
	}

	if l.owner != (common.Address{}) {
		l.teardownLocked(ctx)
	}

	l.owner = owner
	if owner == (common.Address{}) {
		l.state = StateDisconnected
		return nil
	}
	l.state = StateNoSession

	rec, err := l.store.Load(ctx, owner)
	if err != nil {
		return err
	}
	if rec == nil {
		return nil
	}
	l.restoreLocked(ctx, owner, rec)
	return nil
}

// teardownLocked revokes (best-effort) and clears the previous owner's
// session.
func (l *Lifecycle) teardownLocked(ctx context.Context) {
	if l.policy != nil {
		if err := l.provider.RevokeSession(ctx, l.owner, *l.policy); err != nil {
			l.log.Warn("Best-effort session revoke on disconnect failed",
				zap.String("owner", l.owner.Hex()),
				zap.Error(err))
		}
	}
	if err := l.store.Clear(ctx, l.owner); err != nil {
		l.log.Warn("Failed to clear stored session on disconnect",
			zap.String("owner", l.owner.Hex()),
			zap.Error(err))
	}
	l.clearRuntimeLocked()
}

// restoreLocked rebuilds runtime state from a stored record. Undecodable
// material purges the record; a failed client derivation leaves the record
// in place but the session invalid.
func (l *Lifecycle) restoreLocked(ctx context.Context, owner common.Address, rec *Record) {
	policy, err := DecodePolicy(rec.Policy)
	if err != nil {
		l.log.Warn("Purging session with undecodable policy",
			zap.String("owner", owner.Hex()),
			zap.Error(err))
		_ = l.store.Clear(ctx, owner)
		return
	}

	signer, err := SignerFromHex(rec.SignerPrivateKey)
	if err != nil {
		l.log.Warn("Purging session with unparseable signer key",
			zap.String("owner", owner.Hex()),
			zap.Error(err))
		_ = l.store.Clear(ctx, owner)
		return
	}

	client, err := l.provider.SessionClient(signer, policy)
	if err != nil {
		l.log.Warn("Failed to derive session client from stored session",
			zap.String("owner", owner.Hex()),
			zap.Error(err))
		return
	}

	l.record = rec
	l.policy = &policy
	l.signer = signer
	l.client = client
	l.state = StateActive

	l.log.Info("Restored session from store",
		zap.String("owner", owner.Hex()),
		zap.String("session_hash", rec.PolicyHash),
		zap.Int64("expires_at_millis", rec.ExpiresAtMillis))
}

// CreateSession establishes a new delegated session for the connected
// owner: generate a signer, build the policy, register it with the wallet
// provider, derive the delegated client, persist. The session becomes
// observable as Active only after both provider confirmation and
// persistence succeed; any failure leaves NoSession with nothing retained.
// An owner change while creation is in flight wins: the late result is
// discarded and the state the change installed is left alone.
func (l *Lifecycle) CreateSession(ctx context.Context) (*Record, error) {
	l.mu.Lock()
	if l.owner == (common.Address{}) {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: no wallet connected", ErrCreationFailed)
	}
	if l.creating {
		l.mu.Unlock()
		return nil, ErrCreationInProgress
	}
	owner := l.owner
	l.creating = true
	l.state = StateCreating
	l.mu.Unlock()

	rec, policy, signer, client, err := l.establish(ctx, owner)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.creating = false
	// An owner change while the lock was released rewrote the state label;
	// state is only ours to touch while it is still Creating for this owner.
	interrupted := l.owner != owner || l.state != StateCreating
	if err != nil {
		if !interrupted {
			l.state = StateNoSession
		}
		return nil, err
	}
	if interrupted {
		// Do not adopt a session the current machine position no longer
		// expects.
		_ = l.store.Clear(ctx, owner)
		return nil, fmt.Errorf("%w: wallet changed during creation", ErrCreationFailed)
	}

	l.record = rec
	l.policy = policy
	l.signer = signer
	l.client = client
	l.state = StateActive

	l.log.Info("Session created",
		zap.String("owner", owner.Hex()),
		zap.String("signer", signer.Address().Hex()),
		zap.String("session_hash", rec.PolicyHash),
		zap.Int64("expires_at_millis", rec.ExpiresAtMillis))

	return rec, nil
}

func (l *Lifecycle) establish(ctx context.Context, owner common.Address) (*Record, *Policy, *Signer, DelegatedClient, error) {
	signer, err := GenerateSigner()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: %w", ErrCreationFailed, err)
	}

	policy := BuildPolicy(signer.Address(), l.cfg.EntryPoints, l.cfg.TTL, l.cfg.FeeLimit, l.now())

	// This is the step that may require user approval on the wallet side.
	if err := l.provider.RegisterSession(ctx, owner, policy); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: register policy: %w", ErrCreationFailed, err)
	}

	hash, err := PolicyHash(policy)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: derive session hash: %w", ErrCreationFailed, err)
	}

	client, err := l.provider.SessionClient(signer, policy)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("%w: derive session client: %w", ErrCreationFailed, err)
	}

	rec := &Record{
		Policy:           EncodePolicy(policy),
		PolicyHash:       hash,
		ExpiresAtMillis:  policy.ExpiresAt.Int64() * 1000,
		CreatedAtMillis:  l.now().UnixMilli(),
		SignerPrivateKey: signer.PrivateKeyHex(),
	}

	if err := l.store.Save(ctx, owner, rec); err != nil {
		// Registration succeeded but persistence did not; the source of
		// truth is "persisted AND provider-confirmed", so discard
		// everything.
		_ = l.store.Clear(ctx, owner)
		return nil, nil, nil, nil, fmt.Errorf("%w: persist session: %w", ErrCreationFailed, err)
	}

	return rec, &policy, signer, client, nil
}

// ExecuteWithSession submits a contract call through the delegated client.
// Requires a valid session; a rejected call surfaces ErrExecutionFailed and
// leaves the session intact.
func (l *Lifecycle) ExecuteWithSession(ctx context.Context, function string) (common.Hash, error) {
	l.mu.Lock()
	if !l.validLocked() {
		l.mu.Unlock()
		return common.Hash{}, ErrNoValidSession
	}
	client := l.client
	target := l.cfg.Contract
	l.mu.Unlock()

	hash, err := client.Call(ctx, target, l.cfg.ContractABI, function)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: call %s: %w", ErrExecutionFailed, function, err)
	}
	return hash, nil
}

// RevokeSession asks the provider to revoke the active policy and clears
// local state. Local cleanup happens regardless of the provider outcome; a
// provider failure still surfaces as ErrRevocationFailed after cleanup.
func (l *Lifecycle) RevokeSession(ctx context.Context) error {
	l.mu.Lock()
	if l.policy == nil {
		l.mu.Unlock()
		return nil
	}
	owner := l.owner
	policy := *l.policy
	l.state = StateRevoking
	l.mu.Unlock()

	revokeErr := l.provider.RevokeSession(ctx, owner, policy)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.clearRuntimeLocked()
	if err := l.store.Clear(ctx, owner); err != nil {
		l.log.Warn("Failed to clear stored session on revoke",
			zap.String("owner", owner.Hex()),
			zap.Error(err))
	}
	if l.owner == (common.Address{}) {
		l.state = StateDisconnected
	} else {
		l.state = StateNoSession
	}

	if revokeErr != nil {
		return fmt.Errorf("%w: %w", ErrRevocationFailed, revokeErr)
	}
	return nil
}
