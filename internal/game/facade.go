// Package game composes the session lifecycle with read-only contract
// polling into a single surface the HTTP layer consumes.
package game

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/chain"
	"github.com/pawclick/clicker-api/internal/executor"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/pawclick/clicker-api/internal/session"
	"go.uber.org/zap"
)

// ContractReader is the read-only contract surface the facade polls.
// *chain.Reader satisfies it.
type ContractReader interface {
	TotalClicks(ctx context.Context) (*big.Int, error)
	UserClicks(ctx context.Context, user common.Address) (*big.Int, error)
	Owner(ctx context.Context) (common.Address, error)
	Leaderboard(ctx context.Context, n int) ([]chain.LeaderboardEntry, error)
	UserRank(ctx context.Context, user common.Address) (rank, score *big.Int, err error)
	TotalUsers(ctx context.Context) (*big.Int, error)
}

// Config tunes the facade.
type Config struct {
	Contract    common.Address
	ContractABI abi.ABI

	// AutoCreateDelay schedules one automatic session creation per
	// connect cycle, after the delay, when no session exists. Zero
	// disables it.
	AutoCreateDelay time.Duration

	LeaderboardSize int
}

// Totals is the cached click counters shown to the player.
type Totals struct {
	TotalClicks *big.Int `json:"totalClicks"`
	UserClicks  *big.Int `json:"userClicks"`
}

// SessionInfo is a read-only snapshot of the session state for the API.
type SessionInfo struct {
	State           session.State `json:"state"`
	Valid           bool          `json:"valid"`
	Expired         bool          `json:"expired"`
	Owner           string        `json:"owner,omitempty"`
	SessionHash     string        `json:"sessionHash,omitempty"`
	ExpiresAtMillis int64         `json:"expiresAt,omitempty"`
	CreatedAtMillis int64         `json:"createdAt,omitempty"`
}

// Facade owns one connected wallet's game view: session management, game
// actions with direct fallback, and cached on-chain counters.
type Facade struct {
	lifecycle *session.Lifecycle
	reader    ContractReader
	exec      *executor.Executor
	direct    session.DelegatedClient // primary-wallet path; may be nil
	cfg       Config
	log       *zap.Logger

	mu        sync.Mutex
	totals    Totals
	autoTimer *time.Timer
}

// NewFacade wires the composed pieces. direct may be nil when no
// primary-wallet call path is available.
func NewFacade(lifecycle *session.Lifecycle, reader ContractReader, exec *executor.Executor, direct session.DelegatedClient, cfg Config) *Facade {
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = 10
	}
	return &Facade{
		lifecycle: lifecycle,
		reader:    reader,
		exec:      exec,
		direct:    direct,
		cfg:       cfg,
		totals:    Totals{TotalClicks: big.NewInt(0), UserClicks: big.NewInt(0)},
		log:       logger.Log,
	}
}

// Connect routes an owner change into the lifecycle and arms the one-shot
// auto-create policy for this connect cycle.
func (f *Facade) Connect(ctx context.Context, owner common.Address) error {
	if err := f.lifecycle.OnOwnerChanged(ctx, owner); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.autoTimer != nil {
		f.autoTimer.Stop()
		f.autoTimer = nil
	}
	if f.cfg.AutoCreateDelay > 0 && !f.lifecycle.IsValid() {
		f.autoTimer = time.AfterFunc(f.cfg.AutoCreateDelay, f.autoCreate)
	}
	return nil
}

// Disconnect clears the connected wallet and its session.
func (f *Facade) Disconnect(ctx context.Context) error {
	f.mu.Lock()
	if f.autoTimer != nil {
		f.autoTimer.Stop()
		f.autoTimer = nil
	}
	f.mu.Unlock()
	return f.lifecycle.OnOwnerChanged(ctx, common.Address{})
}

func (f *Facade) autoCreate() {
	_, err := f.lifecycle.CreateSession(context.Background())
	if err != nil && !errors.Is(err, session.ErrCreationInProgress) {
		f.log.Warn("Automatic session creation failed", zap.Error(err))
	}
}

// CreateSession creates a session for the connected wallet.
func (f *Facade) CreateSession(ctx context.Context) (*session.Record, error) {
	f.mu.Lock()
	if f.autoTimer != nil {
		f.autoTimer.Stop()
		f.autoTimer = nil
	}
	f.mu.Unlock()
	return f.lifecycle.CreateSession(ctx)
}

// RevokeSession revokes the active session.
func (f *Facade) RevokeSession(ctx context.Context) error {
	return f.lifecycle.RevokeSession(ctx)
}

// Session reports the current session snapshot.
func (f *Facade) Session() SessionInfo {
	info := SessionInfo{
		State:   f.lifecycle.State(),
		Valid:   f.lifecycle.IsValid(),
		Expired: f.lifecycle.IsExpired(),
	}
	if owner := f.lifecycle.Owner(); owner != (common.Address{}) {
		info.Owner = owner.Hex()
	}
	if rec := f.lifecycle.Record(); rec != nil {
		info.SessionHash = rec.PolicyHash
		info.ExpiresAtMillis = rec.ExpiresAtMillis
		info.CreatedAtMillis = rec.CreatedAtMillis
	}
	return info
}

// Click submits a click, through the session when valid, falling back to
// the direct path on execution failure.
func (f *Facade) Click(ctx context.Context) (*executor.TransactionHandle, error) {
	return f.submit(ctx, "click")
}

// Reset clears the leaderboard. Only the contract owner may do this.
func (f *Facade) Reset(ctx context.Context) (*executor.TransactionHandle, error) {
	contractOwner, err := f.reader.Owner(ctx)
	if err != nil {
		return nil, err
	}
	if contractOwner != f.lifecycle.Owner() {
		return nil, ErrNotContractOwner
	}
	return f.submit(ctx, "reset")
}

func (f *Facade) submit(ctx context.Context, function string) (*executor.TransactionHandle, error) {
	if f.lifecycle.IsValid() {
		hash, err := f.lifecycle.ExecuteWithSession(ctx, function)
		if err == nil {
			return f.exec.Track(hash), nil
		}
		// One failed call does not invalidate the session.
		f.log.Error("Session execution failed",
			zap.String("function", function),
			zap.Error(err))
		if f.direct == nil {
			return nil, err
		}
	} else if f.direct == nil {
		return nil, session.ErrNoValidSession
	}

	return f.exec.Execute(ctx, f.direct, f.cfg.Contract, f.cfg.ContractABI, function)
}

// Confirm waits for the transaction to mine and refreshes the cached
// totals once confirmed.
func (f *Facade) Confirm(ctx context.Context, handle *executor.TransactionHandle) error {
	if err := f.exec.Wait(ctx, handle); err != nil {
		return err
	}
	if handle.Status == executor.StatusConfirmed {
		if err := f.RefreshTotals(ctx); err != nil {
			f.log.Warn("Failed to refresh totals after confirmation", zap.Error(err))
		}
	}
	return nil
}

// RefreshTotals re-reads the click counters.
func (f *Facade) RefreshTotals(ctx context.Context) error {
	total, err := f.reader.TotalClicks(ctx)
	if err != nil {
		return err
	}
	user := big.NewInt(0)
	if owner := f.lifecycle.Owner(); owner != (common.Address{}) {
		user, err = f.reader.UserClicks(ctx, owner)
		if err != nil {
			return err
		}
	}

	f.mu.Lock()
	f.totals = Totals{TotalClicks: total, UserClicks: user}
	f.mu.Unlock()
	return nil
}

// Totals returns the cached counters.
func (f *Facade) Totals() Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totals
}

// Leaderboard reads the ranked top players.
func (f *Facade) Leaderboard(ctx context.Context) ([]chain.LeaderboardEntry, error) {
	return f.reader.Leaderboard(ctx, f.cfg.LeaderboardSize)
}

// Rank reads the connected player's rank, score and the total player
// count.
func (f *Facade) Rank(ctx context.Context) (rank, score, totalUsers *big.Int, err error) {
	owner := f.lifecycle.Owner()
	if owner == (common.Address{}) {
		return nil, nil, nil, ErrNoWallet
	}
	rank, score, err = f.reader.UserRank(ctx, owner)
	if err != nil {
		return nil, nil, nil, err
	}
	totalUsers, err = f.reader.TotalUsers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return rank, score, totalUsers, nil
}

// StartPolling refreshes the cached totals on an interval until ctx is
// done, mirroring the periodic leaderboard poll in the original client.
func (f *Facade) StartPolling(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := f.RefreshTotals(ctx); err != nil {
					f.log.Debug("Periodic totals refresh failed", zap.Error(err))
				}
			}
		}
	}()
}
