// Package executor issues delegated contract calls and tracks the resulting
// transactions through to confirmation.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/pawclick/clicker-api/internal/session"
	"go.uber.org/zap"
)

// Status of a tracked transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// TransactionHandle tracks one submitted transaction. Session-based and
// direct writes both produce handles and converge on the same confirmation
// contract.
type TransactionHandle struct {
	Hash   common.Hash `json:"hash"`
	Status Status      `json:"status"`
}

// ReceiptSource resolves a transaction hash to its receipt once mined.
// *ethclient.Client satisfies it.
type ReceiptSource interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Executor submits calls through delegated clients and polls receipts.
type Executor struct {
	receipts     ReceiptSource
	log          *zap.Logger
	pollInterval time.Duration
}

// New creates an executor. pollInterval <= 0 defaults to two seconds.
func New(receipts ReceiptSource, pollInterval time.Duration) *Executor {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Executor{
		receipts:     receipts,
		log:          logger.Log,
		pollInterval: pollInterval,
	}
}

// Execute issues a contract call through the given delegated client and
// returns a pending handle. A rejected call surfaces as ErrExecutionFailed
// carrying the provider's reason.
func (e *Executor) Execute(ctx context.Context, client session.DelegatedClient, target common.Address, contractABI abi.ABI, entryPoint string) (*TransactionHandle, error) {
	hash, err := client.Call(ctx, target, contractABI, entryPoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", session.ErrExecutionFailed, entryPoint, err)
	}
	return e.Track(hash), nil
}

// Track wraps an already-submitted transaction hash in a pending handle.
func (e *Executor) Track(hash common.Hash) *TransactionHandle {
	return &TransactionHandle{Hash: hash, Status: StatusPending}
}

// Wait polls until the transaction is mined, then updates the handle's
// status from the receipt. It returns the context error if cancelled first.
func (e *Executor) Wait(ctx context.Context, handle *TransactionHandle) error {
	for {
		receipt, err := e.receipts.TransactionReceipt(ctx, handle.Hash)
		if err == nil {
			if receipt.Status == types.ReceiptStatusSuccessful {
				handle.Status = StatusConfirmed
			} else {
				handle.Status = StatusFailed
			}
			e.log.Debug("Transaction confirmed",
				zap.String("hash", handle.Hash.Hex()),
				zap.String("status", string(handle.Status)))
			return nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return fmt.Errorf("transaction receipt for %s: %w", handle.Hash.Hex(), err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.pollInterval):
		}
	}
}
