package game

import "errors"

// Facade-level failures callers match with errors.Is.
var (
	// ErrNotContractOwner rejects a reset attempt by anyone other than the
	// contract owner.
	ErrNotContractOwner = errors.New("only the contract owner can reset")

	// ErrNoWallet rejects a wallet-scoped read while no wallet is
	// connected.
	ErrNoWallet = errors.New("no wallet connected")
)
