package session

import "errors"

// Typed failures surfaced by the session core. Callers match with errors.Is;
// wrapping preserves the underlying provider or storage reason.
var (
	// ErrMalformedSession marks a persisted record that failed to decode.
	// It is recovered locally (treated as a cache miss) and never escapes
	// Load.
	ErrMalformedSession = errors.New("malformed session record")

	// ErrCreationInProgress rejects a second creation attempt while one is
	// in flight.
	ErrCreationInProgress = errors.New("session creation already in progress")

	// ErrCreationFailed wraps provider rejection or a persistence failure
	// after registration. No partial active state survives it.
	ErrCreationFailed = errors.New("session creation failed")

	// ErrNoValidSession rejects delegated execution while no fully
	// reconstructed, unexpired session is held.
	ErrNoValidSession = errors.New("no valid session")

	// ErrExecutionFailed wraps a delegated call rejected by the provider or
	// the network. The session itself stays intact.
	ErrExecutionFailed = errors.New("session execution failed")

	// ErrRevocationFailed reports a provider-side revoke failure. Local
	// state is cleared regardless, so the on-chain grant may outlive the
	// cached session until its expiry.
	ErrRevocationFailed = errors.New("session revocation failed")
)
