package session

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// LimitType mirrors the wallet provider's usage-limit encoding.
type LimitType int

const (
	LimitUnlimited LimitType = iota
	LimitLifetime
	LimitAllowance
)

// Limit bounds resource consumption by a delegated key.
type Limit struct {
	Type   LimitType
	Amount *big.Int
	Period *big.Int
}

// Constraint narrows a call policy to specific calldata values. Carried in
// wire form because this application never sets any.
type Constraint struct {
	Index     uint64         `json:"index"`
	Condition uint8          `json:"condition"`
	RefValue  string         `json:"refValue"`
	Limit     PersistedLimit `json:"limit"`
}

// CallPolicy allow-lists one contract entry point for the delegated key.
type CallPolicy struct {
	Target         common.Address
	Selector       [4]byte
	ValueLimit     Limit
	MaxValuePerUse *big.Int
	Constraints    []Constraint
}

// TransferPolicy allow-lists a native-asset transfer target. Always empty
// here; the delegated key may not move value.
type TransferPolicy struct {
	Target         common.Address
	MaxValuePerUse *big.Int
	ValueLimit     Limit
}

// Policy is the authorization granted to a delegated signer.
type Policy struct {
	Signer           common.Address
	ExpiresAt        *big.Int // unix seconds
	FeeLimit         Limit
	CallPolicies     []CallPolicy
	TransferPolicies []TransferPolicy
}

// EntryPoint names one invocable contract function by target address and
// full signature (e.g. "click()").
type EntryPoint struct {
	Target    common.Address
	Signature string
}

// SelectorFor derives the 4-byte function selector for a signature.
func SelectorFor(signature string) [4]byte {
	var selector [4]byte
	copy(selector[:], crypto.Keccak256([]byte(signature))[:4])
	return selector
}

// BuildPolicy constructs a session policy scoped to exactly the given entry
// points. Pure construction: no wallet or network state is touched, and the
// result is fully determined by the arguments.
//
// Each entry point is granted call permission only. maxValuePerUse is zero
// and the value limit is Unlimited in the sense of "no ETH-value ceiling
// tracked, because none is permitted to move".
func BuildPolicy(signer common.Address, entryPoints []EntryPoint, ttl time.Duration, feeLimit *big.Int, now time.Time) Policy {
	callPolicies := make([]CallPolicy, 0, len(entryPoints))
	for _, ep := range entryPoints {
		callPolicies = append(callPolicies, CallPolicy{
			Target:   ep.Target,
			Selector: SelectorFor(ep.Signature),
			ValueLimit: Limit{
				Type:   LimitUnlimited,
				Amount: big.NewInt(0),
				Period: big.NewInt(0),
			},
			MaxValuePerUse: big.NewInt(0),
			Constraints:    []Constraint{},
		})
	}

	return Policy{
		Signer:    signer,
		ExpiresAt: big.NewInt(now.Unix() + int64(ttl/time.Second)),
		FeeLimit: Limit{
			Type:   LimitLifetime,
			Amount: new(big.Int).Set(feeLimit),
			Period: big.NewInt(0),
		},
		CallPolicies:     callPolicies,
		TransferPolicies: []TransferPolicy{},
	}
}

// Allows reports whether the policy allow-lists the given target and
// selector.
func (p Policy) Allows(target common.Address, selector [4]byte) bool {
	for _, cp := range p.CallPolicies {
		if cp.Target == target && cp.Selector == selector {
			return true
		}
	}
	return false
}
