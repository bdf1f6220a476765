package session

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"
)

// Persisted forms are string-safe: every large-integer field becomes a
// decimal string, addresses and selectors hex strings. Field names match the
// record layout the original web client wrote to localStorage, so cached
// sessions remain readable across implementations.

type PersistedLimit struct {
	LimitType int    `json:"limitType"`
	Limit     string `json:"limit"`
	Period    string `json:"period"`
}

type PersistedCallPolicy struct {
	Target         string         `json:"target"`
	Selector       string         `json:"selector"`
	ValueLimit     PersistedLimit `json:"valueLimit"`
	MaxValuePerUse string         `json:"maxValuePerUse"`
	Constraints    []Constraint   `json:"constraints"`
}

type PersistedTransferPolicy struct {
	Target         string         `json:"target"`
	MaxValuePerUse string         `json:"maxValuePerUse"`
	ValueLimit     PersistedLimit `json:"valueLimit"`
}

type PersistedPolicy struct {
	Signer           string                    `json:"signer"`
	ExpiresAt        string                    `json:"expiresAt"`
	FeeLimit         PersistedLimit            `json:"feeLimit"`
	CallPolicies     []PersistedCallPolicy     `json:"callPolicies"`
	TransferPolicies []PersistedTransferPolicy `json:"transferPolicies"`
}

// Record is the serialized session kept in the key-value store, one per
// owning wallet address. ExpiresAtMillis duplicates the policy expiry in
// milliseconds so readers can evaluate staleness without decoding the
// policy.
type Record struct {
	Policy           PersistedPolicy `json:"sessionConfig"`
	PolicyHash       string          `json:"sessionHash"`
	ExpiresAtMillis  int64           `json:"expiresAt"`
	CreatedAtMillis  int64           `json:"createdAt"`
	SignerPrivateKey string          `json:"sessionSignerPrivateKey"`
}

// EncodePolicy converts a policy to its persisted form.
func EncodePolicy(p Policy) PersistedPolicy {
	out := PersistedPolicy{
		Signer:    p.Signer.Hex(),
		ExpiresAt: p.ExpiresAt.String(),
		FeeLimit:  encodeLimit(p.FeeLimit),
	}
	if p.CallPolicies != nil {
		out.CallPolicies = make([]PersistedCallPolicy, 0, len(p.CallPolicies))
		for _, cp := range p.CallPolicies {
			out.CallPolicies = append(out.CallPolicies, PersistedCallPolicy{
				Target:         cp.Target.Hex(),
				Selector:       hexutil.Encode(cp.Selector[:]),
				ValueLimit:     encodeLimit(cp.ValueLimit),
				MaxValuePerUse: cp.MaxValuePerUse.String(),
				Constraints:    cp.Constraints,
			})
		}
	}
	if p.TransferPolicies != nil {
		out.TransferPolicies = make([]PersistedTransferPolicy, 0, len(p.TransferPolicies))
		for _, tp := range p.TransferPolicies {
			out.TransferPolicies = append(out.TransferPolicies, PersistedTransferPolicy{
				Target:         tp.Target.Hex(),
				MaxValuePerUse: tp.MaxValuePerUse.String(),
				ValueLimit:     encodeLimit(tp.ValueLimit),
			})
		}
	}
	return out
}

// DecodePolicy parses a persisted policy back to its typed form. It is the
// inverse of EncodePolicy for all well-formed inputs. Structural problems
// surface as ErrMalformedSession, never as a raw parse error.
func DecodePolicy(p PersistedPolicy) (Policy, error) {
	expiresAt, err := parseBig(p.ExpiresAt, "expiresAt")
	if err != nil {
		return Policy{}, err
	}
	feeLimit, err := decodeLimit(p.FeeLimit, "feeLimit")
	if err != nil {
		return Policy{}, err
	}

	out := Policy{
		Signer:    common.HexToAddress(p.Signer),
		ExpiresAt: expiresAt,
		FeeLimit:  feeLimit,
	}

	if p.CallPolicies != nil {
		out.CallPolicies = make([]CallPolicy, 0, len(p.CallPolicies))
		for i, cp := range p.CallPolicies {
			selector, err := parseSelector(cp.Selector)
			if err != nil {
				return Policy{}, fmt.Errorf("%w: callPolicies[%d]: %v", ErrMalformedSession, i, err)
			}
			valueLimit, err := decodeLimit(cp.ValueLimit, fmt.Sprintf("callPolicies[%d].valueLimit", i))
			if err != nil {
				return Policy{}, err
			}
			maxValue, err := parseBig(cp.MaxValuePerUse, fmt.Sprintf("callPolicies[%d].maxValuePerUse", i))
			if err != nil {
				return Policy{}, err
			}
			out.CallPolicies = append(out.CallPolicies, CallPolicy{
				Target:         common.HexToAddress(cp.Target),
				Selector:       selector,
				ValueLimit:     valueLimit,
				MaxValuePerUse: maxValue,
				Constraints:    cp.Constraints,
			})
		}
	}

	if p.TransferPolicies != nil {
		out.TransferPolicies = make([]TransferPolicy, 0, len(p.TransferPolicies))
		for i, tp := range p.TransferPolicies {
			valueLimit, err := decodeLimit(tp.ValueLimit, fmt.Sprintf("transferPolicies[%d].valueLimit", i))
			if err != nil {
				return Policy{}, err
			}
			maxValue, err := parseBig(tp.MaxValuePerUse, fmt.Sprintf("transferPolicies[%d].maxValuePerUse", i))
			if err != nil {
				return Policy{}, err
			}
			out.TransferPolicies = append(out.TransferPolicies, TransferPolicy{
				Target:         common.HexToAddress(tp.Target),
				MaxValuePerUse: maxValue,
				ValueLimit:     valueLimit,
			})
		}
	}

	return out, nil
}

// PolicyHash derives the content-derived session identifier: keccak256 over
// the JCS canonical JSON of the persisted policy form.
func PolicyHash(p Policy) (string, error) {
	raw, err := json.Marshal(EncodePolicy(p))
	if err != nil {
		return "", fmt.Errorf("marshal policy: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize policy: %w", err)
	}
	return hexutil.Encode(crypto.Keccak256(canonical)), nil
}

func encodeLimit(l Limit) PersistedLimit {
	return PersistedLimit{
		LimitType: int(l.Type),
		Limit:     l.Amount.String(),
		Period:    l.Period.String(),
	}
}

func decodeLimit(l PersistedLimit, field string) (Limit, error) {
	amount, err := parseBig(l.Limit, field+".limit")
	if err != nil {
		return Limit{}, err
	}
	period, err := parseBig(l.Period, field+".period")
	if err != nil {
		return Limit{}, err
	}
	return Limit{Type: LimitType(l.LimitType), Amount: amount, Period: period}, nil
}

func parseBig(s, field string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a decimal integer: %q", ErrMalformedSession, field, s)
	}
	return value, nil
}

func parseSelector(s string) ([4]byte, error) {
	var selector [4]byte
	raw, err := hexutil.Decode(s)
	if err != nil {
		return selector, fmt.Errorf("selector %q: %v", s, err)
	}
	if len(raw) != 4 {
		return selector, fmt.Errorf("selector %q: want 4 bytes, got %d", s, len(raw))
	}
	copy(selector[:], raw)
	return selector, nil
}
