package session_test

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/pawclick/clicker-api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePolicy_RoundTrip(t *testing.T) {
	policy := session.BuildPolicy(testSigner, testEntryPoints(), 24*time.Hour,
		big.NewInt(1_000_000_000_000_000_000), time.Unix(1_700_000_000, 0))

	decoded, err := session.DecodePolicy(session.EncodePolicy(policy))
	require.NoError(t, err)
	assert.Equal(t, policy, decoded)

	// The identifier survives the round trip too.
	originalHash, err := session.PolicyHash(policy)
	require.NoError(t, err)
	decodedHash, err := session.PolicyHash(decoded)
	require.NoError(t, err)
	assert.Equal(t, originalHash, decodedHash)
}

func TestDecodePolicy_Malformed(t *testing.T) {
	valid := session.EncodePolicy(session.BuildPolicy(testSigner, testEntryPoints(),
		time.Hour, big.NewInt(1), time.Unix(0, 0)))

	tests := []struct {
		name   string
		mutate func(p *session.PersistedPolicy)
	}{
		{"non-decimal expiresAt", func(p *session.PersistedPolicy) { p.ExpiresAt = "0xdeadbeef" }},
		{"empty fee limit", func(p *session.PersistedPolicy) { p.FeeLimit.Limit = "" }},
		{"bad selector hex", func(p *session.PersistedPolicy) { p.CallPolicies[0].Selector = "not-hex" }},
		{"short selector", func(p *session.PersistedPolicy) { p.CallPolicies[0].Selector = "0x1234" }},
		{"non-decimal maxValuePerUse", func(p *session.PersistedPolicy) { p.CallPolicies[0].MaxValuePerUse = "one" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			broken := valid
			broken.CallPolicies = append([]session.PersistedCallPolicy(nil), valid.CallPolicies...)
			tt.mutate(&broken)

			_, err := session.DecodePolicy(broken)
			require.Error(t, err)
			assert.ErrorIs(t, err, session.ErrMalformedSession)
		})
	}
}

func TestPolicyHash_ContentDerived(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	base := session.BuildPolicy(testSigner, testEntryPoints(), time.Hour, big.NewInt(1), now)

	baseHash, err := session.PolicyHash(base)
	require.NoError(t, err)

	later := session.BuildPolicy(testSigner, testEntryPoints(), time.Hour, big.NewInt(1), now.Add(time.Second))
	laterHash, err := session.PolicyHash(later)
	require.NoError(t, err)

	assert.NotEqual(t, baseHash, laterHash)
	assert.Regexp(t, "^0x[0-9a-f]{64}$", baseHash)
}

func TestRecord_WireFieldNames(t *testing.T) {
	rec := session.Record{
		Policy:           session.EncodePolicy(session.BuildPolicy(testSigner, nil, time.Hour, big.NewInt(1), time.Unix(0, 0))),
		PolicyHash:       "0xabc",
		ExpiresAtMillis:  1000,
		CreatedAtMillis:  500,
		SignerPrivateKey: "0xkey",
	}

	raw, err := json.Marshal(&rec)
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	for _, key := range []string{"sessionConfig", "sessionHash", "expiresAt", "createdAt", "sessionSignerPrivateKey"} {
		assert.Contains(t, fields, key)
	}
}
