package chain_test

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/chain"
	"github.com/pawclick/clicker-api/internal/contracts"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var (
	testUser  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testOther = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

// fakeCaller answers eth_call by dispatching on the method selector and
// ABI-packing canned outputs.
type fakeCaller struct {
	t       *testing.T
	outputs map[string][]any
	err     error
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	clickerABI := contracts.ClickerABI()
	for name, out := range f.outputs {
		method := clickerABI.Methods[name]
		if bytes.Equal(msg.Data[:4], method.ID) {
			packed, err := method.Outputs.Pack(out...)
			require.NoError(f.t, err)
			return packed, nil
		}
	}
	f.t.Fatalf("unexpected call: %x", msg.Data[:4])
	return nil, nil
}

func newTestReader(caller chain.Caller) *chain.Reader {
	return chain.NewReader(caller, contracts.ClickerAddress, contracts.ClickerABI())
}

func TestReader_Counters(t *testing.T) {
	ctx := context.Background()
	reader := newTestReader(&fakeCaller{t: t, outputs: map[string][]any{
		"totalClicks":   {big.NewInt(1234)},
		"userClicks":    {big.NewInt(56)},
		"getTotalUsers": {big.NewInt(7)},
	}})

	total, err := reader.TotalClicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1234", total.String())

	user, err := reader.UserClicks(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, "56", user.String())

	users, err := reader.TotalUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", users.String())
}

func TestReader_Owner(t *testing.T) {
	reader := newTestReader(&fakeCaller{t: t, outputs: map[string][]any{
		"owner": {testUser},
	}})

	owner, err := reader.Owner(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testUser, owner)
}

func TestReader_Leaderboard(t *testing.T) {
	reader := newTestReader(&fakeCaller{t: t, outputs: map[string][]any{
		"getLeaderboard": {
			[]common.Address{testUser, testOther},
			[]*big.Int{big.NewInt(90), big.NewInt(40)},
		},
	}})

	entries, err := reader.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, testUser, entries[0].Address)
	assert.Equal(t, "90", entries[0].Score.String())
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, testOther, entries[1].Address)
	assert.Equal(t, "40", entries[1].Score.String())
	assert.Equal(t, 2, entries[1].Rank)
}

func TestReader_UserRank(t *testing.T) {
	reader := newTestReader(&fakeCaller{t: t, outputs: map[string][]any{
		"getUserRank": {big.NewInt(3), big.NewInt(77)},
	}})

	rank, score, err := reader.UserRank(context.Background(), testUser)
	require.NoError(t, err)
	assert.Equal(t, "3", rank.String())
	assert.Equal(t, "77", score.String())
}

func TestReader_RPCError(t *testing.T) {
	reader := newTestReader(&fakeCaller{t: t, err: errors.New("connection refused")})

	_, err := reader.TotalClicks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
