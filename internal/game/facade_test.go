package game_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pawclick/clicker-api/internal/chain"
	"github.com/pawclick/clicker-api/internal/contracts"
	"github.com/pawclick/clicker-api/internal/executor"
	"github.com/pawclick/clicker-api/internal/game"
	"github.com/pawclick/clicker-api/internal/kv"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/pawclick/clicker-api/internal/mocks"
	"github.com/pawclick/clicker-api/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	logger.InitLogger("test")
}

var (
	testContract = common.HexToAddress("0x83d3e715a0230BE1A79D327e61cF5A08b7c4dc80")
	player       = common.HexToAddress("0xAaAa000000000000000000000000000000000001")
	otherPlayer  = common.HexToAddress("0xBbBb000000000000000000000000000000000002")
	testHash     = common.HexToHash("0xabcd")
)

type facadeFixture struct {
	provider *mocks.MockWalletProvider
	client   *mocks.MockDelegatedClient
	reader   *mocks.MockContractReader
	receipts *mocks.MockReceiptSource
	direct   *mocks.MockDelegatedClient
	facade   *game.Facade
}

func newFacadeFixture(t *testing.T, ctrl *gomock.Controller, withDirect bool, autoCreate time.Duration) *facadeFixture {
	t.Helper()

	f := &facadeFixture{
		provider: mocks.NewMockWalletProvider(ctrl),
		client:   mocks.NewMockDelegatedClient(ctrl),
		reader:   mocks.NewMockContractReader(ctrl),
		receipts: mocks.NewMockReceiptSource(ctrl),
	}

	store := session.NewStore(kv.NewMemoryStore(), nil, nil)
	lc := session.NewLifecycle(f.provider, store, session.LifecycleConfig{
		Contract:    testContract,
		ContractABI: contracts.ClickerABI(),
		EntryPoints: []session.EntryPoint{
			{Target: testContract, Signature: contracts.ClickSignature},
			{Target: testContract, Signature: contracts.ResetSignature},
		},
		TTL:      24 * time.Hour,
		FeeLimit: big.NewInt(1),
	}, nil)

	var direct session.DelegatedClient
	if withDirect {
		f.direct = mocks.NewMockDelegatedClient(ctrl)
		direct = f.direct
	}

	f.facade = game.NewFacade(lc, f.reader, executor.New(f.receipts, time.Millisecond), direct, game.Config{
		Contract:        testContract,
		ContractABI:     contracts.ClickerABI(),
		AutoCreateDelay: autoCreate,
		LeaderboardSize: 10,
	})
	return f
}

func (f *facadeFixture) connectWithSession(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	f.provider.EXPECT().RegisterSession(gomock.Any(), player, gomock.Any()).Return(nil)
	f.provider.EXPECT().SessionClient(gomock.Any(), gomock.Any()).Return(f.client, nil)

	require.NoError(t, f.facade.Connect(ctx, player))
	_, err := f.facade.CreateSession(ctx)
	require.NoError(t, err)
}

func TestFacade_ClickThroughSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)
	f.connectWithSession(t)

	f.client.EXPECT().
		Call(gomock.Any(), testContract, gomock.Any(), contracts.ClickFunction).
		Return(testHash, nil)

	handle, err := f.facade.Click(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testHash, handle.Hash)
	assert.Equal(t, executor.StatusPending, handle.Status)
}

func TestFacade_ConfirmRefreshesTotals(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)
	f.connectWithSession(t)

	f.client.EXPECT().
		Call(gomock.Any(), testContract, gomock.Any(), contracts.ClickFunction).
		Return(testHash, nil)
	f.receipts.EXPECT().
		TransactionReceipt(gomock.Any(), testHash).
		Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil)
	f.reader.EXPECT().TotalClicks(gomock.Any()).Return(big.NewInt(101), nil)
	f.reader.EXPECT().UserClicks(gomock.Any(), player).Return(big.NewInt(5), nil)

	ctx := context.Background()
	handle, err := f.facade.Click(ctx)
	require.NoError(t, err)
	require.NoError(t, f.facade.Confirm(ctx, handle))

	assert.Equal(t, executor.StatusConfirmed, handle.Status)
	totals := f.facade.Totals()
	assert.Equal(t, "101", totals.TotalClicks.String())
	assert.Equal(t, "5", totals.UserClicks.String())
}

func TestFacade_ClickFallsBackToDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, true, 0)
	f.connectWithSession(t)

	f.client.EXPECT().
		Call(gomock.Any(), testContract, gomock.Any(), contracts.ClickFunction).
		Return(common.Hash{}, errors.New("session signer out of gas"))
	f.direct.EXPECT().
		Call(gomock.Any(), testContract, gomock.Any(), contracts.ClickFunction).
		Return(testHash, nil)

	handle, err := f.facade.Click(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testHash, handle.Hash)

	// A failed call does not tear the session down.
	assert.Equal(t, session.StateActive, f.facade.Session().State)
}

func TestFacade_ClickWithoutSessionOrDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)

	require.NoError(t, f.facade.Connect(context.Background(), player))

	_, err := f.facade.Click(context.Background())
	assert.ErrorIs(t, err, session.ErrNoValidSession)
}

func TestFacade_ClickSessionFailureWithoutDirect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)
	f.connectWithSession(t)

	f.client.EXPECT().
		Call(gomock.Any(), testContract, gomock.Any(), contracts.ClickFunction).
		Return(common.Hash{}, errors.New("nonce too low"))

	_, err := f.facade.Click(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrExecutionFailed)
	assert.Contains(t, err.Error(), "nonce too low")
}

func TestFacade_ResetRequiresContractOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)
	f.connectWithSession(t)

	f.reader.EXPECT().Owner(gomock.Any()).Return(otherPlayer, nil)

	_, err := f.facade.Reset(context.Background())
	assert.ErrorIs(t, err, game.ErrNotContractOwner)
}

func TestFacade_ResetAsOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)
	f.connectWithSession(t)

	f.reader.EXPECT().Owner(gomock.Any()).Return(player, nil)
	f.client.EXPECT().
		Call(gomock.Any(), testContract, gomock.Any(), contracts.ResetFunction).
		Return(testHash, nil)

	handle, err := f.facade.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testHash, handle.Hash)
}

func TestFacade_AutoCreateAfterConnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 5*time.Millisecond)

	f.provider.EXPECT().RegisterSession(gomock.Any(), player, gomock.Any()).Return(nil)
	f.provider.EXPECT().SessionClient(gomock.Any(), gomock.Any()).Return(f.client, nil)

	require.NoError(t, f.facade.Connect(context.Background(), player))

	require.Eventually(t, func() bool {
		return f.facade.Session().Valid
	}, time.Second, 5*time.Millisecond)
}

func TestFacade_DisconnectCancelsAutoCreate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 50*time.Millisecond)

	require.NoError(t, f.facade.Connect(context.Background(), player))
	require.NoError(t, f.facade.Disconnect(context.Background()))

	// No provider expectations are set; an auto-create firing after
	// disconnect would fail the controller.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, session.StateDisconnected, f.facade.Session().State)
}

func TestFacade_Leaderboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)

	entries := []chain.LeaderboardEntry{
		{Address: player, Score: big.NewInt(90), Rank: 1},
		{Address: otherPlayer, Score: big.NewInt(40), Rank: 2},
	}
	f.reader.EXPECT().Leaderboard(gomock.Any(), 10).Return(entries, nil)

	got, err := f.facade.Leaderboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestFacade_RankRequiresWallet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)

	_, _, _, err := f.facade.Rank(context.Background())
	assert.ErrorIs(t, err, game.ErrNoWallet)
}

func TestFacade_Rank(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFacadeFixture(t, ctrl, false, 0)
	f.connectWithSession(t)

	f.reader.EXPECT().UserRank(gomock.Any(), player).Return(big.NewInt(3), big.NewInt(77), nil)
	f.reader.EXPECT().TotalUsers(gomock.Any()).Return(big.NewInt(12), nil)

	rank, score, total, err := f.facade.Rank(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", rank.String())
	assert.Equal(t, "77", score.String())
	assert.Equal(t, "12", total.String())
}
