// Package chain wraps read-only contract access over an RPC client.
package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Caller is the eth_call slice of an RPC client. *ethclient.Client
// satisfies it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// LeaderboardEntry is one ranked row of the on-chain leaderboard.
type LeaderboardEntry struct {
	Address common.Address `json:"address"`
	Score   *big.Int       `json:"score"`
	Rank    int            `json:"rank"`
}

// Reader exposes the Clicker contract's view functions.
type Reader struct {
	caller   Caller
	contract common.Address
	abi      abi.ABI
}

// NewReader creates a reader bound to one contract.
func NewReader(caller Caller, contract common.Address, contractABI abi.ABI) *Reader {
	return &Reader{
		caller:   caller,
		contract: contract,
		abi:      contractABI,
	}
}

func (r *Reader) call(ctx context.Context, method string, args ...any) ([]any, error) {
	data, err := r.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	out, err := r.caller.CallContract(ctx, ethereum.CallMsg{To: &r.contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	values, err := r.abi.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	return values, nil
}

// TotalClicks reads the global click counter.
func (r *Reader) TotalClicks(ctx context.Context) (*big.Int, error) {
	values, err := r.call(ctx, "totalClicks")
	if err != nil {
		return nil, err
	}
	return values[0].(*big.Int), nil
}

// UserClicks reads one user's click counter.
func (r *Reader) UserClicks(ctx context.Context, user common.Address) (*big.Int, error) {
	values, err := r.call(ctx, "userClicks", user)
	if err != nil {
		return nil, err
	}
	return values[0].(*big.Int), nil
}

// Owner reads the contract owner.
func (r *Reader) Owner(ctx context.Context) (common.Address, error) {
	values, err := r.call(ctx, "owner")
	if err != nil {
		return common.Address{}, err
	}
	return values[0].(common.Address), nil
}

// Leaderboard reads the top n users with their scores, ranked from 1.
func (r *Reader) Leaderboard(ctx context.Context, n int) ([]LeaderboardEntry, error) {
	values, err := r.call(ctx, "getLeaderboard", big.NewInt(int64(n)))
	if err != nil {
		return nil, err
	}
	users := values[0].([]common.Address)
	scores := values[1].([]*big.Int)
	if len(users) != len(scores) {
		return nil, fmt.Errorf("leaderboard shape mismatch: %d users, %d scores", len(users), len(scores))
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			Address: user,
			Score:   scores[i],
			Rank:    i + 1,
		})
	}
	return entries, nil
}

// UserRank reads one user's rank and score.
func (r *Reader) UserRank(ctx context.Context, user common.Address) (rank, score *big.Int, err error) {
	values, err := r.call(ctx, "getUserRank", user)
	if err != nil {
		return nil, nil, err
	}
	return values[0].(*big.Int), values[1].(*big.Int), nil
}

// TotalUsers reads the number of users that have clicked at least once.
func (r *Reader) TotalUsers(ctx context.Context) (*big.Int, error) {
	values, err := r.call(ctx, "getTotalUsers")
	if err != nil {
		return nil, err
	}
	return values[0].(*big.Int), nil
}
