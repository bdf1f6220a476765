package agw

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pawclick/clicker-api/internal/session"
)

// TxSender is the transaction-submission slice of an RPC client.
// *ethclient.Client satisfies it.
type TxSender interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// sessionClient is a delegated client bound to one signer/policy pair. It
// enforces the policy's allow-list locally before submission, the same
// check the wallet's validator applies on-chain.
type sessionClient struct {
	sender  TxSender
	signer  *session.Signer
	policy  session.Policy
	chainID *big.Int
}

func newSessionClient(sender TxSender, signer *session.Signer, policy session.Policy, chainID *big.Int) *sessionClient {
	return &sessionClient{
		sender:  sender,
		signer:  signer,
		policy:  policy,
		chainID: chainID,
	}
}

// Call packs, signs with the session key and submits a contract call
// allowed by the session policy.
func (c *sessionClient) Call(ctx context.Context, target common.Address, contractABI abi.ABI, method string, args ...any) (common.Hash, error) {
	m, ok := contractABI.Methods[method]
	if !ok {
		return common.Hash{}, fmt.Errorf("unknown contract method %q", method)
	}
	var selector [4]byte
	copy(selector[:], m.ID)
	if !c.policy.Allows(target, selector) {
		return common.Hash{}, fmt.Errorf("entry point %s not permitted by session policy", m.Sig)
	}

	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pack %s: %w", method, err)
	}

	from := c.signer.Address()
	nonce, err := c.sender.PendingNonceAt(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("pending nonce: %w", err)
	}
	tip, err := c.sender.SuggestGasTipCap(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("suggest gas tip: %w", err)
	}
	head, err := c.sender.HeaderByNumber(ctx, nil)
	if err != nil {
		return common.Hash{}, fmt.Errorf("latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}
	gas, err := c.sender.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &target, Data: data})
	if err != nil {
		return common.Hash{}, fmt.Errorf("estimate gas: %w", err)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   c.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gas,
		To:        &target,
		Value:     big.NewInt(0),
		Data:      data,
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.signer.PrivateKey())
	if err != nil {
		return common.Hash{}, fmt.Errorf("sign transaction: %w", err)
	}
	if err := c.sender.SendTransaction(ctx, signed); err != nil {
		return common.Hash{}, fmt.Errorf("send transaction: %w", err)
	}
	return signed.Hash(), nil
}
