package agw

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/logger"
	"github.com/pawclick/clicker-api/internal/session"
	"go.uber.org/zap"
)

// Provider implements session.WalletProvider against the AGW gateway and a
// chain RPC endpoint.
type Provider struct {
	gateway *GatewayClient
	sender  TxSender
	chainID *big.Int
	log     *zap.Logger
}

// NewProvider wires a gateway client and a transaction sender.
func NewProvider(gateway *GatewayClient, sender TxSender, chainID *big.Int) *Provider {
	return &Provider{
		gateway: gateway,
		sender:  sender,
		chainID: chainID,
		log:     logger.Log,
	}
}

// RegisterSession registers the policy with the owning wallet via the
// gateway. This is the step that may require user approval and can be
// rejected.
func (p *Provider) RegisterSession(ctx context.Context, owner common.Address, policy session.Policy) error {
	err := p.gateway.CreateSession(ctx, owner, session.EncodePolicy(policy))
	if err != nil {
		p.log.Error("Session registration rejected",
			zap.String("owner", owner.Hex()),
			zap.String("signer", policy.Signer.Hex()),
			zap.Error(err))
		return err
	}
	p.log.Info("Session registered with wallet provider",
		zap.String("owner", owner.Hex()),
		zap.String("signer", policy.Signer.Hex()))
	return nil
}

// RevokeSession revokes the policy via the gateway.
func (p *Provider) RevokeSession(ctx context.Context, owner common.Address, policy session.Policy) error {
	return p.gateway.RevokeSession(ctx, owner, session.EncodePolicy(policy))
}

// SessionClient binds a signer/policy pair into a delegated client that
// signs with the session key and submits through the chain RPC.
func (p *Provider) SessionClient(signer *session.Signer, policy session.Policy) (session.DelegatedClient, error) {
	return newSessionClient(p.sender, signer, policy, p.chainID), nil
}
