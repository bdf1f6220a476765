// Package agw implements the wallet-provider boundary against an Abstract
// Global Wallet gateway: session registration and revocation go through the
// gateway's HTTP API (it holds the primary-wallet signing capability and
// drives user approval), while delegated calls are signed locally with the
// session key and submitted straight to the chain RPC.
package agw

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pawclick/clicker-api/internal/session"
	"github.com/pkg/errors"
)

// ErrorResponse is the gateway's error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GatewayClient talks to the wallet gateway's session API.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGatewayClient creates a gateway client. timeout <= 0 defaults to three
// minutes; session registration waits on user approval.
func NewGatewayClient(baseURL, apiKey string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	return &GatewayClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type sessionRequest struct {
	Account string                  `json:"account"`
	Session session.PersistedPolicy `json:"session"`
}

// CreateSession registers a session policy for the owning wallet.
func (c *GatewayClient) CreateSession(ctx context.Context, owner common.Address, policy session.PersistedPolicy) error {
	return c.doRequest(ctx, "/v1/sessions", sessionRequest{
		Account: owner.Hex(),
		Session: policy,
	})
}

// RevokeSession revokes a previously registered session policy.
func (c *GatewayClient) RevokeSession(ctx context.Context, owner common.Address, policy session.PersistedPolicy) error {
	return c.doRequest(ctx, "/v1/sessions/revoke", sessionRequest{
		Account: owner.Hex(),
		Session: policy,
	})
}

// doRequest handles the common HTTP request/response logic for gateway calls
func (c *GatewayClient) doRequest(ctx context.Context, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "marshal gateway request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewBuffer(body))
	if err != nil {
		return errors.Wrap(err, "build gateway request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "wallet gateway request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read gateway response")
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err != nil || errResp.Error == "" {
			return errors.Errorf("wallet gateway returned status %d", resp.StatusCode)
		}
		return errors.Wrap(errors.New(errResp.Error), "wallet gateway error")
	}

	return nil
}
