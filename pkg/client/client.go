package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/vsl-labs/vsl-go/pkg/amount"
	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

// Namespace is the JSON-RPC method namespace of the settlement service.
const Namespace = "vsl"

// TransportError wraps any RPC-level failure: connection problems,
// timeouts and remote error responses. Operations that fail this way were
// not necessarily executed remotely; callers decide whether to rebuild
// and resend. Nothing is retried internally.
type TransportError struct {
	Method string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("rpc %s: %v", e.Method, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client is the read-only surface of the settlement service plus its
// subscription streams. It performs no local mutation; responses pass
// through domain-value parsing before being returned.
type Client struct {
	rpc *gethrpc.Client
}

// Dial connects to the service endpoint. Use an http(s):// URL for
// request/response traffic and a ws(s):// URL when subscriptions are
// needed.
func Dial(ctx context.Context, url string) (*Client, error) {
	c, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "dialing service")
	}

	return &Client{rpc: c}, nil
}

// NewClient wraps an existing RPC connection.
func NewClient(rpc *gethrpc.Client) *Client {
	return &Client{rpc: rpc}
}

func (c *Client) Close() {
	c.rpc.Close()
}

func (c *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if err := c.rpc.CallContext(ctx, result, method, args...); err != nil {
		return &TransportError{Method: method, Err: err}
	}

	return nil
}

// GetHealth checks that the service is up and ready.
func (c *Client) GetHealth(ctx context.Context) error {
	var status string
	if err := c.call(ctx, &status, "vsl_getHealth"); err != nil {
		return err
	}

	if !strings.EqualFold(status, "ok") {
		return errors.Errorf("service unhealthy: %q", status)
	}

	return nil
}

// GetBalance retrieves the native token balance of an account.
func (c *Client) GetBalance(ctx context.Context, addr common.Address) (amount.Amount, error) {
	var res string
	if err := c.call(ctx, &res, "vsl_getBalance", addr); err != nil {
		return amount.Zero(), err
	}

	a, err := amount.ParseHex(res)
	if err != nil {
		return amount.Zero(), claims.NewParseError("balance", err)
	}

	return a, nil
}

// GetAccountNonce returns the account's current nonce.
func (c *Client) GetAccountNonce(ctx context.Context, addr common.Address) (uint64, error) {
	var nonce uint64
	if err := c.call(ctx, &nonce, "vsl_getAccountNonce", addr); err != nil {
		return 0, err
	}

	return nonce, nil
}

// GetAccountState returns the account's current state hash, or nil if
// unset.
func (c *Client) GetAccountState(ctx context.Context, addr common.Address) (*common.Hash, error) {
	var res *string
	if err := c.call(ctx, &res, "vsl_getAccountState", addr); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	state, err := claims.ParseHash("state", *res)
	if err != nil {
		return nil, err
	}

	return &state, nil
}

// GetAccount retrieves the collected public data of an account.
func (c *Client) GetAccount(ctx context.Context, addr common.Address) (claims.AccountMetaData, error) {
	var res claims.AccountData
	if err := c.call(ctx, &res, "vsl_getAccount", addr); err != nil {
		return claims.AccountMetaData{}, err
	}

	return claims.AccountMetaDataFromWire(res)
}

// GetAssetBalance retrieves the balance of one asset held by an account.
func (c *Client) GetAssetBalance(ctx context.Context, addr common.Address, assetID claims.AssetID) (amount.Amount, error) {
	var res string
	if err := c.call(ctx, &res, "vsl_getAssetBalance", addr, assetID); err != nil {
		return amount.Zero(), err
	}

	a, err := amount.ParseHex(res)
	if err != nil {
		return amount.Zero(), claims.NewParseError("asset_balance", err)
	}

	return a, nil
}

// GetAssetBalances retrieves the balances of all assets held by an
// account.
func (c *Client) GetAssetBalances(ctx context.Context, addr common.Address) (map[claims.AssetID]amount.Amount, error) {
	var res map[string]string
	if err := c.call(ctx, &res, "vsl_getAssetBalances", addr); err != nil {
		return nil, err
	}

	return claims.AssetBalancesFromWire(res)
}

// GetAssetByID retrieves creation metadata for an asset, or nil when no
// asset with that id exists.
func (c *Client) GetAssetByID(ctx context.Context, assetID claims.AssetID) (*claims.AssetData, error) {
	var res *claims.CreateAssetMessage
	if err := c.call(ctx, &res, "vsl_getAssetById", assetID); err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	data, err := claims.AssetDataFromMessage(*res)
	if err != nil {
		return nil, err
	}

	return &data, nil
}

// GetSettledClaimByID retrieves a settled claim by its claim id.
func (c *Client) GetSettledClaimByID(ctx context.Context, id common.Hash) (*claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]], error) {
	res := &claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]{}
	if err := c.call(ctx, res, "vsl_getSettledClaimById", id); err != nil {
		return nil, err
	}

	return res, nil
}

// GetSubmittedClaimByID retrieves a submitted claim by its claim id.
func (c *Client) GetSubmittedClaimByID(ctx context.Context, id common.Hash) (*claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]], error) {
	res := &claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]{}
	if err := c.call(ctx, res, "vsl_getSubmittedClaimById", id); err != nil {
		return nil, err
	}

	return res, nil
}

// GetClaimDataByID retrieves the claim field of the submitted claim with
// the given id.
func (c *Client) GetClaimDataByID(ctx context.Context, id common.Hash) (string, error) {
	var res string
	if err := c.call(ctx, &res, "vsl_getClaimDataById", id); err != nil {
		return "", err
	}

	return res, nil
}

// GetProofByID retrieves the proof field of the submitted claim with the
// given id.
func (c *Client) GetProofByID(ctx context.Context, id common.Hash) (string, error) {
	var res string
	if err := c.call(ctx, &res, "vsl_getProofById", id); err != nil {
		return "", err
	}

	return res, nil
}

// ListSettledClaimsMetadata lists metadata for settled claims recorded
// since the given position (at most 64 entries).
func (c *Client) ListSettledClaimsMetadata(ctx context.Context, since claims.Timestamp) ([]claims.Timestamped[claims.SettledClaimData], error) {
	var res []claims.Timestamped[claims.SettledClaimData]
	if err := c.call(ctx, &res, "vsl_listSettledClaimsMetadata", since); err != nil {
		return nil, err
	}

	return res, nil
}

// ListSubmittedClaimsMetadata lists metadata for submitted claims
// recorded since the given position (at most 64 entries).
func (c *Client) ListSubmittedClaimsMetadata(ctx context.Context, since claims.Timestamp) ([]claims.Timestamped[claims.SubmittedClaimData], error) {
	var res []claims.Timestamped[claims.SubmittedClaimData]
	if err := c.call(ctx, &res, "vsl_listSubmittedClaimsMetadata", since); err != nil {
		return nil, err
	}

	return res, nil
}

// ListSettledClaimsForReceiver lists settled claims for a receiver (nil
// address for all claims), since the given position.
func (c *Client) ListSettledClaimsForReceiver(ctx context.Context, addr *common.Address, since claims.Timestamp) ([]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]], error) {
	var res []claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]
	if err := c.call(ctx, &res, "vsl_listSettledClaimsForReceiver", addr, since); err != nil {
		return nil, err
	}

	return res, nil
}

// ListSubmittedClaimsForReceiver lists claim verification requests
// addressed to a verifier, since the given position.
func (c *Client) ListSubmittedClaimsForReceiver(ctx context.Context, addr common.Address, since claims.Timestamp) ([]claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]], error) {
	var res []claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]
	if err := c.call(ctx, &res, "vsl_listSubmittedClaimsForReceiver", addr, since); err != nil {
		return nil, err
	}

	return res, nil
}

// ListSettledClaimsForSender lists claims settled by a verifier, since
// the given position.
func (c *Client) ListSettledClaimsForSender(ctx context.Context, addr common.Address, since claims.Timestamp) ([]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]], error) {
	var res []claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]
	if err := c.call(ctx, &res, "vsl_listSettledClaimsForSender", addr, since); err != nil {
		return nil, err
	}

	return res, nil
}

// ListSubmittedClaimsForSender lists claim verification requests made by
// an account (nil address for all), since the given position.
func (c *Client) ListSubmittedClaimsForSender(ctx context.Context, addr *common.Address, since claims.Timestamp) ([]claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]], error) {
	var res []claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]
	if err := c.call(ctx, &res, "vsl_listSubmittedClaimsForSender", addr, since); err != nil {
		return nil, err
	}

	return res, nil
}
