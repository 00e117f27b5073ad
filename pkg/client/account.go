package client

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/vsl-labs/vsl-go/pkg/amount"
	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

// Account is a nonce-tracked signing session. It owns a private key, the
// address derived from it and the next nonce the remote service will
// accept for that address. Every mutating operation builds its payload
// with the current nonce, signs it, sends it, and advances the nonce only
// when the RPC call succeeds; a transport failure leaves the nonce
// untouched so the caller can rebuild and resend. The nonce is owned
// exclusively by the session; an Account is not safe for concurrent use.
type Account struct {
	key     *cryptography.Secp256k1PrivateKey
	address common.Address
	nonce   uint64
	client  *Client
}

// OpenAccount opens a session for key. When nonce is nil the session
// queries the service for the account's current nonce and adopts it.
func OpenAccount(ctx context.Context, c *Client, key *cryptography.Secp256k1PrivateKey, nonce *uint64) (*Account, error) {
	a := &Account{
		key:     key,
		address: key.Address(),
		client:  c,
	}

	if nonce != nil {
		a.nonce = *nonce
		return a, nil
	}

	n, err := c.GetAccountNonce(ctx, a.address)
	if err != nil {
		return nil, err
	}
	a.nonce = n

	return a, nil
}

// OpenAccountFromHexKey opens a session from a hex-encoded private key.
func OpenAccountFromHexKey(ctx context.Context, c *Client, hexKey string, nonce *uint64) (*Account, error) {
	key, err := cryptography.PrivateKeyFromHex(hexKey)
	if err != nil {
		return nil, err
	}

	return OpenAccount(ctx, c, key, nonce)
}

func (a *Account) Address() common.Address {
	return a.address
}

func (a *Account) Nonce() uint64 {
	return a.nonce
}

func (a *Account) Client() *Client {
	return a.client
}

// ClaimID computes the id a claim submitted with the session's current
// nonce would receive.
func (a *Account) ClaimID(claim string) common.Hash {
	return claims.ClaimIDHash(a.address, a.nonce, claim)
}

// submit signs msg, sends it as method, and advances the nonce only when
// the call succeeds. The response is the claim id as a hex string.
func submit[T cryptography.Signable](ctx context.Context, a *Account, method string, msg T) (common.Hash, error) {
	signed, err := cryptography.Sign(msg, a.key)
	if err != nil {
		return common.Hash{}, err
	}

	var res string
	if err := a.client.call(ctx, &res, method, signed); err != nil {
		return common.Hash{}, err
	}
	a.nonce++

	return claims.ParseHash("claim_id", res)
}

// SubmitClaim submits a request-for-verification claim and returns its
// claim id.
func (a *Account) SubmitClaim(ctx context.Context, claim, claimType, proof string, to []common.Address, quorum uint16, expires claims.Timestamp, fee amount.Amount) (common.Hash, error) {
	msg := claims.SubmittedClaim{
		Claim:     claim,
		ClaimType: claimType,
		Proof:     proof,
		Nonce:     a.nonce,
		To:        to,
		Quorum:    quorum,
		From:      a.address,
		Expires:   expires,
		Fee:       fee.Hex(),
	}

	return submit(ctx, a, "vsl_submitClaim", msg)
}

// SettleClaim requests settlement of a previously submitted claim the
// session's address is a verifier for.
func (a *Account) SettleClaim(ctx context.Context, target common.Hash) (common.Hash, error) {
	msg := claims.SettleClaimMessage{
		From:          a.address,
		Nonce:         a.nonce,
		TargetClaimID: target,
	}

	return submit(ctx, a, "vsl_settleClaim", msg)
}

// Pay transfers native tokens to another account and returns the settled
// payment claim id.
func (a *Account) Pay(ctx context.Context, to common.Address, amt amount.Amount) (common.Hash, error) {
	msg := claims.PayMessage{
		From:   a.address,
		To:     to,
		Amount: amt.Hex(),
		Nonce:  a.nonce,
	}

	return submit(ctx, a, "vsl_pay", msg)
}

// CreateAsset creates a new asset and returns its asset id together with
// the settled creation claim id.
func (a *Account) CreateAsset(ctx context.Context, tickerSymbol string, decimals uint8, totalSupply amount.Amount) (claims.AssetID, common.Hash, error) {
	msg := claims.CreateAssetMessage{
		AccountID:    a.address,
		Nonce:        a.nonce,
		TickerSymbol: tickerSymbol,
		Decimals:     decimals,
		TotalSupply:  totalSupply.Hex(),
	}

	signed, err := cryptography.Sign(msg, a.key)
	if err != nil {
		return claims.AssetID{}, common.Hash{}, err
	}

	var res claims.CreateAssetResult
	if err := a.client.call(ctx, &res, "vsl_createAsset", signed); err != nil {
		return claims.AssetID{}, common.Hash{}, err
	}
	a.nonce++

	assetID, err := claims.ParseHash("asset_id", res.AssetID)
	if err != nil {
		return claims.AssetID{}, common.Hash{}, err
	}

	claimID, err := claims.ParseHash("claim_id", res.ClaimID)
	if err != nil {
		return claims.AssetID{}, common.Hash{}, err
	}

	return assetID, claimID, nil
}

// TransferAsset transfers an asset to another account.
func (a *Account) TransferAsset(ctx context.Context, assetID claims.AssetID, to common.Address, amt amount.Amount) (common.Hash, error) {
	msg := claims.TransferAssetMessage{
		From:    a.address,
		Nonce:   a.nonce,
		AssetID: assetID,
		To:      to,
		Amount:  amt.Hex(),
	}

	return submit(ctx, a, "vsl_transferAsset", msg)
}

// SetAccountState sets the session account's state hash.
func (a *Account) SetAccountState(ctx context.Context, state common.Hash) (common.Hash, error) {
	msg := claims.SetStateMessage{
		From:  a.address,
		Nonce: a.nonce,
		State: state,
	}

	return submit(ctx, a, "vsl_setAccountState", msg)
}
