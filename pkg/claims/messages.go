package claims

import (
	"github.com/ethereum/go-ethereum/common"
)

// AssetID identifies an asset created on the ledger (a 256-bit hash
// assigned by the validator at creation time).
type AssetID = common.Hash

// SubmittedClaim is an (unsigned) submitClaim request for
// claim-verification. The service does not interpret the claim or proof
// encodings.
type SubmittedClaim struct {
	// the claim to be verified
	Claim string `json:"claim"`
	// the claim type (any string)
	ClaimType string `json:"claim_type"`
	// the proof of the claim
	Proof string `json:"proof"`
	// the client nonce
	Nonce uint64 `json:"nonce,string"`
	// the addresses of accounts which can verify this claim
	To []common.Address `json:"to"`
	// the minimum quorum of attestations; must not exceed len(To)
	Quorum uint16 `json:"quorum"`
	// the address of the client account requesting verification
	From common.Address `json:"from"`
	// the time after which the claim is dropped if quorum is not reached
	Expires Timestamp `json:"expires"`
	// the verification fee (u128 hex string)
	Fee string `json:"fee"`
}

func (c SubmittedClaim) Sender() (common.Address, bool) {
	return c.From, true
}

// SettleClaimMessage is an (unsigned) settleClaim request made by a
// verifier attesting that a submitted claim is satisfied.
type SettleClaimMessage struct {
	From          common.Address `json:"from"`
	Nonce         uint64         `json:"nonce,string"`
	TargetClaimID common.Hash    `json:"target_claim_id"`
}

func (m SettleClaimMessage) Sender() (common.Address, bool) {
	return m.From, true
}

// VerifiedClaim is the payload-of-record once at least one verifier has
// attested. It carries no sender of its own and is therefore never
// directly signable as a top-level request.
type VerifiedClaim struct {
	Claim      string         `json:"claim"`
	ClaimID    common.Hash    `json:"claim_id"`
	ClaimType  string         `json:"claim_type"`
	ClaimOwner common.Address `json:"claim_owner"`
}

func (c VerifiedClaim) Sender() (common.Address, bool) {
	return common.Address{}, false
}

// SettledVerifiedClaim is recorded once quorum is reached. Verifiers is
// the accumulated set of attesting addresses; a given verifier appears at
// most once.
type SettledVerifiedClaim struct {
	VerifiedClaim VerifiedClaim    `json:"verified_claim"`
	Verifiers     []common.Address `json:"verifiers"`
}

func (c SettledVerifiedClaim) Sender() (common.Address, bool) {
	return c.VerifiedClaim.Sender()
}

// SettledClaimData is the metadata-only projection of a settled claim.
type SettledClaimData struct {
	ClaimType  string           `json:"claim_type"`
	ClaimOwner common.Address   `json:"claim_owner"`
	Verifiers  []common.Address `json:"verifiers"`
}

func NewSettledClaimData(c *SettledVerifiedClaim) SettledClaimData {
	return SettledClaimData{
		ClaimType:  c.VerifiedClaim.ClaimType,
		ClaimOwner: c.VerifiedClaim.ClaimOwner,
		Verifiers:  c.Verifiers,
	}
}

// SubmittedClaimData is the metadata-only projection of a submitted claim.
type SubmittedClaimData struct {
	ClaimType string           `json:"claim_type"`
	Nonce     uint64           `json:"nonce,string"`
	To        []common.Address `json:"to"`
	Quorum    uint16           `json:"quorum"`
	From      common.Address   `json:"from"`
	Expires   Timestamp        `json:"expires"`
	Fee       string           `json:"fee"`
}

func NewSubmittedClaimData(c *SubmittedClaim) SubmittedClaimData {
	return SubmittedClaimData{
		ClaimType: c.ClaimType,
		Nonce:     c.Nonce,
		To:        c.To,
		Quorum:    c.Quorum,
		From:      c.From,
		Expires:   c.Expires,
		Fee:       c.Fee,
	}
}

// PayMessage is an (unsigned) pay request in native tokens.
type PayMessage struct {
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount string         `json:"amount"`
	Nonce  uint64         `json:"nonce,string"`
}

func (m PayMessage) Sender() (common.Address, bool) {
	return m.From, true
}

// CreateAssetMessage is an (unsigned) createAsset request.
type CreateAssetMessage struct {
	AccountID    common.Address `json:"account_id"`
	Nonce        uint64         `json:"nonce,string"`
	TickerSymbol string         `json:"ticker_symbol"`
	Decimals     uint8          `json:"decimals"`
	TotalSupply  string         `json:"total_supply"`
}

func (m CreateAssetMessage) Sender() (common.Address, bool) {
	return m.AccountID, true
}

// CreateAssetResult is the wire return of a createAsset request.
type CreateAssetResult struct {
	AssetID string `json:"asset_id"`
	ClaimID string `json:"claim_id"`
}

// TransferAssetMessage is an (unsigned) transferAsset request.
type TransferAssetMessage struct {
	From    common.Address `json:"from"`
	Nonce   uint64         `json:"nonce,string"`
	AssetID AssetID        `json:"asset_id"`
	To      common.Address `json:"to"`
	Amount  string         `json:"amount"`
}

func (m TransferAssetMessage) Sender() (common.Address, bool) {
	return m.From, true
}

// SetStateMessage is an (unsigned) setAccountState request.
type SetStateMessage struct {
	From  common.Address `json:"from"`
	Nonce uint64         `json:"nonce,string"`
	State common.Hash    `json:"state"`
}

func (m SetStateMessage) Sender() (common.Address, bool) {
	return m.From, true
}

// AccountData is the wire form of collected public account data.
type AccountData struct {
	Nonce         uint64            `json:"nonce"`
	Balance       string            `json:"balance"`
	AssetBalances map[string]string `json:"asset_balances"`
	State         *string           `json:"state"`
}

// Timestamped wraps data with the opaque server-assigned stream position
// used for cursoring (`since`) over claim streams.
type Timestamped[T any] struct {
	ID        string    `json:"id"`
	Data      T         `json:"data"`
	Timestamp Timestamp `json:"timestamp"`
}
