package claims

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethCrypto "github.com/ethereum/go-ethereum/crypto"
)

// ClaimIDHash derives the globally addressable identifier of a claim:
// Keccak-256 over the lowercase hex owner address, the decimal nonce and
// the claim payload, concatenated in that order. The function is pure;
// identical inputs collide deliberately, which is what makes the id an
// idempotency key.
func ClaimIDHash(owner common.Address, nonce uint64, claim string) common.Hash {
	h := ethCrypto.Keccak256(
		[]byte(strings.ToLower(owner.Hex())),
		[]byte(strconv.FormatUint(nonce, 10)),
		[]byte(claim),
	)
	return common.BytesToHash(h)
}

func (c SubmittedClaim) ClaimID() common.Hash {
	return ClaimIDHash(c.From, c.Nonce, c.Claim)
}

func typedClaimID(owner common.Address, nonce uint64, v ValidatorVerifiedClaim) (common.Hash, error) {
	claim, err := v.Canonical()
	if err != nil {
		return common.Hash{}, err
	}
	return ClaimIDHash(owner, nonce, claim), nil
}

func (m PayMessage) ClaimID() (common.Hash, error) {
	return typedClaimID(m.From, m.Nonce, WrapPayment(m))
}

func (m CreateAssetMessage) ClaimID() (common.Hash, error) {
	return typedClaimID(m.AccountID, m.Nonce, WrapAssetCreation(m))
}

func (m TransferAssetMessage) ClaimID() (common.Hash, error) {
	return typedClaimID(m.From, m.Nonce, WrapAssetTransfer(m))
}

func (m SetStateMessage) ClaimID() (common.Hash, error) {
	return typedClaimID(m.From, m.Nonce, WrapSetState(m))
}
