package cryptography

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsl-labs/vsl-go/pkg/claims"
)

func testClaim(from common.Address) claims.SubmittedClaim {
	return claims.SubmittedClaim{
		Claim:     "0x64",
		ClaimType: "faucet.request",
		Proof:     "",
		Nonce:     7,
		To:        []common.Address{common.HexToAddress("0x75c51B0770646902999e55D86c5F399FaF6AbDc7")},
		Quorum:    1,
		From:      from,
		Expires:   claims.FromSeconds(2_000_000_000),
		Fee:       "0x1",
	}
}

func TestSignAndVerify(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	signed, err := Sign(testClaim(key.Address()), key)
	require.NoError(t, err)

	assert.True(t, signed.Verify())

	signer, err := signed.RecoverSigner()
	require.NoError(t, err)
	assert.Equal(t, key.Address(), signer)

	msg, ok := CheckAndStripSignature(signed)
	require.True(t, ok)
	assert.Equal(t, "0x64", msg.Claim)
}

func TestVerifyRejectsWrongSender(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	other, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	// declared sender differs from the signing key
	signed, err := Sign(testClaim(other.Address()), key)
	require.NoError(t, err)

	assert.False(t, signed.Verify())

	_, ok := CheckAndStripSignature(signed)
	assert.False(t, ok)
}

func TestVerifyRejectsMutatedSignature(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	signed, err := Sign(testClaim(key.Address()), key)
	require.NoError(t, err)

	for i := range signed.Signature {
		mutated := *signed
		mutated.Signature = append([]byte(nil), signed.Signature...)
		mutated.Signature[i] ^= 0x01

		assert.False(t, mutated.Verify(), "flipped byte %d", i)
	}
}

func TestVerifyRejectsMutatedPayload(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	signed, err := Sign(testClaim(key.Address()), key)
	require.NoError(t, err)

	signed.Message.Claim = "0x65"
	assert.False(t, signed.Verify())
}

func TestVerifyRejectsTruncatedSignature(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	signed, err := Sign(testClaim(key.Address()), key)
	require.NoError(t, err)

	signed.Signature = signed.Signature[:64]
	assert.False(t, signed.Verify())

	_, err = signed.RecoverSigner()
	assert.ErrorIs(t, err, ErrMalformedSignature)
}

func TestSenderlessPayloadNeverVerifies(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	vc := claims.VerifiedClaim{
		Claim:      "data",
		ClaimID:    common.HexToHash("0x01"),
		ClaimType:  "t",
		ClaimOwner: key.Address(),
	}

	signed, err := Sign(vc, key)
	require.NoError(t, err)

	assert.False(t, signed.Verify())
}

func TestSignedJSONRoundTrip(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	signed, err := Sign(testClaim(key.Address()), key)
	require.NoError(t, err)

	b, err := json.Marshal(signed)
	require.NoError(t, err)

	rt := &Signed[claims.SubmittedClaim]{}
	require.NoError(t, json.Unmarshal(b, rt))

	assert.True(t, rt.Verify())
	assert.Equal(t, signed.Hash, rt.Hash)
}

func TestKeyHexRoundTrip(t *testing.T) {
	key, err := NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	rt, err := PrivateKeyFromBytes(key.Bytes())
	require.NoError(t, err)
	assert.Equal(t, key.Address(), rt.Address())

	_, err = PrivateKeyFromHex("zz")
	assert.Error(t, err)
}
