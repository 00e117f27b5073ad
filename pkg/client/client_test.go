package client

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsl-labs/vsl-go/pkg/amount"
	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/client/mock"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

func newTestClient(t *testing.T) (*mock.Service, *Client) {
	svc := mock.NewService()

	srv, rpcClient, err := mock.Serve(svc)
	require.NoError(t, err)

	c := NewClient(rpcClient)
	t.Cleanup(func() {
		c.Close()
		srv.Stop()
	})

	return svc, c
}

func newTestKey(t *testing.T) *cryptography.Secp256k1PrivateKey {
	key, err := cryptography.NewEcdsaSecp256k1PrivateKey()
	require.NoError(t, err)

	return key
}

func TestGetHealth(t *testing.T) {
	_, c := newTestClient(t)

	assert.NoError(t, c.GetHealth(context.Background()))
}

func TestGetBalance(t *testing.T) {
	svc, c := newTestClient(t)

	addr := common.HexToAddress("0x00112233445566778899aabbccddeeff00112233")
	svc.Balances[addr] = "0x1a"

	bal, err := c.GetBalance(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, "0x1a", bal.Hex())

	empty, err := c.GetBalance(context.Background(), common.Address{})
	require.NoError(t, err)
	assert.True(t, empty.IsZero())
}

func TestOpenAccountQueriesNonce(t *testing.T) {
	svc, c := newTestClient(t)
	key := newTestKey(t)

	svc.Nonces[key.Address()] = 7

	acc, err := OpenAccount(context.Background(), c, key, nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), acc.Nonce())
}

func TestOpenAccountExplicitNonce(t *testing.T) {
	_, c := newTestClient(t)

	nonce := uint64(42)
	acc, err := OpenAccount(context.Background(), c, newTestKey(t), &nonce)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), acc.Nonce())
}

func TestSubmitClaimAdvancesNonce(t *testing.T) {
	svc, c := newTestClient(t)
	svc.CheckNonces = true

	acc, err := OpenAccount(context.Background(), c, newTestKey(t), nil)
	require.NoError(t, err)

	wantID := acc.ClaimID("weather in Karlsruhe")

	id, err := acc.SubmitClaim(context.Background(),
		"weather in Karlsruhe", "weather", "", []common.Address{acc.Address()}, 1,
		claims.FromSeconds(uint64(time.Now().Unix())+600), amount.Zero())
	require.NoError(t, err)

	assert.Equal(t, wantID, id)
	assert.Equal(t, uint64(1), acc.Nonce())

	require.Len(t, svc.Submitted, 1)
	assert.True(t, svc.Submitted[0].Verify())
	assert.Equal(t, acc.Address(), svc.Submitted[0].Message.From)
}

func TestSubmitClaimFailureKeepsNonce(t *testing.T) {
	svc, c := newTestClient(t)
	svc.FailSubmit = errors.New("submission queue full")

	acc, err := OpenAccount(context.Background(), c, newTestKey(t), nil)
	require.NoError(t, err)

	_, err = acc.SubmitClaim(context.Background(),
		"claim", "test", "", []common.Address{acc.Address()}, 1,
		claims.FromSeconds(1), amount.Zero())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submission queue full")
	assert.Equal(t, uint64(0), acc.Nonce())

	var terr *TransportError
	assert.ErrorAs(t, err, &terr)

	svc.FailSubmit = nil

	_, err = acc.SubmitClaim(context.Background(),
		"claim", "test", "", []common.Address{acc.Address()}, 1,
		claims.FromSeconds(1), amount.Zero())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), acc.Nonce())
}

func TestStaleSessionNonceRejected(t *testing.T) {
	svc, c := newTestClient(t)
	svc.CheckNonces = true

	key := newTestKey(t)

	first, err := OpenAccount(context.Background(), c, key, nil)
	require.NoError(t, err)
	stale, err := OpenAccount(context.Background(), c, key, nil)
	require.NoError(t, err)

	_, err = first.Pay(context.Background(), common.Address{0x01}, amount.FromTokens(1))
	require.NoError(t, err)

	_, err = stale.Pay(context.Background(), common.Address{0x01}, amount.FromTokens(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonce too low")
	assert.Equal(t, uint64(0), stale.Nonce())
}

func TestPay(t *testing.T) {
	svc, c := newTestClient(t)

	acc, err := OpenAccount(context.Background(), c, newTestKey(t), nil)
	require.NoError(t, err)

	to := common.HexToAddress("0x5555555555555555555555555555555555555555")

	id, err := acc.Pay(context.Background(), to, amount.FromTokens(3))
	require.NoError(t, err)

	require.Len(t, svc.Payments, 1)
	p := svc.Payments[0].Message
	assert.Equal(t, acc.Address(), p.From)
	assert.Equal(t, to, p.To)
	assert.Equal(t, amount.FromTokens(3).Hex(), p.Amount)

	wantID, err := p.ClaimID()
	require.NoError(t, err)
	assert.Equal(t, wantID, id)
	assert.Equal(t, uint64(1), acc.Nonce())
}

func TestCreateAsset(t *testing.T) {
	_, c := newTestClient(t)

	acc, err := OpenAccount(context.Background(), c, newTestKey(t), nil)
	require.NoError(t, err)

	assetID, claimID, err := acc.CreateAsset(context.Background(), "GLD", 8, amount.FromTokens(1000))
	require.NoError(t, err)

	assert.NotEqual(t, claims.AssetID{}, assetID)
	assert.NotEqual(t, common.Hash{}, claimID)
	assert.Equal(t, uint64(1), acc.Nonce())
}

func TestSettleClaim(t *testing.T) {
	svc, c := newTestClient(t)

	acc, err := OpenAccount(context.Background(), c, newTestKey(t), nil)
	require.NoError(t, err)

	target := common.HexToHash("0xabcdef")

	id, err := acc.SettleClaim(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, target, id)

	require.Len(t, svc.Settles, 1)
	assert.Equal(t, target, svc.Settles[0].Message.TargetClaimID)
}

func TestGetSettledClaimByID(t *testing.T) {
	svc, c := newTestClient(t)
	validator := newTestKey(t)

	settled := claims.SettledVerifiedClaim{
		VerifiedClaim: claims.VerifiedClaim{
			Claim:      "payment cleared",
			ClaimID:    common.HexToHash("0x01"),
			ClaimType:  "Payment",
			ClaimOwner: validator.Address(),
		},
		Verifiers: []common.Address{validator.Address()},
	}

	signed, err := cryptography.Sign(settled, validator)
	require.NoError(t, err)

	id := common.HexToHash("0x01")
	svc.AddSettled(validator.Address(), claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]{
		ID:        id.Hex(),
		Data:      *signed,
		Timestamp: claims.FromSeconds(100),
	})

	got, err := c.GetSettledClaimByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "payment cleared", got.Data.Message.VerifiedClaim.Claim)

	_, err = c.GetSettledClaimByID(context.Background(), common.HexToHash("0x02"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListSettledClaimsForSenderSince(t *testing.T) {
	svc, c := newTestClient(t)
	validator := newTestKey(t)

	for i, sec := range []uint64{10, 20, 30} {
		settled := claims.SettledVerifiedClaim{
			VerifiedClaim: claims.VerifiedClaim{
				Claim:     "p",
				ClaimID:   common.BytesToHash([]byte{byte(i + 1)}),
				ClaimType: "Payment",
			},
			Verifiers: []common.Address{validator.Address()},
		}

		signed, err := cryptography.Sign(settled, validator)
		require.NoError(t, err)

		svc.AddSettled(validator.Address(), claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]{
			ID:        settled.VerifiedClaim.ClaimID.Hex(),
			Data:      *signed,
			Timestamp: claims.FromSeconds(sec),
		})
	}

	all, err := c.ListSettledClaimsForSender(context.Background(), validator.Address(), claims.Timestamp{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	tail, err := c.ListSettledClaimsForSender(context.Background(), validator.Address(), claims.FromSeconds(20))
	require.NoError(t, err)
	assert.Len(t, tail, 2)

	none, err := c.ListSettledClaimsForSender(context.Background(), validator.Address(), claims.FromSeconds(31))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSubscribeToSubmittedClaimsForReceiver(t *testing.T) {
	svc, c := newTestClient(t)

	verifier := common.HexToAddress("0x9999999999999999999999999999999999999999")
	submitter := newTestKey(t)

	ch := make(chan claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]], 1)
	sub, err := c.SubscribeToSubmittedClaimsForReceiver(context.Background(), verifier, ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	msg := claims.SubmittedClaim{
		Claim:     "pay the faucet user",
		ClaimType: "Payment",
		Nonce:     0,
		To:        []common.Address{verifier},
		Quorum:    1,
		From:      submitter.Address(),
		Expires:   claims.FromSeconds(uint64(time.Now().Unix()) + 60),
		Fee:       "0x0",
	}

	signed, err := cryptography.Sign(msg, submitter)
	require.NoError(t, err)

	svc.PushSubmitted(claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]{
		ID:        msg.ClaimID().Hex(),
		Data:      *signed,
		Timestamp: claims.Now(),
	})

	select {
	case got := <-ch:
		assert.Equal(t, submitter.Address(), got.Data.Message.From)
		assert.True(t, got.Data.Verify())
	case <-time.After(2 * time.Second):
		t.Fatal("no notification received")
	}

	// claims for other receivers stay out of this feed
	other := msg
	other.To = []common.Address{{0x01}}
	signedOther, err := cryptography.Sign(other, submitter)
	require.NoError(t, err)

	svc.PushSubmitted(claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]{
		ID:        other.ClaimID().Hex(),
		Data:      *signedOther,
		Timestamp: claims.Now(),
	})

	select {
	case got := <-ch:
		t.Fatalf("unexpected notification for %s", got.Data.Message.From)
	case <-time.After(200 * time.Millisecond):
	}
}
