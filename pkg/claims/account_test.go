package claims

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsl-labs/vsl-go/pkg/amount"
)

func TestParseAddress(t *testing.T) {
	addr, err := ParseAddress("from", "0x75c51b0770646902999e55d86c5f399faf6abdc7")
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x75c51B0770646902999e55D86c5F399FaF6AbDc7"), addr)

	for _, bad := range []string{"75c51b0770646902999e55d86c5f399faf6abdc7", "0x75c5", "0xzz"} {
		_, err := ParseAddress("from", bad)
		var perr *ParseError
		require.ErrorAs(t, err, &perr, bad)
		assert.Equal(t, "from", perr.Field)
	}
}

func TestParseHash(t *testing.T) {
	_, err := ParseHash("claim_id", "0x"+"ab"[:2])
	assert.Error(t, err)

	h, err := ParseHash("claim_id", "0x"+"00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff")
	require.NoError(t, err)
	assert.Equal(t, byte(0x00), h[0])
	assert.Equal(t, byte(0xff), h[31])
}

func TestAssetDataRoundTrip(t *testing.T) {
	d := AssetData{
		AccountID:    common.HexToAddress("0x1"),
		Nonce:        4,
		TickerSymbol: "VSL",
		Decimals:     18,
		TotalSupply:  amount.FromTokens(1000),
	}

	rt, err := AssetDataFromMessage(d.Message())
	require.NoError(t, err)
	assert.Equal(t, d.AccountID, rt.AccountID)
	assert.Equal(t, 0, d.TotalSupply.Cmp(rt.TotalSupply))
}

func TestAssetDataRejectsBadSupply(t *testing.T) {
	_, err := AssetDataFromMessage(CreateAssetMessage{TotalSupply: "0x01"})

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "total_supply", perr.Field)
}

func TestAccountMetaDataFromWire(t *testing.T) {
	state := "0x00112233445566778899aabbccddeeff00112233445566778899aabbccddeeff"
	wire := AccountData{
		Nonce:   9,
		Balance: "0x3e8",
		AssetBalances: map[string]string{
			state: "0x1",
		},
		State: &state,
	}

	meta, err := AccountMetaDataFromWire(wire)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), meta.Nonce)
	assert.Equal(t, "0x3e8", meta.Balance.Hex())
	require.NotNil(t, meta.State)
	assert.Len(t, meta.AssetBalances, 1)

	wire.Balance = "1000"
	_, err = AccountMetaDataFromWire(wire)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "balance", perr.Field)
}
