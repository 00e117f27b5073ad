package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	a, err := ParseHex("0x0")
	require.NoError(t, err)
	assert.True(t, a.IsZero())

	a, err = ParseHex("0x1a")
	require.NoError(t, err)
	assert.Equal(t, int64(26), a.Subunits().Int64())

	_, err = ParseHex("0x01")
	assert.ErrorIs(t, err, ErrLeadingZero)

	_, err = ParseHex("1")
	assert.ErrorIs(t, err, ErrMissingPrefix)

	_, err = ParseHex("0x")
	assert.ErrorIs(t, err, ErrNotHex)

	_, err = ParseHex("0xzz")
	assert.ErrorIs(t, err, ErrNotHex)
}

func TestParseHexRejectsSigns(t *testing.T) {
	for _, s := range []string{"0x-1", "0x+1", "0x-5", "0x1-1"} {
		_, err := ParseHex(s)
		assert.ErrorIs(t, err, ErrNotHex, "input %q", s)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, s := range []string{"0x0", "0x1", "0x1a", "0xde0b6b3a7640000", "0xffffffffffffffffffffffffffffffff"} {
		a, err := ParseHex(s)
		require.NoError(t, err)
		assert.Equal(t, s, a.Hex())
	}
}

func TestParseDecimal(t *testing.T) {
	a, err := ParseDecimal("1")
	require.NoError(t, err)
	assert.Equal(t, FromTokens(1), a)

	a, err = ParseDecimal("1.5")
	require.NoError(t, err)
	assert.Equal(t, "1.5", a.String())

	a, err = ParseDecimal("0.000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.Subunits().Int64())

	_, err = ParseDecimal("0.0000000000000000001")
	assert.ErrorIs(t, err, ErrTooManyDecimals)

	_, err = ParseDecimal("1.")
	assert.ErrorIs(t, err, ErrNotDecimal)

	_, err = ParseDecimal(".5")
	assert.ErrorIs(t, err, ErrNotDecimal)

	_, err = ParseDecimal("abc")
	assert.ErrorIs(t, err, ErrNotDecimal)
}

func TestParseDecimalRejectsSigns(t *testing.T) {
	for _, s := range []string{"-1", "+1", "1.-5", "1.+5", "-1.5", "1.5e2"} {
		_, err := ParseDecimal(s)
		assert.ErrorIs(t, err, ErrNotDecimal, "input %q", s)
	}
}

func TestDecimalRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "12.34", "0.000000000000000001", "18446744073709551615"} {
		a, err := ParseDecimal(s)
		require.NoError(t, err)

		rt, err := ParseDecimal(a.String())
		require.NoError(t, err)
		assert.Equal(t, 0, a.Cmp(rt), "round trip of %q", s)
	}
}

func TestBounds(t *testing.T) {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

	a, err := FromSubunits(max)
	require.NoError(t, err)

	_, err = a.Add(FromTokens(0))
	assert.NoError(t, err)

	one, err := FromSubunits(big.NewInt(1))
	require.NoError(t, err)

	_, err = a.Add(one)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = FromSubunits(new(big.Int).Add(max, big.NewInt(1)))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = FromSubunits(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Zero().Sub(one)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestCmp(t *testing.T) {
	assert.Equal(t, -1, FromTokens(1).Cmp(FromTokens(2)))
	assert.Equal(t, 1, FromTokens(3).Cmp(FromTokens(2)))
	assert.Equal(t, 0, FromTokens(2).Cmp(FromTokens(2)))
}
