package claims

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vsl-labs/vsl-go/pkg/amount"
)

// ParseAddress validates and decodes a 0x-prefixed 40-hex-digit account
// address, naming the offending field on failure.
func ParseAddress(field, s string) (common.Address, error) {
	b, err := parseHexBytes(field, s, common.AddressLength)
	if err != nil {
		return common.Address{}, err
	}
	return common.BytesToAddress(b), nil
}

// ParseHash validates and decodes a 0x-prefixed 64-hex-digit digest.
func ParseHash(field, s string) (common.Hash, error) {
	b, err := parseHexBytes(field, s, common.HashLength)
	if err != nil {
		return common.Hash{}, err
	}
	return common.BytesToHash(b), nil
}

func parseHexBytes(field, s string, want int) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") {
		return nil, NewParseError(field, errors.New("missing 0x prefix"))
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, NewParseError(field, err)
	}
	if len(b) != want {
		return nil, NewParseError(field, errors.Errorf("expected %d bytes, got %d", want, len(b)))
	}
	return b, nil
}

// AssetData is the strongly typed form of a CreateAssetMessage.
type AssetData struct {
	AccountID    common.Address
	Nonce        uint64
	TickerSymbol string
	Decimals     uint8
	TotalSupply  amount.Amount
}

func AssetDataFromMessage(m CreateAssetMessage) (AssetData, error) {
	supply, err := amount.ParseHex(m.TotalSupply)
	if err != nil {
		return AssetData{}, NewParseError("total_supply", err)
	}
	return AssetData{
		AccountID:    m.AccountID,
		Nonce:        m.Nonce,
		TickerSymbol: m.TickerSymbol,
		Decimals:     m.Decimals,
		TotalSupply:  supply,
	}, nil
}

func (d AssetData) Message() CreateAssetMessage {
	return CreateAssetMessage{
		AccountID:    d.AccountID,
		Nonce:        d.Nonce,
		TickerSymbol: d.TickerSymbol,
		Decimals:     d.Decimals,
		TotalSupply:  d.TotalSupply.Hex(),
	}
}

// AccountMetaData is the strongly typed form of AccountData. It is the
// single place account wire strings become validated domain values.
type AccountMetaData struct {
	Nonce         uint64
	Balance       amount.Amount
	AssetBalances map[AssetID]amount.Amount
	State         *common.Hash
}

func AccountMetaDataFromWire(d AccountData) (AccountMetaData, error) {
	balance, err := amount.ParseHex(d.Balance)
	if err != nil {
		return AccountMetaData{}, NewParseError("balance", err)
	}

	balances, err := AssetBalancesFromWire(d.AssetBalances)
	if err != nil {
		return AccountMetaData{}, err
	}

	meta := AccountMetaData{
		Nonce:         d.Nonce,
		Balance:       balance,
		AssetBalances: balances,
	}

	if d.State != nil {
		state, err := ParseHash("state", *d.State)
		if err != nil {
			return AccountMetaData{}, err
		}
		meta.State = &state
	}

	return meta, nil
}

func AssetBalancesFromWire(wire map[string]string) (map[AssetID]amount.Amount, error) {
	balances := make(map[AssetID]amount.Amount, len(wire))
	for id, bal := range wire {
		assetID, err := ParseHash("asset_id", id)
		if err != nil {
			return nil, err
		}
		a, err := amount.ParseHex(bal)
		if err != nil {
			return nil, NewParseError("asset_balance", err)
		}
		balances[assetID] = a
	}
	return balances, nil
}
