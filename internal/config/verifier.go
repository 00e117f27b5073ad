package config

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/vsl-labs/vsl-go/pkg/amount"
	"github.com/vsl-labs/vsl-go/pkg/claims"
)

// Verifier carries the funding-request policy: the validator whose
// signature settles claims, the master account whose payments whitelist
// first-time submitters, and the per-request limits.
type Verifier struct {
	ValidatorAddress     common.Address
	MasterAccountAddress common.Address
	MaxAmount            amount.Amount
	MinWaitingTime       uint64
	DBPath               string
}

const (
	Cfg_verifier_validatorAddress = "verifier.validatorAddress"
	Cfg_verifier_masterAddress    = "verifier.masterAccountAddress"
	Cfg_verifier_maxAmount        = "verifier.maxAmount"
	Cfg_verifier_minWait          = "verifier.minWaitingTime"
	Cfg_verifier_dbPath           = "verifier.dbPath"
)

func buildVerifierConfig() (*Verifier, error) {
	v := &Verifier{
		MaxAmount:      amount.FromTokens(viper.GetUint64(Cfg_verifier_maxAmount)),
		MinWaitingTime: viper.GetUint64(Cfg_verifier_minWait),
		DBPath:         viper.GetString(Cfg_verifier_dbPath),
	}

	var err error

	v.ValidatorAddress, err = claims.ParseAddress("validatorAddress", viper.GetString(Cfg_verifier_validatorAddress))
	if err != nil {
		return nil, err
	}

	v.MasterAccountAddress, err = claims.ParseAddress("masterAccountAddress", viper.GetString(Cfg_verifier_masterAddress))
	if err != nil {
		return nil, err
	}

	if v.DBPath == "" {
		return nil, errors.New("verifier dbPath must be set")
	}

	return v, nil
}
