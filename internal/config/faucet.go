package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"github.com/vsl-labs/vsl-go/pkg/amount"
	"github.com/vsl-labs/vsl-go/pkg/claims"
)

// Faucet carries the payout settings: the validator whose signature
// settles claims, the verifier whose settlements the faucet trusts, and
// the per-request payout cap.
type Faucet struct {
	ValidatorAddress common.Address
	VerifierAddress  common.Address
	MaxAmount        amount.Amount
	PollInterval     time.Duration
}

const (
	Cfg_faucet_validatorAddress = "faucet.validatorAddress"
	Cfg_faucet_verifierAddress  = "faucet.verifierAddress"
	Cfg_faucet_maxAmount        = "faucet.maxAmount"
	Cfg_faucet_pollIntervalSec  = "faucet.pollIntervalSeconds"
)

func buildFaucetConfig() (*Faucet, error) {
	f := &Faucet{
		MaxAmount:    amount.FromTokens(viper.GetUint64(Cfg_faucet_maxAmount)),
		PollInterval: time.Duration(viper.GetUint64(Cfg_faucet_pollIntervalSec)) * time.Second,
	}

	var err error

	f.ValidatorAddress, err = claims.ParseAddress("validatorAddress", viper.GetString(Cfg_faucet_validatorAddress))
	if err != nil {
		return nil, err
	}

	f.VerifierAddress, err = claims.ParseAddress("verifierAddress", viper.GetString(Cfg_faucet_verifierAddress))
	if err != nil {
		return nil, err
	}

	return f, nil
}
