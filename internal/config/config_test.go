package config

import (
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validatorHex = "0x1111111111111111111111111111111111111111"
	masterHex    = "0x2222222222222222222222222222222222222222"
	verifierHex  = "0x3333333333333333333333333333333333333333"
)

func TestBuildVerifierConfig(t *testing.T) {
	viper.Set(Cfg_verifier_validatorAddress, validatorHex)
	viper.Set(Cfg_verifier_masterAddress, masterHex)
	viper.Set(Cfg_verifier_maxAmount, uint64(5))
	viper.Set(Cfg_verifier_minWait, uint64(120))
	viper.Set(Cfg_verifier_dbPath, "test.db")
	t.Cleanup(clearVerifierKeys)

	v, err := buildVerifierConfig()
	require.NoError(t, err)

	assert.Equal(t, common.HexToAddress(validatorHex), v.ValidatorAddress)
	assert.Equal(t, common.HexToAddress(masterHex), v.MasterAccountAddress)
	assert.Equal(t, uint64(120), v.MinWaitingTime)
	assert.Equal(t, "test.db", v.DBPath)
	assert.Equal(t, "5", v.MaxAmount.String())
}

func TestBuildVerifierConfigRejectsBadAddress(t *testing.T) {
	viper.Set(Cfg_verifier_validatorAddress, "not-an-address")
	viper.Set(Cfg_verifier_masterAddress, masterHex)
	t.Cleanup(clearVerifierKeys)

	_, err := buildVerifierConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validatorAddress")
}

func TestBuildFaucetConfigRejectsBadAddress(t *testing.T) {
	viper.Set(Cfg_faucet_validatorAddress, validatorHex)
	viper.Set(Cfg_faucet_verifierAddress, "0xshort")
	t.Cleanup(func() {
		viper.Set(Cfg_faucet_validatorAddress, "")
		viper.Set(Cfg_faucet_verifierAddress, "")
	})

	_, err := buildFaucetConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verifierAddress")
}

func TestBuildNodeConfigRejectsBadKey(t *testing.T) {
	viper.Set(Cfg_node_privateKey, "zzzz")
	t.Cleanup(func() { viper.Set(Cfg_node_privateKey, "") })

	_, err := buildNodeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "private key")
}

func TestNodeEndpoint(t *testing.T) {
	n := &Node{ServerAddr: "127.0.0.1:44444"}
	assert.Equal(t, "ws://127.0.0.1:44444", n.Endpoint())
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vsl.yaml")

	require.NoError(t, WriteDefault(path))

	// an existing file is never clobbered
	require.Error(t, WriteDefault(path))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	assert.Equal(t, defaults[Cfg_node_serverAddr], v.GetString(Cfg_node_serverAddr))
	assert.Equal(t, defaults[Cfg_verifier_minWait], v.GetUint64(Cfg_verifier_minWait))
	assert.Equal(t, defaults[Cfg_faucet_pollIntervalSec], v.GetUint64(Cfg_faucet_pollIntervalSec))
	assert.False(t, v.GetBool("verbose"))
}

func clearVerifierKeys() {
	viper.Set(Cfg_verifier_validatorAddress, "")
	viper.Set(Cfg_verifier_masterAddress, "")
	viper.Set(Cfg_verifier_dbPath, "")
}
