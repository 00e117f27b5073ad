package config

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vsl-labs/vsl-go/internal/utils/logging"
)

var (
	defaults = map[string]interface{}{
		"verbose":                  false,
		Cfg_node_serverAddr:        "localhost:44444",
		Cfg_verifier_maxAmount:     uint64(1),
		Cfg_verifier_minWait:       uint64(60),
		Cfg_verifier_dbPath:        "verifier.db",
		Cfg_faucet_maxAmount:       uint64(1),
		Cfg_faucet_pollIntervalSec: uint64(5),
	}
)

func init() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

func GetConfig() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("vsl")
	viper.AddConfigPath("/etc/vsl/")
	viper.AddConfigPath("$HOME/.vsl")
	viper.AddConfigPath(".")
	viper.SetEnvPrefix("VSL")
	viper.AutomaticEnv()
	err := viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error
			logrus.New().Warnf("no config found")
		} else {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	c := &Config{}

	c.node, err = buildNodeConfig()
	if err != nil {
		return nil, errors.Wrap(err, "node config")
	}

	if viper.GetBool("verbose") {
		logging.SetLevel(logrus.DebugLevel)
		logging.Entry().WithField("level", "debug").Debug("setting log level")
	}

	return c, nil
}

type Config struct {
	node *Node
}

func (c *Config) Node() *Node {
	return c.node
}

// Verifier builds the verifier section on demand; only the verifier
// daemon requires it.
func (c *Config) Verifier() (*Verifier, error) {
	return buildVerifierConfig()
}

// Faucet builds the faucet section on demand; only the faucet daemon
// requires it.
func (c *Config) Faucet() (*Faucet, error) {
	return buildFaucetConfig()
}
