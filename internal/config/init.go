package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type fileTemplate struct {
	Verbose bool `yaml:"verbose"`
	Node    struct {
		PrivateKey string `yaml:"privateKey"`
		ServerAddr string `yaml:"serverAddr"`
	} `yaml:"node"`
	Verifier struct {
		ValidatorAddress     string `yaml:"validatorAddress"`
		MasterAccountAddress string `yaml:"masterAccountAddress"`
		MaxAmount            uint64 `yaml:"maxAmount"`
		MinWaitingTime       uint64 `yaml:"minWaitingTime"`
		DBPath               string `yaml:"dbPath"`
	} `yaml:"verifier"`
	Faucet struct {
		ValidatorAddress    string `yaml:"validatorAddress"`
		VerifierAddress     string `yaml:"verifierAddress"`
		MaxAmount           uint64 `yaml:"maxAmount"`
		PollIntervalSeconds uint64 `yaml:"pollIntervalSeconds"`
	} `yaml:"faucet"`
}

// WriteDefault writes a starter config file at path. An existing file is
// never overwritten.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("refusing to overwrite %s", path)
	}

	t := fileTemplate{}
	t.Node.ServerAddr = defaults[Cfg_node_serverAddr].(string)
	t.Verifier.MaxAmount = defaults[Cfg_verifier_maxAmount].(uint64)
	t.Verifier.MinWaitingTime = defaults[Cfg_verifier_minWait].(uint64)
	t.Verifier.DBPath = defaults[Cfg_verifier_dbPath].(string)
	t.Faucet.MaxAmount = defaults[Cfg_faucet_maxAmount].(uint64)
	t.Faucet.PollIntervalSeconds = defaults[Cfg_faucet_pollIntervalSec].(uint64)

	out, err := yaml.Marshal(&t)
	if err != nil {
		return errors.Wrap(err, "encoding default config")
	}

	if err := os.WriteFile(path, out, 0o600); err != nil {
		return errors.Wrap(err, "writing default config")
	}

	return nil
}
