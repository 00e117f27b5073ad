package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

// Node carries the settings every command needs: the signing key and the
// settlement service endpoint.
type Node struct {
	PrivateKey *cryptography.Secp256k1PrivateKey
	ServerAddr string
}

const (
	Cfg_node_privateKey = "node.privateKey"
	Cfg_node_serverAddr = "node.serverAddr"
)

func buildNodeConfig() (*Node, error) {
	n := &Node{
		ServerAddr: viper.GetString(Cfg_node_serverAddr),
	}

	if keyHex := viper.GetString(Cfg_node_privateKey); keyHex != "" {
		key, err := cryptography.PrivateKeyFromHex(keyHex)
		if err != nil {
			return nil, errors.Wrap(err, "parsing private key")
		}
		n.PrivateKey = key
	}

	return n, nil
}

// Endpoint returns the websocket URL for the configured server address.
// The single websocket connection carries both requests and
// subscriptions.
func (n *Node) Endpoint() string {
	return "ws://" + n.ServerAddr
}
