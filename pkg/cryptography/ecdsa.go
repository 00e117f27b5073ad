package cryptography

import (
	"crypto/ecdsa"
	"crypto/rand"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

type Secp256k1PrivateKey struct {
	*ecdsa.PrivateKey
}

func NewEcdsaSecp256k1PrivateKey() (*Secp256k1PrivateKey, error) {
	pk, err := ecdsa.GenerateKey(ethCrypto.S256(), rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generating ecdsa key")
	}

	return &Secp256k1PrivateKey{pk}, nil
}

func PrivateKeyFromHex(s string) (*Secp256k1PrivateKey, error) {
	pk, err := ethCrypto.HexToECDSA(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return &Secp256k1PrivateKey{pk}, nil
}

func PrivateKeyFromBytes(b []byte) (*Secp256k1PrivateKey, error) {
	pk, err := ethCrypto.ToECDSA(b)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshalling private key")
	}

	return &Secp256k1PrivateKey{pk}, nil
}

func (p *Secp256k1PrivateKey) Bytes() []byte {
	return ethCrypto.FromECDSA(p.PrivateKey)
}

// Address derives the 20-byte account address bound to this key.
func (p *Secp256k1PrivateKey) Address() common.Address {
	return ethCrypto.PubkeyToAddress(p.PublicKey)
}

func (p *Secp256k1PrivateKey) SignHash(digest common.Hash) ([]byte, error) {
	sig, err := ethCrypto.Sign(digest[:], p.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "signing digest")
	}

	return sig, nil
}
