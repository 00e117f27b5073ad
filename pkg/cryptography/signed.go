package cryptography

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

var (
	ErrMalformedSignature = errors.New("malformed signature")
	ErrRecoveryFailed     = errors.New("address recovery failed")
)

// Signable is the capability a payload needs to take part in the signing
// scheme: a canonical RLP encoding (via its exported fields) and a
// declared sender. Payload types without a canonical sender (for example
// a settled claim record) report ok=false and can never pass Verify.
type Signable interface {
	Sender() (common.Address, bool)
}

// MessageHash computes the digest that is signed for a payload: the
// EIP-191 prefixed Keccak-256 hash of the payload's canonical RLP
// encoding. Client and verifier must agree on this byte-for-byte.
func MessageHash(msg interface{}) (common.Hash, error) {
	enc, err := rlp.EncodeToBytes(msg)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "encoding message")
	}

	return common.BytesToHash(accounts.TextHash(enc)), nil
}

// Signed binds a payload to an ECDSA signature over its message hash.
type Signed[T Signable] struct {
	Message   T             `json:"message"`
	Signature hexutil.Bytes `json:"signature"`
	Hash      common.Hash   `json:"hash"`
}

// Sign produces a Signed envelope for msg under key. The signature is the
// 65-byte [R || S || V] form with V in {0, 1}.
func Sign[T Signable](msg T, key *Secp256k1PrivateKey) (*Signed[T], error) {
	hash, err := MessageHash(msg)
	if err != nil {
		return nil, err
	}

	sig, err := key.SignHash(hash)
	if err != nil {
		return nil, err
	}

	return &Signed[T]{Message: msg, Signature: sig, Hash: hash}, nil
}

// RecoverAddress re-encodes msg canonically, recomputes the prefixed hash
// and recovers the signer's address from sig.
func RecoverAddress[T Signable](msg T, sig []byte) (common.Address, error) {
	if len(sig) != ethCrypto.SignatureLength {
		return common.Address{}, ErrMalformedSignature
	}

	hash, err := MessageHash(msg)
	if err != nil {
		return common.Address{}, err
	}

	pub, err := ethCrypto.SigToPub(hash[:], sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrRecoveryFailed, err.Error())
	}

	return ethCrypto.PubkeyToAddress(*pub), nil
}

func (s *Signed[T]) RecoverSigner() (common.Address, error) {
	return RecoverAddress(s.Message, s.Signature)
}

// Verify reports whether the signature recovers exactly the address the
// payload declares as its sender. Payloads without a sender never verify.
func (s *Signed[T]) Verify() bool {
	signer, err := s.RecoverSigner()
	if err != nil {
		return false
	}

	sender, ok := s.Message.Sender()
	if !ok {
		return false
	}

	return signer == sender
}

// CheckAndStripSignature returns the bare payload only if Verify
// succeeds. This is the sole gate through which untrusted wire input
// becomes a trusted in-memory value.
func CheckAndStripSignature[T Signable](s *Signed[T]) (T, bool) {
	var zero T
	if s == nil || !s.Verify() {
		return zero, false
	}

	return s.Message, true
}
