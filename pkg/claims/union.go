package claims

import (
	"encoding/json"

	"github.com/pkg/errors"
)

var ErrNotTagged = errors.New("expected exactly one claim variant")

// ValidatorVerifiedClaim is the closed union over the typed claim payloads
// the validator itself settles. Exactly one variant is set; its canonical
// JSON form ({"Payment": {...}} etc.) is the claim string hashed into the
// claim id for typed messages.
type ValidatorVerifiedClaim struct {
	Payment       *PayMessage           `json:"Payment,omitempty"`
	AssetCreation *CreateAssetMessage   `json:"AssetCreation,omitempty"`
	AssetTransfer *TransferAssetMessage `json:"AssetTransfer,omitempty"`
	SetState      *SetStateMessage      `json:"SetState,omitempty"`
}

func WrapPayment(m PayMessage) ValidatorVerifiedClaim {
	return ValidatorVerifiedClaim{Payment: &m}
}

func WrapAssetCreation(m CreateAssetMessage) ValidatorVerifiedClaim {
	return ValidatorVerifiedClaim{AssetCreation: &m}
}

func WrapAssetTransfer(m TransferAssetMessage) ValidatorVerifiedClaim {
	return ValidatorVerifiedClaim{AssetTransfer: &m}
}

func WrapSetState(m SetStateMessage) ValidatorVerifiedClaim {
	return ValidatorVerifiedClaim{SetState: &m}
}

// Kind names the variant carried, or "" when the union is malformed.
func (v *ValidatorVerifiedClaim) Kind() string {
	switch {
	case v.Payment != nil:
		return "Payment"
	case v.AssetCreation != nil:
		return "AssetCreation"
	case v.AssetTransfer != nil:
		return "AssetTransfer"
	case v.SetState != nil:
		return "SetState"
	}
	return ""
}

func (v *ValidatorVerifiedClaim) validate() error {
	var set int
	for _, p := range []bool{
		v.Payment != nil,
		v.AssetCreation != nil,
		v.AssetTransfer != nil,
		v.SetState != nil,
	} {
		if p {
			set++
		}
	}
	if set != 1 {
		return ErrNotTagged
	}
	return nil
}

// Canonical returns the canonical JSON serialization used for claim-id
// hashing. Identical variants always serialize identically.
func (v *ValidatorVerifiedClaim) Canonical() (string, error) {
	if err := v.validate(); err != nil {
		return "", err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, "encoding claim variant")
	}
	return string(b), nil
}

// ParseValidatorVerifiedClaim decodes a claim string into the tagged
// union, rejecting blobs that do not carry exactly one variant.
func ParseValidatorVerifiedClaim(claim string) (*ValidatorVerifiedClaim, error) {
	v := &ValidatorVerifiedClaim{}
	if err := json.Unmarshal([]byte(claim), v); err != nil {
		return nil, errors.Wrap(err, "decoding claim variant")
	}
	if err := v.validate(); err != nil {
		return nil, err
	}
	return v, nil
}
