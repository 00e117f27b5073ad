package amount

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Decimals is the fixed number of fractional digits carried by every
// native-token and asset amount.
const Decimals = 18

var (
	ErrMissingPrefix   = errors.New("amount missing 0x prefix")
	ErrLeadingZero     = errors.New("amount hex has leading zero")
	ErrNotHex          = errors.New("amount is not valid hex")
	ErrTooManyDecimals = errors.New("amount has too many decimal digits")
	ErrNotDecimal      = errors.New("amount is not a valid decimal")
	ErrOverflow        = errors.New("amount exceeds 128 bits")
)

var (
	subunitsPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil)
	maxSubunits      = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Amount is an unsigned 128-bit quantity of sub-units (10^-18 of a token).
// The zero value is the amount zero. Amounts are immutable; arithmetic
// returns new values and fails hard on overflow instead of wrapping.
type Amount struct {
	v *big.Int
}

func Zero() Amount {
	return Amount{}
}

// FromTokens converts a whole-token count into an Amount. A uint64 token
// count scaled by 10^18 always fits in 128 bits.
func FromTokens(tokens uint64) Amount {
	v := new(big.Int).SetUint64(tokens)
	return Amount{v.Mul(v, subunitsPerToken)}
}

// FromSubunits wraps a raw sub-unit count, rejecting negatives and values
// wider than 128 bits.
func FromSubunits(v *big.Int) (Amount, error) {
	if v.Sign() < 0 || v.Cmp(maxSubunits) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{new(big.Int).Set(v)}, nil
}

// ParseHex parses the canonical wire encoding: "0x" followed by hex digits
// with no leading zero (the literal "0x0" excepted).
func ParseHex(s string) (Amount, error) {
	if !strings.HasPrefix(s, "0x") {
		return Amount{}, ErrMissingPrefix
	}
	digits := s[2:]
	if digits == "" {
		return Amount{}, ErrNotHex
	}
	if len(digits) > 1 && digits[0] == '0' {
		return Amount{}, ErrLeadingZero
	}
	// SetString tolerates sign characters, so validate the charset first.
	for i := 0; i < len(digits); i++ {
		c := digits[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return Amount{}, ErrNotHex
		}
	}
	v, ok := new(big.Int).SetString(digits, 16)
	if !ok {
		return Amount{}, ErrNotHex
	}
	if v.Cmp(maxSubunits) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v}, nil
}

// ParseDecimal parses a human token quantity such as "12" or "0.5",
// allowing at most 18 fractional digits.
func ParseDecimal(s string) (Amount, error) {
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if frac == "" {
			return Amount{}, ErrNotDecimal
		}
	}
	if whole == "" {
		return Amount{}, ErrNotDecimal
	}
	if len(frac) > Decimals {
		return Amount{}, ErrTooManyDecimals
	}
	// Both parts must be bare digit runs; SetString would accept signs.
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return Amount{}, ErrNotDecimal
	}
	w, _ := new(big.Int).SetString(whole, 10)
	v := w.Mul(w, subunitsPerToken)
	if frac != "" {
		f, _ := new(big.Int).SetString(frac+strings.Repeat("0", Decimals-len(frac)), 10)
		v.Add(v, f)
	}
	if v.Cmp(maxSubunits) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v}, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (a Amount) big() *big.Int {
	if a.v == nil {
		return new(big.Int)
	}
	return a.v
}

// Hex formats the amount as its canonical wire encoding.
func (a Amount) Hex() string {
	return "0x" + a.big().Text(16)
}

// String formats the amount as a decimal token quantity, trimming
// trailing fractional zeros.
func (a Amount) String() string {
	q, r := new(big.Int).QuoRem(a.big(), subunitsPerToken, new(big.Int))
	if r.Sign() == 0 {
		return q.Text(10)
	}
	frac := r.Text(10)
	frac = strings.Repeat("0", Decimals-len(frac)) + frac
	return q.Text(10) + "." + strings.TrimRight(frac, "0")
}

// Subunits returns a copy of the raw sub-unit count.
func (a Amount) Subunits() *big.Int {
	return new(big.Int).Set(a.big())
}

func (a Amount) Cmp(b Amount) int {
	return a.big().Cmp(b.big())
}

func (a Amount) IsZero() bool {
	return a.big().Sign() == 0
}

func (a Amount) Add(b Amount) (Amount, error) {
	v := new(big.Int).Add(a.big(), b.big())
	if v.Cmp(maxSubunits) > 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v}, nil
}

func (a Amount) Sub(b Amount) (Amount, error) {
	v := new(big.Int).Sub(a.big(), b.big())
	if v.Sign() < 0 {
		return Amount{}, ErrOverflow
	}
	return Amount{v}, nil
}
