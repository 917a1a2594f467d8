package dice

import (
	"errors"
	"math/rand"

	"github.com/Kartagia/diceodel/internal/core/compare"
)

// ErrInvalidHexDigit indicates a value outside 0-9 and A-F.
var ErrInvalidHexDigit = errors.New("hex digit must be 0-9 or A-F")

// hexDigits maps d16 faces 1..16 to canonical hex digit values.
const hexDigits = "0123456789ABCDEF"

// HexDigit is a single hexadecimal digit rolled from a d16. Lowercase input
// is canonicalized to uppercase by ParseHexDigit.
type HexDigit byte

// ParseHexDigit validates and canonicalizes a hex digit character.
func ParseHexDigit(r rune) (HexDigit, error) {
	switch {
	case r >= '0' && r <= '9', r >= 'A' && r <= 'F':
		return HexDigit(r), nil
	case r >= 'a' && r <= 'f':
		return HexDigit(r - 'a' + 'A'), nil
	default:
		return 0, ErrInvalidHexDigit
	}
}

// Letter reports whether the digit is a letter digit (A-F) rather than a
// numeric digit (0-9).
func (d HexDigit) Letter() bool {
	return d >= 'A'
}

// Value returns the numeric value of the digit, 0 through 15.
func (d HexDigit) Value() int {
	if d.Letter() {
		return int(d-'A') + 10
	}
	return int(d - '0')
}

func (d HexDigit) String() string {
	return string(byte(d))
}

// CompareHexDigits orders hex digits kind-first: numeric digits rank below
// letter digits regardless of numeric value, and digits of the same kind
// follow their natural order. It is the domain comparator for hex-digit
// rolls handed to keep-policy combiners.
func CompareHexDigits(a, b HexDigit) compare.Ordering {
	if a.Letter() != b.Letter() {
		if b.Letter() {
			return compare.Less
		}
		return compare.Greater
	}
	return compare.Natural[byte]()(byte(a), byte(b))
}

// RollHexDice rolls count sixteen-sided dice and maps each face to a hex
// digit. The roll is deterministic with respect to seed, like RollDice.
func RollHexDice(count int, seed int64) ([]HexDigit, error) {
	if count <= 0 {
		return nil, ErrInvalidDiceSpec
	}

	rng := rand.New(rand.NewSource(seed))
	digits := make([]HexDigit, count)
	for i := range digits {
		digits[i] = HexDigit(hexDigits[rng.Intn(len(hexDigits))])
	}
	return digits, nil
}
