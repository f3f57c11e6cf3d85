package token

import (
	"math/big"
	"strings"
)

// FormatAmount renders a fixed-point integer amount as a decimal string. The
// value is treated as an unsigned magnitude; sign is the caller's concern.
// The fractional part keeps its leading zero run plus at most 4 digits from
// the first non-zero digit, then trailing zeros are stripped. The whole part
// never loses precision.
func FormatAmount(raw *big.Int, decimals uint8) string {
	if raw == nil || raw.Sign() == 0 {
		return "0"
	}

	value := new(big.Int).Abs(raw)
	if decimals == 0 {
		return value.String()
	}

	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(value, divisor, new(big.Int))

	fracStr := frac.String()
	if pad := int(decimals) - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}

	fracStr = truncateFraction(fracStr)
	if fracStr == "" {
		return whole.String()
	}
	return whole.String() + "." + fracStr
}

// truncateFraction keeps the leading zero run plus up to 4 significant digits
// and strips trailing zeros.
func truncateFraction(frac string) string {
	first := strings.IndexFunc(frac, func(r rune) bool { return r != '0' })
	if first < 0 {
		return ""
	}
	if end := first + 4; end < len(frac) {
		frac = frac[:end]
	}
	return strings.TrimRight(frac, "0")
}
