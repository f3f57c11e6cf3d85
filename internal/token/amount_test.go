package token

import (
	"math/big"
	"testing"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		decimals uint8
		want     string
	}{
		{"simple fraction", "1500000000000000000", 18, "1.5"},
		{"zero", "0", 18, "0"},
		{"whole only", "2000000", 6, "2"},
		{"zero decimals", "42", 0, "42"},
		{"truncates to four significant digits", "123456789", 8, "1.2345"},
		{"leading zeros kept", "10000512345", 10, "1.00005123"},
		{"single digit after zero run", "1000000000000000001", 18, "1.000000000000000001"},
		{"magnitude of negative", "-1500000000000000000", 18, "1.5"},
		{"sub one", "500000", 6, "0.5"},
		{"huge whole part exact", "123456789012345678901234567890000000", 18, "123456789012345678.9012"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, ok := new(big.Int).SetString(tc.raw, 10)
			if !ok {
				t.Fatalf("bad test input: %s", tc.raw)
			}
			got := FormatAmount(raw, tc.decimals)
			if got != tc.want {
				t.Fatalf("FormatAmount(%s, %d) = %q, want %q", tc.raw, tc.decimals, got, tc.want)
			}
		})
	}
}

func TestFormatAmountNil(t *testing.T) {
	if got := FormatAmount(nil, 18); got != "0" {
		t.Fatalf("nil amount = %q, want 0", got)
	}
}
