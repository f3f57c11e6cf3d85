package dex

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func packSwap(t *testing.T, amount0, amount1, sqrtPrice, liquidity, tick *big.Int) string {
	t.Helper()

	poolABI, err := PoolSwapABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := poolABI.Events["Swap"].Inputs.NonIndexed().Pack(
		amount0, amount1, sqrtPrice, liquidity, tick,
	)
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}
	return hexutil.Encode(data)
}

func TestDecodeSwapRoundTrip(t *testing.T) {
	amount0, _ := new(big.Int).SetString("-1500000000000000000", 10)
	amount1 := big.NewInt(3750000000)
	sqrtPrice, _ := new(big.Int).SetString("79228162514264337593543950336", 10)
	liquidity := big.NewInt(987654321)

	dataHex := packSwap(t, amount0, amount1, sqrtPrice, liquidity, big.NewInt(-15))

	swap, err := Decode(dataHex)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if swap.Amount0.Sign() >= 0 {
		t.Fatalf("amount0 should be negative: %s", swap.Amount0)
	}
	if swap.Amount0.Cmp(amount0) != 0 {
		t.Fatalf("amount0 = %s, want %s", swap.Amount0, amount0)
	}
	if swap.Amount1.Sign() < 0 {
		t.Fatalf("amount1 should be non-negative: %s", swap.Amount1)
	}
	if swap.Amount1.Cmp(amount1) != 0 {
		t.Fatalf("amount1 = %s, want %s", swap.Amount1, amount1)
	}
	if swap.SqrtPriceX96.Cmp(sqrtPrice) != 0 {
		t.Fatalf("sqrtPriceX96 = %s, want %s", swap.SqrtPriceX96, sqrtPrice)
	}
	if swap.Liquidity.Cmp(liquidity) != 0 {
		t.Fatalf("liquidity = %s, want %s", swap.Liquidity, liquidity)
	}
	if swap.Tick != -15 {
		t.Fatalf("tick = %d, want -15", swap.Tick)
	}
}

func TestDecodeSwapPositiveTick(t *testing.T) {
	dataHex := packSwap(t,
		big.NewInt(1000), big.NewInt(-2000),
		big.NewInt(123456789), big.NewInt(42), big.NewInt(887272),
	)

	swap, err := Decode(dataHex)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if swap.Tick != 887272 {
		t.Fatalf("tick = %d, want 887272", swap.Tick)
	}
}

func TestDecodeSwapMalformed(t *testing.T) {
	if _, err := Decode("0x1234"); err == nil {
		t.Fatalf("expected error for short blob")
	}
	if _, err := Decode("not-hex"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
	if _, err := Decode("0x"); err == nil {
		t.Fatalf("expected error for empty blob")
	}
}

func TestInt24FromBigRange(t *testing.T) {
	if _, err := int24FromBig(big.NewInt(1 << 23)); err == nil {
		t.Fatalf("expected error above int24 max")
	}
	if _, err := int24FromBig(big.NewInt(-(1<<23) - 1)); err == nil {
		t.Fatalf("expected error below int24 min")
	}
	got, err := int24FromBig(big.NewInt(-(1 << 23)))
	if err != nil {
		t.Fatalf("min should be valid: %v", err)
	}
	if got != -(1 << 23) {
		t.Fatalf("min mismatch: %d", got)
	}
}
