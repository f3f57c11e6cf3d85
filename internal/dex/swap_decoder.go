package dex

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// SwapData holds the decoded Swap event payload. Amounts are signed: a
// negative amount is the side the pool paid out to the wallet.
type SwapData struct {
	Amount0      *big.Int
	Amount1      *big.Int
	SqrtPriceX96 *big.Int
	Liquidity    *big.Int
	Tick         int32
}

// Decode unpacks the non-indexed Swap payload from its hex-encoded data blob.
// The blob is an ABI tuple of (int256 amount0, int256 amount1,
// uint160 sqrtPriceX96, uint128 liquidity, int24 tick); signed values are
// two's-complement at their declared width. A short or malformed blob returns
// an error and the caller skips the record.
func Decode(dataHex string) (SwapData, error) {
	poolABI, err := PoolSwapABI()
	if err != nil {
		return SwapData{}, err
	}
	event := poolABI.Events["Swap"]

	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return SwapData{}, fmt.Errorf("invalid data: %w", err)
	}

	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return SwapData{}, fmt.Errorf("unpack swap: %w", err)
	}
	if len(values) != 5 {
		return SwapData{}, fmt.Errorf("unexpected swap values: %d", len(values))
	}

	amount0, err := asBigInt(values[0])
	if err != nil {
		return SwapData{}, err
	}
	amount1, err := asBigInt(values[1])
	if err != nil {
		return SwapData{}, err
	}
	sqrtPrice, err := asBigInt(values[2])
	if err != nil {
		return SwapData{}, err
	}
	liquidity, err := asBigInt(values[3])
	if err != nil {
		return SwapData{}, err
	}
	tickInt, err := asBigInt(values[4])
	if err != nil {
		return SwapData{}, err
	}
	tick, err := int24FromBig(tickInt)
	if err != nil {
		return SwapData{}, err
	}

	return SwapData{
		Amount0:      amount0,
		Amount1:      amount1,
		SqrtPriceX96: sqrtPrice,
		Liquidity:    liquidity,
		Tick:         tick,
	}, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}

var (
	int24Max = big.NewInt(1<<23 - 1)
	int24Min = big.NewInt(-(1 << 23))
)

func int24FromBig(value *big.Int) (int32, error) {
	if value == nil {
		return 0, fmt.Errorf("nil tick")
	}
	if value.Cmp(int24Max) > 0 || value.Cmp(int24Min) < 0 {
		return 0, fmt.Errorf("tick out of int24 range: %s", value.String())
	}
	return int32(value.Int64()), nil
}
