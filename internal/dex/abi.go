package dex

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// SwapTopic0 is the topic0 signature the backend filters swap logs by.
const SwapTopic0 = "0x40e9cecb9f5f1f1c5b9c97dec2917b7ee92e57ba5563708daca94dd84ad7112f"

const poolSwapABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "bytes32", "name": "id", "type": "bytes32"},
      {"indexed": true, "internalType": "address", "name": "sender", "type": "address"},
      {"indexed": false, "internalType": "int256", "name": "amount0", "type": "int256"},
      {"indexed": false, "internalType": "int256", "name": "amount1", "type": "int256"},
      {"indexed": false, "internalType": "uint160", "name": "sqrtPriceX96", "type": "uint160"},
      {"indexed": false, "internalType": "uint128", "name": "liquidity", "type": "uint128"},
      {"indexed": false, "internalType": "int24", "name": "tick", "type": "int24"}
    ],
    "name": "Swap",
    "type": "event"
  }
]`

var (
	poolSwapABI     abi.ABI
	poolSwapABIOnce sync.Once
	poolSwapABIErr  error
)

// PoolSwapABI returns the parsed pool manager Swap event ABI.
func PoolSwapABI() (abi.ABI, error) {
	poolSwapABIOnce.Do(func() {
		poolSwapABI, poolSwapABIErr = abi.JSON(strings.NewReader(poolSwapABIJSON))
	})
	return poolSwapABI, poolSwapABIErr
}
