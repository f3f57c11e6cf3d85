package dex

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ParseAddress validates and converts a hex address string.
func ParseAddress(input string) (common.Address, error) {
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %s", input)
	}
	return common.HexToAddress(input), nil
}

// ParseHash validates and converts a 32-byte hex hash string.
func ParseHash(input string) (common.Hash, error) {
	data, err := hexutil.Decode(input)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid hash: %s", input)
	}
	if len(data) != 32 {
		return common.Hash{}, fmt.Errorf("invalid hash length: %s", input)
	}
	return common.BytesToHash(data), nil
}
