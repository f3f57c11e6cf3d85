package dex

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const erc20ABIJSON = `[
  {"inputs": [{"name": "to", "type": "address"}, {"name": "amount", "type": "uint256"}], "name": "transfer", "outputs": [{"type": "bool"}], "stateMutability": "nonpayable", "type": "function"},
  {"inputs": [], "name": "decimals", "outputs": [{"type": "uint8"}], "stateMutability": "view", "type": "function"},
  {"inputs": [], "name": "symbol", "outputs": [{"type": "string"}], "stateMutability": "view", "type": "function"}
]`

var (
	erc20ABI     abi.ABI
	erc20ABIOnce sync.Once
	erc20ABIErr  error
)

// ERC20ABI returns the parsed minimal ERC-20 ABI used for tip transfers.
func ERC20ABI() (abi.ABI, error) {
	erc20ABIOnce.Do(func() {
		erc20ABI, erc20ABIErr = abi.JSON(strings.NewReader(erc20ABIJSON))
	})
	return erc20ABI, erc20ABIErr
}

// PackTransfer encodes an ERC-20 transfer(to, amount) call.
func PackTransfer(to string, amount *big.Int) ([]byte, error) {
	erc20, err := ERC20ABI()
	if err != nil {
		return nil, err
	}
	if !common.IsHexAddress(to) {
		return nil, fmt.Errorf("invalid recipient address: %s", to)
	}
	return erc20.Pack("transfer", common.HexToAddress(to), amount)
}
