package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"tradefeed/internal/dex"
)

const erc20TransferGasLimit = 90000

// Client wraps go-ethereum RPC for the on-chain side of the tip flow: a
// stablecoin transfer and receipt polling.
type Client struct {
	rpcClient *rpc.Client
	ethClient *ethclient.Client

	token      string
	privateKey *ecdsa.PrivateKey
	chainID    *big.Int
}

// NewClient dials the RPC endpoint and binds the signing key and stablecoin
// contract used for tips.
func NewClient(ctx context.Context, rpcURL, tokenAddress, privateKeyHex string) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	ethClient := ethclient.NewClient(rpcClient)

	key, err := crypto.HexToECDSA(strip0x(privateKeyHex))
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	chainID, err := ethClient.ChainID(ctx)
	if err != nil {
		rpcClient.Close()
		return nil, fmt.Errorf("fetch chain id: %w", err)
	}

	return &Client{
		rpcClient:  rpcClient,
		ethClient:  ethClient,
		token:      tokenAddress,
		privateKey: key,
		chainID:    chainID,
	}, nil
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		c.rpcClient.Close()
	}
}

// From returns the sending wallet address.
func (c *Client) From() string {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey).Hex()
}

// Transfer sends an ERC-20 transfer(to, amount) on the bound token contract
// and returns the transaction hash.
func (c *Client) Transfer(ctx context.Context, to string, amount *big.Int) (string, error) {
	data, err := dex.PackTransfer(to, amount)
	if err != nil {
		return "", err
	}

	from := crypto.PubkeyToAddress(c.privateKey.PublicKey)
	nonce, err := c.ethClient.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("fetch nonce: %w", err)
	}

	gasPrice, err := c.ethClient.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch gas price: %w", err)
	}

	tokenAddr, err := dex.ParseAddress(c.token)
	if err != nil {
		return "", err
	}

	tx := types.NewTransaction(nonce, tokenAddr, big.NewInt(0), erc20TransferGasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.privateKey)
	if err != nil {
		return "", fmt.Errorf("sign transfer: %w", err)
	}

	if err := c.ethClient.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("send transfer: %w", err)
	}
	return signed.Hash().Hex(), nil
}

// WaitMined polls for the transaction receipt until the context is canceled.
// A reverted transaction is an error.
func (c *Client) WaitMined(ctx context.Context, txHash string) error {
	hash, err := dex.ParseHash(txHash)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		receipt, err := c.ethClient.TransactionReceipt(ctx, hash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return fmt.Errorf("transfer %s reverted", txHash)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}
