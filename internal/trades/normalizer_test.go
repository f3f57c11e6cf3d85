package trades

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"tradefeed/internal/dex"
	"tradefeed/internal/model"
	"tradefeed/internal/token"
)

const (
	testPoolID = "0x1111111111111111111111111111111111111111111111111111111111111111"
	token0Addr = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	token1Addr = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func testRegistry() *token.Registry {
	return token.NewRegistry(
		map[string]model.TokenInfo{
			token0Addr: {Symbol: "USDC", Decimals: 6},
			token1Addr: {Symbol: "WETH", Decimals: 18},
		},
		map[string]model.PoolPair{
			testPoolID: {Currency0: token0Addr, Currency1: token1Addr},
		},
	)
}

func testNormalizer(now time.Time) *Normalizer {
	n := NewNormalizer(testRegistry(), zap.NewNop())
	n.now = func() time.Time { return now }
	return n
}

func packSwapData(t *testing.T, amount0, amount1 *big.Int) string {
	t.Helper()

	poolABI, err := dex.PoolSwapABI()
	if err != nil {
		t.Fatalf("abi parse: %v", err)
	}
	data, err := poolABI.Events["Swap"].Inputs.NonIndexed().Pack(
		amount0, amount1,
		big.NewInt(123456789), big.NewInt(42), big.NewInt(-10),
	)
	if err != nil {
		t.Fatalf("pack swap: %v", err)
	}
	return hexutil.Encode(data)
}

func swapLog(t *testing.T, block, logIndex, txIndex uint64, amount0, amount1 *big.Int) model.SwapLog {
	t.Helper()
	return model.SwapLog{
		BlockNumber:      block,
		LogIndex:         logIndex,
		TransactionIndex: txIndex,
		Address:          "0xe03a1074c86cfedd5c142c4f04f1a1536e203543",
		Data:             packSwapData(t, amount0, amount1),
		Topics:           []string{dex.SwapTopic0, testPoolID},
	}
}

func TestNormalizeBuy(t *testing.T) {
	now := time.Unix(1700003600, 0)
	n := testNormalizer(now)

	// Pool paid out token0: the wallet received USDC.
	logs := []model.SwapLog{
		swapLog(t, 100, 3, 1, big.NewInt(-2500000), big.NewInt(1500000000000000000)),
	}
	blocks := []model.SwapBlock{{Number: 100, Timestamp: 1700000000, Hash: "0xb"}}
	txs := []model.SwapTransaction{{BlockNumber: 100, TransactionIndex: 1, Hash: "0xt", From: "0xwallet"}}

	trades, skipped := n.Normalize(logs, blocks, txs)
	if len(trades) != 1 || len(skipped) != 0 {
		t.Fatalf("trades = %d skipped = %d, want 1 and 0", len(trades), len(skipped))
	}

	trade := trades[0]
	if trade.Type != model.TradeBuy {
		t.Fatalf("type = %s, want buy", trade.Type)
	}
	if trade.TokenOut != "USDC" || trade.AmountOut != "2.5" {
		t.Fatalf("out leg = %s %s, want 2.5 USDC", trade.AmountOut, trade.TokenOut)
	}
	if trade.TokenIn != "WETH" || trade.AmountIn != "1.5" {
		t.Fatalf("in leg = %s %s, want 1.5 WETH", trade.AmountIn, trade.TokenIn)
	}
	if trade.ID != "100-3" {
		t.Fatalf("id = %s, want 100-3", trade.ID)
	}
	if trade.TxHash != "0xt" {
		t.Fatalf("tx hash = %s", trade.TxHash)
	}
	if trade.Timestamp != "1 hour ago" {
		t.Fatalf("timestamp = %q, want 1 hour ago", trade.Timestamp)
	}
}

func TestNormalizeSell(t *testing.T) {
	n := testNormalizer(time.Unix(1700000100, 0))

	logs := []model.SwapLog{
		swapLog(t, 100, 0, 0, big.NewInt(1000000), big.NewInt(-500000000000000000)),
	}
	blocks := []model.SwapBlock{{Number: 100, Timestamp: 1700000000}}
	txs := []model.SwapTransaction{{BlockNumber: 100, TransactionIndex: 0, Hash: "0xt"}}

	trades, _ := n.Normalize(logs, blocks, txs)
	if len(trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(trades))
	}
	trade := trades[0]
	if trade.Type != model.TradeSell {
		t.Fatalf("type = %s, want sell", trade.Type)
	}
	if trade.TokenIn != "USDC" || trade.AmountIn != "1" {
		t.Fatalf("in leg = %s %s, want 1 USDC", trade.AmountIn, trade.TokenIn)
	}
	if trade.TokenOut != "WETH" || trade.AmountOut != "0.5" {
		t.Fatalf("out leg = %s %s, want 0.5 WETH", trade.AmountOut, trade.TokenOut)
	}
	if trade.Timestamp != "Just now" {
		t.Fatalf("timestamp = %q, want Just now", trade.Timestamp)
	}
}

func TestNormalizeDropsMalformedRecords(t *testing.T) {
	n := testNormalizer(time.Unix(1700000100, 0))

	good := swapLog(t, 100, 0, 0, big.NewInt(-1000000), big.NewInt(2000))

	missingBlock := swapLog(t, 200, 0, 0, big.NewInt(-1000000), big.NewInt(2000))
	missingTx := swapLog(t, 100, 1, 9, big.NewInt(-1000000), big.NewInt(2000))

	badData := good
	badData.LogIndex = 2
	badData.Data = "0x1234"

	unknownPool := swapLog(t, 100, 4, 0, big.NewInt(-1000000), big.NewInt(2000))
	unknownPool.Topics = []string{dex.SwapTopic0, "0x9999999999999999999999999999999999999999999999999999999999999999"}

	bothNegative := swapLog(t, 100, 5, 0, big.NewInt(-1), big.NewInt(-1))

	logs := []model.SwapLog{good, missingBlock, missingTx, badData, unknownPool, bothNegative}
	blocks := []model.SwapBlock{{Number: 100, Timestamp: 1700000000}}
	txs := []model.SwapTransaction{{BlockNumber: 100, TransactionIndex: 0, Hash: "0xt"}}

	trades, skipped := n.Normalize(logs, blocks, txs)
	if len(trades) != 1 {
		t.Fatalf("trades = %d, want only the well-formed record", len(trades))
	}
	if trades[0].ID != "100-0" {
		t.Fatalf("surviving trade = %s", trades[0].ID)
	}
	if len(skipped) != 5 {
		t.Fatalf("skipped = %d, want 5", len(skipped))
	}
}

func TestNormalizeOrdering(t *testing.T) {
	n := testNormalizer(time.Unix(1700000100, 0))

	logs := []model.SwapLog{
		swapLog(t, 100, 0, 0, big.NewInt(-1000000), big.NewInt(2000)),
		swapLog(t, 101, 0, 0, big.NewInt(-1000000), big.NewInt(2000)),
		swapLog(t, 102, 0, 0, big.NewInt(-1000000), big.NewInt(2000)),
	}
	blocks := []model.SwapBlock{
		{Number: 100, Timestamp: 1699990000},
		{Number: 101, Timestamp: 1699995000},
		{Number: 102, Timestamp: 1700000000},
	}
	txs := []model.SwapTransaction{
		{BlockNumber: 100, TransactionIndex: 0, Hash: "0xa"},
		{BlockNumber: 101, TransactionIndex: 0, Hash: "0xb"},
		{BlockNumber: 102, TransactionIndex: 0, Hash: "0xc"},
	}

	trades, _ := n.Normalize(logs, blocks, txs)
	if len(trades) != 3 {
		t.Fatalf("trades = %d, want 3", len(trades))
	}
	if trades[0].ID != "102-0" || trades[2].ID != "100-0" {
		t.Fatalf("most recent first violated: %s .. %s", trades[0].ID, trades[2].ID)
	}
}

func TestNormalizeEntryPrices(t *testing.T) {
	n := testNormalizer(time.Unix(1700000100, 0))

	log := swapLog(t, 100, 0, 0, big.NewInt(-2500000), big.NewInt(1500000000000000000))
	log.Token0PriceUSD = 1.0
	log.Token1PriceUSD = 2450.5

	trades, _ := n.Normalize(
		[]model.SwapLog{log},
		[]model.SwapBlock{{Number: 100, Timestamp: 1700000000}},
		[]model.SwapTransaction{{BlockNumber: 100, TransactionIndex: 0, Hash: "0xt"}},
	)
	if len(trades) != 1 {
		t.Fatalf("trades = %d, want 1", len(trades))
	}

	// Buy: token0 received, so the out price is token0's.
	trade := trades[0]
	if trade.EntryPriceTokenOut != 1.0 {
		t.Fatalf("out price = %v, want 1.0", trade.EntryPriceTokenOut)
	}
	if trade.EntryPriceTokenIn != 2450.5 {
		t.Fatalf("in price = %v, want 2450.5", trade.EntryPriceTokenIn)
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cases := []struct {
		name string
		ts   uint64
		want string
	}{
		{"zero is unknown", 0, "Unknown"},
		{"under an hour", 1700000000 - 1800, "Just now"},
		{"one hour", 1700000000 - 3700, "1 hour ago"},
		{"several hours", 1700000000 - 5*3600, "5 hours ago"},
		{"one day", 1700000000 - 25*3600, "1 day ago"},
		{"several days", 1700000000 - 80*3600, "3 days ago"},
		{"future clamps", 1700000000 + 600, "Just now"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatRelativeTime(tc.ts, now); got != tc.want {
				t.Fatalf("formatRelativeTime(%d) = %q, want %q", tc.ts, got, tc.want)
			}
		})
	}
}
