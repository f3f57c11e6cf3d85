package trades

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"tradefeed/internal/dex"
	"tradefeed/internal/model"
	"tradefeed/internal/token"
)

// Normalizer turns raw swap logs plus their block and transaction records
// into directionally normalized trades. Malformed records are skipped, never
// surfaced as partial entries.
type Normalizer struct {
	registry *token.Registry
	logger   *zap.Logger
	now      func() time.Time
}

func NewNormalizer(registry *token.Registry, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		registry: registry,
		logger:   logger,
		now:      time.Now,
	}
}

// Normalize joins and decodes the fetched records. The backend returns swaps
// oldest-first; the result is reversed so index 0 is the most recent trade.
// Skipped records come back as DecodeErrors for diagnostics and are never
// surfaced as partial trades.
func (n *Normalizer) Normalize(logs []model.SwapLog, blocks []model.SwapBlock, txs []model.SwapTransaction) ([]model.Trade, []model.DecodeError) {
	blockByNumber := make(map[uint64]model.SwapBlock, len(blocks))
	for _, block := range blocks {
		blockByNumber[block.Number] = block
	}

	type txKey struct {
		block uint64
		index uint64
	}
	txByKey := make(map[txKey]model.SwapTransaction, len(txs))
	for _, tx := range txs {
		txByKey[txKey{tx.BlockNumber, tx.TransactionIndex}] = tx
	}

	trades := make([]model.Trade, 0, len(logs))
	var skipped []model.DecodeError
	for _, log := range logs {
		block, ok := blockByNumber[log.BlockNumber]
		if !ok {
			skipped = append(skipped, n.skip(log, "missing block"))
			continue
		}
		tx, ok := txByKey[txKey{log.BlockNumber, log.TransactionIndex}]
		if !ok {
			skipped = append(skipped, n.skip(log, "missing transaction"))
			continue
		}

		trade, err := n.normalizeOne(log, block, tx)
		if err != nil {
			skipped = append(skipped, n.skip(log, err.Error()))
			continue
		}
		trades = append(trades, trade)
	}

	// Present most-recent first.
	for i, j := 0, len(trades)-1; i < j; i, j = i+1, j-1 {
		trades[i], trades[j] = trades[j], trades[i]
	}
	return trades, skipped
}

func (n *Normalizer) normalizeOne(log model.SwapLog, block model.SwapBlock, tx model.SwapTransaction) (model.Trade, error) {
	if len(log.Topics) > 0 && !strings.EqualFold(log.Topics[0], dex.SwapTopic0) {
		return model.Trade{}, fmt.Errorf("unexpected topic0: %s", log.Topics[0])
	}

	swap, err := dex.Decode(log.Data)
	if err != nil {
		return model.Trade{}, err
	}

	pair, ok := n.registry.ResolvePool(log.PoolID())
	if !ok {
		return model.Trade{}, fmt.Errorf("unknown pool: %s", log.PoolID())
	}

	// The side with a negative amount is what the pool paid out.
	receivedToken0 := swap.Amount0.Sign() < 0
	if receivedToken0 == (swap.Amount1.Sign() < 0) {
		return model.Trade{}, fmt.Errorf("ambiguous swap direction")
	}

	amount0 := token.FormatAmount(swap.Amount0, n.registry.DecimalsFor(pair.Currency0))
	amount1 := token.FormatAmount(swap.Amount1, n.registry.DecimalsFor(pair.Currency1))

	trade := model.Trade{
		ID:          fmt.Sprintf("%d-%d", log.BlockNumber, log.LogIndex),
		Timestamp:   formatRelativeTime(block.Timestamp, n.now()),
		TxHash:      tx.Hash,
		BlockNumber: log.BlockNumber,
		BlockTime:   block.Timestamp,
		Wallet:      tx.From,
	}

	if receivedToken0 {
		trade.Type = model.TradeBuy
		trade.TokenIn = n.registry.SymbolFor(pair.Currency1)
		trade.AmountIn = amount1
		trade.TokenOut = n.registry.SymbolFor(pair.Currency0)
		trade.AmountOut = amount0
		trade.EntryPriceTokenIn = log.Token1PriceUSD
		trade.EntryPriceTokenOut = log.Token0PriceUSD
	} else {
		trade.Type = model.TradeSell
		trade.TokenIn = n.registry.SymbolFor(pair.Currency0)
		trade.AmountIn = amount0
		trade.TokenOut = n.registry.SymbolFor(pair.Currency1)
		trade.AmountOut = amount1
		trade.EntryPriceTokenIn = log.Token0PriceUSD
		trade.EntryPriceTokenOut = log.Token1PriceUSD
	}

	return trade, nil
}

func (n *Normalizer) skip(log model.SwapLog, reason string) model.DecodeError {
	n.logger.Debug("skip swap log",
		zap.Uint64("block", log.BlockNumber),
		zap.Uint64("log_index", log.LogIndex),
		zap.String("reason", reason),
	)
	return model.DecodeError{
		BlockNumber: log.BlockNumber,
		LogIndex:    log.LogIndex,
		Address:     log.Address,
		Reason:      reason,
	}
}
