package model

// TradeType classifies a trade by which side of the pool was received.
type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// Trade is a directionally normalized swap. TokenIn/AmountIn always describe
// the asset the wallet gave up, TokenOut/AmountOut the asset received,
// regardless of log ordering. Trades are rebuilt on every fetch and never
// mutated.
type Trade struct {
	ID        string    `json:"id"`
	TokenIn   string    `json:"token_in"`
	TokenOut  string    `json:"token_out"`
	AmountIn  string    `json:"amount_in"`
	AmountOut string    `json:"amount_out"`
	Timestamp string    `json:"timestamp"`
	TxHash    string    `json:"tx_hash"`
	Type      TradeType `json:"type"`

	EntryPriceTokenIn  float64 `json:"entry_price_token_in,omitempty"`
	EntryPriceTokenOut float64 `json:"entry_price_token_out,omitempty"`

	BlockNumber uint64 `json:"block_number"`
	BlockTime   uint64 `json:"block_time"`
	Wallet      string `json:"wallet,omitempty"`
}
