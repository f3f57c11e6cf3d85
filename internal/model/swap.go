package model

// SwapLog is a raw swap event record as returned by the backend indexer.
// Enrichment fields (token addresses, symbols, USD prices, timestamp) are
// optional and only present when the backend resolved them.
type SwapLog struct {
	BlockNumber      uint64   `json:"block_number"`
	LogIndex         uint64   `json:"log_index"`
	TransactionIndex uint64   `json:"transaction_index"`
	Address          string   `json:"address"`
	Data             string   `json:"data"`
	Topics           []string `json:"topics"`

	Token0Address  string  `json:"token0_address,omitempty"`
	Token1Address  string  `json:"token1_address,omitempty"`
	Token0Symbol   string  `json:"token0_symbol,omitempty"`
	Token1Symbol   string  `json:"token1_symbol,omitempty"`
	Token0PriceUSD float64 `json:"token0_price_usd,omitempty"`
	Token1PriceUSD float64 `json:"token1_price_usd,omitempty"`
	Timestamp      uint64  `json:"timestamp,omitempty"`
}

// PoolID returns the identifier used for pool resolution. V4-style events
// carry the pool id as the first indexed topic; older pools use the emitting
// contract address.
func (l SwapLog) PoolID() string {
	if len(l.Topics) > 1 {
		return l.Topics[1]
	}
	return l.Address
}

// SwapBlock is the block record joined to swap logs by block number.
type SwapBlock struct {
	Number    uint64 `json:"number"`
	Timestamp uint64 `json:"timestamp"`
	Hash      string `json:"hash"`
}

// SwapTransaction is the transaction record joined to swap logs by
// (block number, transaction index).
type SwapTransaction struct {
	BlockNumber      uint64 `json:"block_number"`
	TransactionIndex uint64 `json:"transaction_index"`
	Hash             string `json:"hash"`
	From             string `json:"from"`
	To               string `json:"to"`
	Value            string `json:"value"`
}
