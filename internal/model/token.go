package model

// TokenInfo describes a known token for display purposes.
type TokenInfo struct {
	Symbol   string `json:"symbol" mapstructure:"symbol"`
	Decimals uint8  `json:"decimals" mapstructure:"decimals"`
}

// PoolPair names the two tokens traded by a pool.
type PoolPair struct {
	Currency0 string `json:"currency0" mapstructure:"currency0"`
	Currency1 string `json:"currency1" mapstructure:"currency1"`
}
