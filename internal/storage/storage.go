package storage

import "tradefeed/internal/model"

// TradeSink is a destination for normalized trades.
type TradeSink interface {
	PutTradeBatch(trades []model.Trade) error
}
