package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tradefeed/internal/model"
)

// Store provides Postgres persistence for a local trade archive.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertTrades inserts or updates normalized trades keyed by their derived id.
func (s *Store) UpsertTrades(ctx context.Context, trades []model.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, trade := range trades {
		batch.Queue(`
			INSERT INTO trades (
				trade_id, wallet, tx_hash, trade_type, token_in, token_out,
				amount_in, amount_out, entry_price_in, entry_price_out,
				block_number, block_time, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now(),now())
			ON CONFLICT (trade_id)
			DO UPDATE SET
				wallet = EXCLUDED.wallet,
				tx_hash = EXCLUDED.tx_hash,
				trade_type = EXCLUDED.trade_type,
				token_in = EXCLUDED.token_in,
				token_out = EXCLUDED.token_out,
				amount_in = EXCLUDED.amount_in,
				amount_out = EXCLUDED.amount_out,
				entry_price_in = EXCLUDED.entry_price_in,
				entry_price_out = EXCLUDED.entry_price_out,
				block_number = EXCLUDED.block_number,
				block_time = EXCLUDED.block_time,
				updated_at = now()
		`,
			trade.ID,
			trade.Wallet,
			trade.TxHash,
			string(trade.Type),
			trade.TokenIn,
			trade.TokenOut,
			trade.AmountIn,
			trade.AmountOut,
			trade.EntryPriceTokenIn,
			trade.EntryPriceTokenOut,
			int64(trade.BlockNumber),
			int64(trade.BlockTime),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range trades {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
