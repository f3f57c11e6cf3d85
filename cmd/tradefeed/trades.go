package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradefeed/internal/api"
	"tradefeed/internal/config"
	"tradefeed/internal/storage"
	"tradefeed/internal/storage/postgres"
	"tradefeed/internal/token"
	"tradefeed/internal/trades"
)

func runTrades(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTrades(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Wallet == "" {
		return fmt.Errorf("wallet address is required")
	}

	registry, err := loadRegistry(cfg.Registry)
	if err != nil {
		return err
	}

	client, err := api.NewClient(api.Config{
		BaseURL:           cfg.APIBaseURL,
		RequestTimeout:    cfg.Timeout,
		RequestsPerSecond: cfg.RPS,
	}, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resp, err := client.Swaps(ctx, cfg.Wallet, cfg.Debug)
	if err != nil {
		return err
	}

	normalizer := trades.NewNormalizer(registry, logger)
	normalized, skipped := normalizer.Normalize(resp.Swaps, resp.Blocks, resp.Transactions)

	logger.Info("trades normalized",
		zap.Int("logs", len(resp.Swaps)),
		zap.Int("trades", len(normalized)),
		zap.Int("skipped", len(skipped)),
	)
	if cfg.Debug {
		for _, skip := range skipped {
			logger.Info("skipped swap log",
				zap.Uint64("block", skip.BlockNumber),
				zap.Uint64("log_index", skip.LogIndex),
				zap.String("reason", skip.Reason),
			)
		}
	}

	for _, trade := range normalized {
		fmt.Printf("%-12s %-4s  %s %s -> %s %s  %s  %s\n",
			trade.ID, trade.Type,
			trade.AmountIn, trade.TokenIn,
			trade.AmountOut, trade.TokenOut,
			trade.Timestamp, trade.TxHash,
		)
	}

	if cfg.Out != "" {
		var sink storage.TradeSink = storage.NewJsonlStorage(cfg.Out)
		if err := sink.PutTradeBatch(normalized); err != nil {
			return err
		}
		logger.Info("trades written", zap.String("out", cfg.Out))
	}

	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.UpsertTrades(ctx, normalized); err != nil {
			return err
		}
		logger.Info("trades archived", zap.Int("count", len(normalized)))
	}

	return nil
}

func loadRegistry(path string) (*token.Registry, error) {
	if path == "" {
		return token.DefaultRegistry(), nil
	}
	return token.LoadRegistry(path)
}
