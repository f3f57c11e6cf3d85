package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradefeed/internal/api"
	"tradefeed/internal/chain"
	"tradefeed/internal/config"
	"tradefeed/internal/tip"
)

func runTip(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadTip(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.RPCURL == "" {
		return fmt.Errorf("rpc url is required")
	}
	if cfg.Token == "" {
		return fmt.Errorf("token address is required")
	}
	if cfg.PrivateKey == "" {
		return fmt.Errorf("private key is required")
	}
	if cfg.PostID == 0 {
		return fmt.Errorf("post id is required")
	}
	if cfg.Recipient == "" {
		return fmt.Errorf("recipient address is required")
	}

	amount, ok := new(big.Int).SetString(cfg.Amount, 10)
	if !ok || amount.Sign() <= 0 {
		return fmt.Errorf("invalid tip amount: %s", cfg.Amount)
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

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL, cfg.Token, cfg.PrivateKey)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer chainClient.Close()

	flow := tip.NewFlow(chainClient, client, tip.Config{
		PostID:    cfg.PostID,
		Recipient: cfg.Recipient,
		Tipper:    chainClient.From(),
		Amount:    amount,
	}, logger)

	if err := flow.Run(ctx); err != nil {
		logger.Warn("tip flow failed",
			zap.Stringer("state", flow.State()),
			zap.Error(err),
		)
		return fmt.Errorf("%s", tip.UserMessage(err))
	}

	recorded := flow.Tip()
	fmt.Printf("tipped post #%d: tip %d (%s)\n", cfg.PostID, recorded.ID, flow.TxHash())
	return nil
}
