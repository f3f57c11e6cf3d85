package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	root := &cobra.Command{
		Use:          "tradefeed",
		Short:        "Social trade feed client",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	tradesCmd := &cobra.Command{
		Use:   "trades",
		Short: "Fetch and normalize swap trades for a wallet",
		RunE:  runTrades,
	}
	tradesCmd.Flags().String("api-url", "", "backend API base URL")
	tradesCmd.Flags().String("wallet", "", "wallet address")
	tradesCmd.Flags().String("registry", "", "token/pool registry YAML path")
	tradesCmd.Flags().String("out", "", "optional trades JSONL output path")
	tradesCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for trade archive")
	tradesCmd.Flags().Bool("debug", false, "request debug payloads from the backend")
	tradesCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	tradesCmd.Flags().Float64("rps", 5, "request rate limit")
	tradesCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(tradesCmd)

	feedCmd := &cobra.Command{
		Use:   "feed",
		Short: "Page through the post feed",
		RunE:  runFeed,
	}
	feedCmd.Flags().String("api-url", "", "backend API base URL")
	feedCmd.Flags().String("sort", "recent", "sort key (recent, pnl, tipped)")
	feedCmd.Flags().Int("page-size", 20, "posts per page")
	feedCmd.Flags().Int("pages", 1, "pages to fetch")
	feedCmd.Flags().String("viewer", "", "viewer wallet address")
	feedCmd.Flags().Bool("watch", false, "keep refreshing the first page")
	feedCmd.Flags().Duration("refresh-interval", 30*time.Second, "refresh interval in watch mode")
	feedCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	feedCmd.Flags().Float64("rps", 5, "request rate limit")
	feedCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(feedCmd)

	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Create a trade post",
		RunE:  runPost,
	}
	postCmd.Flags().String("api-url", "", "backend API base URL")
	postCmd.Flags().String("wallet", "", "wallet address")
	postCmd.Flags().String("tx-hash", "", "trade transaction hash")
	postCmd.Flags().String("content", "", "post content")
	postCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	postCmd.Flags().Float64("rps", 5, "request rate limit")
	postCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(postCmd)

	tipCmd := &cobra.Command{
		Use:   "tip",
		Short: "Tip a post with the fixed stablecoin amount",
		RunE:  runTip,
	}
	tipCmd.Flags().String("api-url", "", "backend API base URL")
	tipCmd.Flags().String("rpc", "", "chain RPC URL")
	tipCmd.Flags().String("token", "", "stablecoin contract address")
	tipCmd.Flags().String("private-key", "", "tipper private key (hex)")
	tipCmd.Flags().Int64("post-id", 0, "post id to tip")
	tipCmd.Flags().String("recipient", "", "post author wallet address")
	tipCmd.Flags().String("amount", "1000000", "tip amount in the token's smallest unit")
	tipCmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	tipCmd.Flags().Float64("rps", 5, "request rate limit")
	tipCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(tipCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
