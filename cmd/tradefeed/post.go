package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tradefeed/internal/api"
	"tradefeed/internal/config"
)

func runPost(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadPost(cfgFile, cmd.Flags())
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
	if cfg.TxHash == "" {
		return fmt.Errorf("tx hash is required")
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

	user, err := client.EnsureUser(ctx, cfg.Wallet)
	if err != nil {
		return err
	}
	logger.Info("user ensured",
		zap.String("username", user.Username),
		zap.Bool("is_new", user.IsNew),
	)

	post, err := client.CreatePost(ctx, api.CreatePostRequest{
		Username: user.Username,
		TxHash:   cfg.TxHash,
		Content:  cfg.Content,
	})
	if err != nil {
		var apiErr *api.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("%s", apiErr.UserMessage())
		}
		return err
	}

	fmt.Printf("posted #%d: %s %s -> %s\n", post.ID, post.Username, post.TokenIn, post.TokenOut)
	return nil
}
