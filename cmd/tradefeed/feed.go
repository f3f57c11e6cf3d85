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
	"tradefeed/internal/feed"
	"tradefeed/internal/model"
)

func runFeed(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFeed(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

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

	pager := feed.NewPager(client, cfg.Sort, cfg.PageSize, logger)
	if cfg.Viewer != "" {
		if err := pager.SetViewer(ctx, cfg.Viewer); err != nil {
			return err
		}
	} else if err := pager.Load(ctx, true); err != nil {
		return err
	}

	for page := 1; page < cfg.Pages && pager.HasMore(); page++ {
		if err := pager.Load(ctx, false); err != nil {
			return err
		}
	}

	printPosts(pager.Items(), pager.Total())

	if cfg.Watch {
		logger.Info("watching feed",
			zap.String("sort", cfg.Sort),
			zap.Duration("interval", cfg.RefreshInterval),
		)
		go pager.Run(ctx, cfg.RefreshInterval)
		<-ctx.Done()
	}

	return nil
}

func printPosts(posts []model.Post, total int) {
	for _, post := range posts {
		fmt.Printf("#%-5d %-16s %s -> %s  pnl %.2f%%  tips %s (%d)\n",
			post.ID, post.Username,
			post.TokenIn, post.TokenOut,
			post.PnL, post.TotalTips, post.TipCount,
		)
	}
	fmt.Printf("%d of %d posts\n", len(posts), total)
}
