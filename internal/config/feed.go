package config

import (
	"time"

	"github.com/spf13/pflag"
)

// FeedConfig holds configuration for the feed command.
type FeedConfig struct {
	APIBaseURL      string
	Sort            string
	PageSize        int
	Pages           int
	Viewer          string
	Watch           bool
	RefreshInterval time.Duration
	Timeout         time.Duration
	RPS             float64
	LogLevel        string
}

// LoadFeed merges config file, environment variables, and flags into
// FeedConfig.
func LoadFeed(cfgFile string, flags *pflag.FlagSet) (FeedConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return FeedConfig{}, err
	}

	v.SetDefault("sort", "recent")
	v.SetDefault("page-size", 20)
	v.SetDefault("pages", 1)
	v.SetDefault("refresh-interval", 30*time.Second)

	return FeedConfig{
		APIBaseURL:      v.GetString("api-url"),
		Sort:            v.GetString("sort"),
		PageSize:        v.GetInt("page-size"),
		Pages:           v.GetInt("pages"),
		Viewer:          v.GetString("viewer"),
		Watch:           v.GetBool("watch"),
		RefreshInterval: v.GetDuration("refresh-interval"),
		Timeout:         v.GetDuration("timeout"),
		RPS:             v.GetFloat64("rps"),
		LogLevel:        v.GetString("log-level"),
	}, nil
}
