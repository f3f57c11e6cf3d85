package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// TradesConfig holds configuration for the trades command.
type TradesConfig struct {
	APIBaseURL string
	Wallet     string
	Registry   string
	Out        string
	PGDSN      string
	Debug      bool
	Timeout    time.Duration
	RPS        float64
	LogLevel   string
}

// LoadTrades merges config file, environment variables, and flags into
// TradesConfig.
func LoadTrades(cfgFile string, flags *pflag.FlagSet) (TradesConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return TradesConfig{}, err
	}

	return TradesConfig{
		APIBaseURL: v.GetString("api-url"),
		Wallet:     v.GetString("wallet"),
		Registry:   v.GetString("registry"),
		Out:        v.GetString("out"),
		PGDSN:      v.GetString("pg-dsn"),
		Debug:      v.GetBool("debug"),
		Timeout:    v.GetDuration("timeout"),
		RPS:        v.GetFloat64("rps"),
		LogLevel:   v.GetString("log-level"),
	}, nil
}

// PostConfig holds configuration for the post command.
type PostConfig struct {
	APIBaseURL string
	Wallet     string
	TxHash     string
	Content    string
	Timeout    time.Duration
	RPS        float64
	LogLevel   string
}

// LoadPost merges config file, environment variables, and flags into
// PostConfig.
func LoadPost(cfgFile string, flags *pflag.FlagSet) (PostConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return PostConfig{}, err
	}

	return PostConfig{
		APIBaseURL: v.GetString("api-url"),
		Wallet:     v.GetString("wallet"),
		TxHash:     v.GetString("tx-hash"),
		Content:    v.GetString("content"),
		Timeout:    v.GetDuration("timeout"),
		RPS:        v.GetFloat64("rps"),
		LogLevel:   v.GetString("log-level"),
	}, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("TRADEFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("rps", 5.0)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
