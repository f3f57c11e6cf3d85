package config

import (
	"time"

	"github.com/spf13/pflag"
)

// TipConfig holds configuration for the tip command.
type TipConfig struct {
	APIBaseURL string
	RPCURL     string
	Token      string
	PrivateKey string
	PostID     int64
	Recipient  string
	Amount     string
	Timeout    time.Duration
	LogLevel   string
	RPS        float64
}

// LoadTip merges config file, environment variables, and flags into TipConfig.
func LoadTip(cfgFile string, flags *pflag.FlagSet) (TipConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return TipConfig{}, err
	}

	return TipConfig{
		APIBaseURL: v.GetString("api-url"),
		RPCURL:     v.GetString("rpc"),
		Token:      v.GetString("token"),
		PrivateKey: v.GetString("private-key"),
		PostID:     v.GetInt64("post-id"),
		Recipient:  v.GetString("recipient"),
		Amount:     v.GetString("amount"),
		Timeout:    v.GetDuration("timeout"),
		LogLevel:   v.GetString("log-level"),
		RPS:        v.GetFloat64("rps"),
	}, nil
}
