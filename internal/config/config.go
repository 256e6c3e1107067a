package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// TokenConfig describes a token given on the command line instead of read
// from chain.
type TokenConfig struct {
	Address  string
	Symbol   string
	Decimals int
}

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	ChainID      uint64
	Pool         string
	Factory      string
	Base         TokenConfig
	Quote        TokenConfig
	Fee          uint32
	Direction    string
	Out          string
	PGDSN        string
	MaxRetries   int
	RetryBackoff time.Duration
	LogLevel     string
}

// Load merges config file, environment variables (RANGECTL_*), and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RANGECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("fee", uint32(3000))
	v.SetDefault("direction", "token0")
	v.SetDefault("base-decimals", 18)
	v.SetDefault("quote-decimals", 18)
	v.SetDefault("out", "./data/plans.jsonl")
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 250*time.Millisecond)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       strings.TrimSpace(v.GetString("rpc")),
		ChainID:      v.GetUint64("chain-id"),
		Pool:         strings.TrimSpace(v.GetString("pool")),
		Factory:      strings.TrimSpace(v.GetString("factory")),
		Base:         tokenConfig(v, "base"),
		Quote:        tokenConfig(v, "quote"),
		Fee:          v.GetUint32("fee"),
		Direction:    v.GetString("direction"),
		Out:          v.GetString("out"),
		PGDSN:        v.GetString("pg-dsn"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		LogLevel:     v.GetString("log-level"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func tokenConfig(v *viper.Viper, prefix string) TokenConfig {
	return TokenConfig{
		Address:  strings.TrimSpace(v.GetString(prefix)),
		Symbol:   strings.TrimSpace(v.GetString(prefix + "-symbol")),
		Decimals: v.GetInt(prefix + "-decimals"),
	}
}

func (c Config) validate() error {
	for name, d := range map[string]int{"base-decimals": c.Base.Decimals, "quote-decimals": c.Quote.Decimals} {
		if d < 0 || d > 255 {
			return fmt.Errorf("%s out of range: %d", name, d)
		}
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max-retries must be non-negative: %d", c.MaxRetries)
	}
	return nil
}
