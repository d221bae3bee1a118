// Package config loads the static JSON configuration handed to the
// engine at startup: the set of symbols with their initial depth, and
// the synthetic generator's policy knobs. Loading is not itself a
// tested-correctness concern (the RPC/CLI/config layer is out of
// scope for the matching engine's invariants) but every service in
// this corpus ships a config loader, so this one is real.
package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// PriceLevel is one (price, qty) pair of seed depth.
type PriceLevel struct {
	Price    float64 `mapstructure:"price"`
	Quantity uint32  `mapstructure:"quantity"`
}

// InitialDepth is the seed book for one symbol: a list of bids and
// asks, each admitted as an ordinary LIMIT order at load time.
type InitialDepth struct {
	Bids []PriceLevel `mapstructure:"bids"`
	Asks []PriceLevel `mapstructure:"asks"`
}

// SymbolConfig is one symbol's registration and seed depth.
type SymbolConfig struct {
	Symbol       string       `mapstructure:"symbol"`
	InitialDepth InitialDepth `mapstructure:"initialDepth"`
}

// SimulationConfig is the synthetic order generator's policy.
type SimulationConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	IntervalMs    int     `mapstructure:"intervalMs"`
	MinOrderSize  uint32  `mapstructure:"minOrderSize"`
	MaxOrderSize  uint32  `mapstructure:"maxOrderSize"`
	PriceVariance float64 `mapstructure:"priceVariance"`
}

// Config is the top-level configuration document.
type Config struct {
	Symbols    []SymbolConfig   `mapstructure:"symbols"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// defaults mirror the reference loader's fallback values so a config
// that omits the "simulation" block still produces a sane generator.
func defaults(v *viper.Viper) {
	v.SetDefault("simulation.enabled", true)
	v.SetDefault("simulation.intervalMs", 1000)
	v.SetDefault("simulation.minOrderSize", 10)
	v.SetDefault("simulation.maxOrderSize", 100)
	v.SetDefault("simulation.priceVariance", 0.5)
}

// Load reads a JSON configuration document from path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	defaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return unmarshal(v)
}

// LoadBytes reads a JSON configuration document from raw bytes, used by
// tests and embedded defaults.
func LoadBytes(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	defaults(v)

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("config: reading bytes: %w", err)
	}
	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("config: no symbols configured")
	}
	return &cfg, nil
}
