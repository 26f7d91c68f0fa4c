package config

import (
	"fmt"
	"strings"

	"github.com/nomen-protocol/nomen-go/pkg/types"
)

func errMissing(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingConfig, key)
}

// Validate checks the configuration for consistency. Optional values
// (incentive address, fee collector, indexer URL) are only checked when set;
// their absence is reported by the operation that needs them.
func (cfg *Config) Validate() error {
	switch cfg.Network {
	case Mainnet, Testnet:
	default:
		return fmt.Errorf("invalid network %q", cfg.Network)
	}

	if cfg.Registry.CategoryHex == "" {
		return errMissing("registry.category")
	}
	if _, err := cfg.Registry.Category(); err != nil {
		return fmt.Errorf("registry.category: %w", err)
	}

	if cfg.Registry.TLD == "" || !strings.HasPrefix(cfg.Registry.TLD, ".") {
		return fmt.Errorf("registry.tld must start with '.': %q", cfg.Registry.TLD)
	}
	if cfg.Registry.MinStartingBid == 0 {
		return fmt.Errorf("registry.minstartingbid must be positive")
	}
	if cfg.Registry.MinBidIncreasePct == 0 || cfg.Registry.MinBidIncreasePct > 100 {
		return fmt.Errorf("registry.minbidincrease must be in 1..100, got %d", cfg.Registry.MinBidIncreasePct)
	}
	if cfg.Registry.MaxPlatformFeePct > 100 {
		return fmt.Errorf("registry.maxplatformfee must be at most 100, got %d", cfg.Registry.MaxPlatformFeePct)
	}
	if cfg.Registry.FeeRate == 0 {
		return fmt.Errorf("registry.feerate must be positive")
	}

	if cfg.Registry.CreatorIncentiveAddr != "" {
		if _, err := types.ParseAddress(cfg.Registry.CreatorIncentiveAddr); err != nil {
			return fmt.Errorf("registry.incentiveaddr: %w", err)
		}
	}
	if cfg.Registry.FeeCollectorAddr != "" {
		if _, err := types.ParseAddress(cfg.Registry.FeeCollectorAddr); err != nil {
			return fmt.Errorf("registry.feecollector: %w", err)
		}
	}

	if cfg.Ledger.URL == "" {
		return errMissing("ledger.url")
	}
	if cfg.Cache.Enabled && cfg.Cache.Dir == "" && cfg.DataDir == "" {
		return fmt.Errorf("cache.dir or datadir required when cache is enabled")
	}

	return nil
}
