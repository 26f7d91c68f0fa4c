// Package config handles engine configuration.
//
// Configuration is split into two categories:
//   - Protocol constants: fixed by the deployed covenant contracts, compiled in
//   - Engine settings: per-deployment runtime configuration
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nomen-protocol/nomen-go/pkg/types"
)

// NetworkType identifies mainnet or testnet.
type NetworkType string

const (
	Mainnet NetworkType = "mainnet"
	Testnet NetworkType = "testnet"
)

// ErrMissingConfig is returned when a required configuration value is absent
// for the operation being performed.
var ErrMissingConfig = errors.New("missing required configuration")

// =============================================================================
// Protocol constants (must mirror covenant-enforced limits)
// =============================================================================

const (
	// MaxTxInputs and MaxTxOutputs bound template size.
	MaxTxInputs  = 128
	MaxTxOutputs = 256

	// MaxScriptData bounds locking-script payloads, including record carriers.
	MaxScriptData = 10_000

	// MaxTokenAmount is the largest fungible amount a single output may carry.
	// The registration counter is minted at exactly this amount.
	MaxTokenAmount = 1<<63 - 1

	// DustLimit is the minimum satoshi value for a spendable non-data output.
	DustLimit = 546
)

// =============================================================================
// Engine configuration (per-deployment settings)
// =============================================================================

// Config holds engine runtime configuration.
type Config struct {
	// Core
	Network NetworkType `conf:"network"`
	DataDir string      `conf:"datadir"`

	// Protocol deployment parameters.
	Registry RegistryConfig

	// Ledger query transport.
	Ledger LedgerConfig

	// Optional external token-state indexer.
	Indexer IndexerConfig

	// Immutable-data cache.
	Cache CacheConfig

	// Logging
	Log LogConfig
}

// RegistryConfig identifies a protocol deployment and its pricing rules.
// These values are fixed when the covenant set is deployed; the engine only
// mirrors them.
type RegistryConfig struct {
	CategoryHex          string `conf:"registry.category"`       // 64-char hex token category
	TLD                  string `conf:"registry.tld"`            // e.g. ".nom"
	MinStartingBid       uint64 `conf:"registry.minstartingbid"` // base units
	MinBidIncreasePct    uint64 `conf:"registry.minbidincrease"` // percent
	InactivityExpiry     uint64 `conf:"registry.expiry"`         // blocks
	MinWaitBlocks        uint64 `conf:"registry.minwait"`        // blocks before claim
	MaxPlatformFeePct    uint64 `conf:"registry.maxplatformfee"` // percent
	CreatorIncentiveAddr string `conf:"registry.incentiveaddr"`  // bech32, optional
	FeeCollectorAddr     string `conf:"registry.feecollector"`   // bech32, optional
	FeeRate              uint64 `conf:"registry.feerate"`        // base units per byte
}

// Category parses the configured category hex. Call Validate first.
func (rc RegistryConfig) Category() (types.Category, error) {
	return types.HexToCategory(rc.CategoryHex)
}

// CreatorIncentive parses the creator incentive address.
// Returns ErrMissingConfig if unset.
func (rc RegistryConfig) CreatorIncentive() (types.Address, error) {
	if rc.CreatorIncentiveAddr == "" {
		return types.Address{}, errMissing("registry.incentiveaddr")
	}
	return types.ParseAddress(rc.CreatorIncentiveAddr)
}

// FeeCollector parses the fee collector address.
// Returns ErrMissingConfig if unset.
func (rc RegistryConfig) FeeCollector() (types.Address, error) {
	if rc.FeeCollectorAddr == "" {
		return types.Address{}, errMissing("registry.feecollector")
	}
	return types.ParseAddress(rc.FeeCollectorAddr)
}

// LedgerConfig holds query-transport settings.
type LedgerConfig struct {
	URL            string `conf:"ledger.url"`
	TimeoutSeconds int    `conf:"ledger.timeout"`
}

// IndexerConfig holds optional external indexer settings.
// An empty URL disables the indexer; resolution falls back to history scans.
type IndexerConfig struct {
	URL            string `conf:"indexer.url"`
	TimeoutSeconds int    `conf:"indexer.timeout"`
}

// CacheConfig holds immutable-data cache settings.
type CacheConfig struct {
	Enabled bool   `conf:"cache.enabled"`
	Dir     string `conf:"cache.dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `conf:"log.level"`
	JSON  bool   `conf:"log.json"`
	File  string `conf:"log.file"`
}

// DefaultDataDir returns the platform-specific default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nomen"
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Nomen")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Nomen")
	default:
		return filepath.Join(home, ".nomen")
	}
}
