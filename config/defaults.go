package config

// DefaultMainnet returns the default engine configuration for mainnet.
// The registry category has no meaningful default: it identifies the deployed
// covenant set and must be supplied per deployment.
func DefaultMainnet() *Config {
	return &Config{
		Network: Mainnet,
		DataDir: DefaultDataDir(),
		Registry: RegistryConfig{
			TLD:               ".nom",
			MinStartingBid:    10_000,
			MinBidIncreasePct: 5,
			InactivityExpiry:  52_560, // ~1 year of blocks
			MinWaitBlocks:     4_320,  // ~1 month of blocks
			MaxPlatformFeePct: 50,
			FeeRate:           1,
		},
		Ledger: LedgerConfig{
			URL:            "http://127.0.0.1:8545",
			TimeoutSeconds: 10,
		},
		Indexer: IndexerConfig{
			TimeoutSeconds: 10,
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
			JSON:  false,
		},
	}
}

// DefaultTestnet returns the default engine configuration for testnet.
func DefaultTestnet() *Config {
	cfg := DefaultMainnet()
	cfg.Network = Testnet
	cfg.Registry.TLD = ".tnom"
	cfg.Ledger.URL = "http://127.0.0.1:8645"
	return cfg
}

// Default returns the default configuration for the given network.
func Default(network NetworkType) *Config {
	switch network {
	case Testnet:
		return DefaultTestnet()
	default:
		return DefaultMainnet()
	}
}
