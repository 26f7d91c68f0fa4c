package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadFile loads engine configuration from a .conf file.
// Format: key = value (one per line, # for comments)
func LoadFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	defer file.Close()

	values := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: invalid format (expected key = value)", lineNum)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present
		if len(value) >= 2 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		values[key] = value
	}

	return values, scanner.Err()
}

// ApplyFileConfig applies file configuration to a Config struct.
func ApplyFileConfig(cfg *Config, values map[string]string) error {
	for key, value := range values {
		if err := setConfigValue(cfg, key, value); err != nil {
			return fmt.Errorf("config key %q: %w", key, err)
		}
	}
	return nil
}

// setConfigValue sets an engine config value by key.
func setConfigValue(cfg *Config, key, value string) error {
	switch key {
	// Core
	case "network":
		cfg.Network = NetworkType(value)
	case "datadir":
		cfg.DataDir = value

	// Registry deployment
	case "registry.category":
		cfg.Registry.CategoryHex = value
	case "registry.tld":
		cfg.Registry.TLD = value
	case "registry.minstartingbid":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Registry.MinStartingBid = n
	case "registry.minbidincrease":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Registry.MinBidIncreasePct = n
	case "registry.expiry":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Registry.InactivityExpiry = n
	case "registry.minwait":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Registry.MinWaitBlocks = n
	case "registry.maxplatformfee":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Registry.MaxPlatformFeePct = n
	case "registry.incentiveaddr":
		cfg.Registry.CreatorIncentiveAddr = value
	case "registry.feecollector":
		cfg.Registry.FeeCollectorAddr = value
	case "registry.feerate":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		cfg.Registry.FeeRate = n

	// Ledger transport
	case "ledger.url":
		cfg.Ledger.URL = value
	case "ledger.timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Ledger.TimeoutSeconds = n

	// Indexer
	case "indexer.url":
		cfg.Indexer.URL = value
	case "indexer.timeout":
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		cfg.Indexer.TimeoutSeconds = n

	// Cache
	case "cache.enabled", "cache":
		cfg.Cache.Enabled = parseBool(value)
	case "cache.dir":
		cfg.Cache.Dir = value

	// Logging
	case "log.level":
		cfg.Log.Level = value
	case "log.json":
		cfg.Log.JSON = parseBool(value)
	case "log.file":
		cfg.Log.File = value

	default:
		return fmt.Errorf("unknown key")
	}
	return nil
}

// parseBool parses a boolean config value (true/false, 1/0, yes/no, on/off).
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
