// Package config loads the wireplayer TOML configuration file, with a
// default overlay so that a config file only needs to mention what it
// wants to override.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the fully resolved runtime configuration.
type Config struct {
	Wire WireConfig
	Log  LogConfig
}

type WireConfig struct {
	Endianness          string
	ListenAddr          string
	AdminListenAddr     string
	CompanionServerPath string
}

type LogConfig struct {
	Level     string
	Timestamp bool
}

// DefaultConfig returns the configuration used when a config file is
// absent or leaves a field unset.
func DefaultConfig() Config {
	return Config{
		Wire: WireConfig{
			Endianness:      "big",
			ListenAddr:      ":9500",
			AdminListenAddr: ":9501",
		},
		Log: LogConfig{
			Level:     "info",
			Timestamp: true,
		},
	}
}

// fileConfig mirrors the on-disk TOML shape. Its fields are plain
// values, not pointers; meta.IsDefined on the decode result is what
// tells Load apart an explicit zero value from an absent key.
type fileConfig struct {
	Wire struct {
		Endianness          string `toml:"endianness"`
		ListenAddr          string `toml:"listen_addr"`
		AdminListenAddr     string `toml:"admin_listen_addr"`
		CompanionServerPath string `toml:"companion_server_path"`
	} `toml:"wire"`
	Log struct {
		Level     string `toml:"level"`
		Timestamp bool   `toml:"timestamp"`
	} `toml:"log"`
}

// Load reads path and overlays it onto DefaultConfig. A key absent from
// the file leaves the default in place; a key present with an empty or
// zero value still overrides, matching meta.IsDefined semantics.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("wire", "endianness") {
		cfg.Wire.Endianness = strings.TrimSpace(raw.Wire.Endianness)
	}
	if meta.IsDefined("wire", "listen_addr") {
		cfg.Wire.ListenAddr = strings.TrimSpace(raw.Wire.ListenAddr)
	}
	if meta.IsDefined("wire", "admin_listen_addr") {
		cfg.Wire.AdminListenAddr = strings.TrimSpace(raw.Wire.AdminListenAddr)
	}
	if meta.IsDefined("wire", "companion_server_path") {
		cfg.Wire.CompanionServerPath = strings.TrimSpace(raw.Wire.CompanionServerPath)
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Wire.Endianness)) {
	case "big", "little":
	default:
		return fmt.Errorf("config: wire.endianness must be \"big\" or \"little\", got %q", cfg.Wire.Endianness)
	}
	if strings.TrimSpace(cfg.Wire.ListenAddr) == "" {
		return fmt.Errorf("config: wire.listen_addr is required")
	}
	return nil
}
