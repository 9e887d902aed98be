// Package config loads the ambient knobs a StreamDecoder embedder needs that spec.md leaves
// unspecified: listen address, initial receive-buffer size, and log level/format.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sumika-fab/secscore/logger"
)

// DefaultInitialBufferBytes is used when a config file omits initial_buffer_bytes. spec.md §6
// recommends an initial size of at least 4096 bytes.
const DefaultInitialBufferBytes = 4096

// Config holds the settings needed to stand up a StreamDecoder-backed listener.
type Config struct {
	ListenAddress      string
	InitialBufferBytes int
	LogLevel           logger.LogLevel
	LogDevelopment     bool
}

// Default returns a Config with conservative defaults: listen on :5000, a 4096-byte initial
// receive buffer, and info-level JSON logging.
func Default() Config {
	return Config{
		ListenAddress:      ":5000",
		InitialBufferBytes: DefaultInitialBufferBytes,
		LogLevel:           logger.InfoLevel,
		LogDevelopment:     false,
	}
}

type fileConfig struct {
	ListenAddress      string `toml:"listen_address"`
	InitialBufferBytes int    `toml:"initial_buffer_bytes"`
	LogLevel           string `toml:"log_level"`
	LogDevelopment     bool   `toml:"log_development"`
}

// Load reads a Config from a TOML file at path, starting from Default() and overriding only the
// fields the file actually sets.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load decoder config: %w", err)
	}

	if meta.IsDefined("listen_address") {
		addr := strings.TrimSpace(raw.ListenAddress)
		if addr == "" {
			return Config{}, fmt.Errorf("load decoder config: listen_address must not be empty")
		}
		cfg.ListenAddress = addr
	}

	if meta.IsDefined("initial_buffer_bytes") {
		if raw.InitialBufferBytes <= 0 {
			return Config{}, fmt.Errorf("load decoder config: initial_buffer_bytes must be positive, got %d", raw.InitialBufferBytes)
		}
		cfg.InitialBufferBytes = raw.InitialBufferBytes
	}

	if meta.IsDefined("log_level") {
		level, err := parseLogLevel(raw.LogLevel)
		if err != nil {
			return Config{}, fmt.Errorf("load decoder config: %w", err)
		}
		cfg.LogLevel = level
	}

	if meta.IsDefined("log_development") {
		cfg.LogDevelopment = raw.LogDevelopment
	}

	return cfg, nil
}

func parseLogLevel(s string) (logger.LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return logger.DebugLevel, nil
	case "info":
		return logger.InfoLevel, nil
	case "warn", "warning":
		return logger.WarnLevel, nil
	case "error":
		return logger.ErrorLevel, nil
	case "fatal":
		return logger.FatalLevel, nil
	default:
		return 0, fmt.Errorf("unrecognized log_level %q", s)
	}
}
