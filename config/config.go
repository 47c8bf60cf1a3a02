// Package config loads batch/CLI defaults from a TOML file, the same
// toml.Decode(string(blob), &v)-into-struct-tags style the reference
// package-build tool uses for its own definition file.
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables a batch run or the CLI can load from disk
// instead of (or alongside) flags.
type Config struct {
	Batch struct {
		Workers       int    `toml:"workers"`
		TimeoutSecs   int    `toml:"timeout_seconds"`
		MaxFileSizeMB int    `toml:"max_file_size_mb"`
		OutputFormat  string `toml:"output_format"`
	} `toml:"batch"`

	Export struct {
		OutputDir  string            `toml:"output_dir"`
		Categories map[string]string `toml:"categories"`
	} `toml:"export"`
}

// Timeout returns the configured per-file timeout as a time.Duration,
// falling back to 0 (caller applies its own default) when unset.
func (c Config) Timeout() time.Duration {
	if c.Batch.TimeoutSecs <= 0 {
		return 0
	}
	return time.Duration(c.Batch.TimeoutSecs) * time.Second
}

// MaxFileSize returns the configured size ceiling in bytes, or 0
// (unbounded) when unset.
func (c Config) MaxFileSize() int64 {
	if c.Batch.MaxFileSizeMB <= 0 {
		return 0
	}
	return int64(c.Batch.MaxFileSizeMB) << 20
}

// Load parses a TOML config file from r.
func Load(r io.Reader) (Config, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if _, err := toml.Decode(string(blob), &c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// LoadFile opens path and parses it as TOML.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
