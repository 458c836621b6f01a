package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultClientTimeout is how long the client waits for its one response.
const DefaultClientTimeout = time.Second

// ClientConfig holds client defaults; command-line values override it.
type ClientConfig struct {
	Kind    string
	Host    string
	Port    string
	Timeout time.Duration
}

type clientFile struct {
	Kind      string `toml:"kind"`
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	Timeout   string `toml:"timeout"`
	TimeoutMS int64  `toml:"timeout_ms"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{Timeout: DefaultClientTimeout}
}

// LoadClientConfig overlays the keys defined in path onto DefaultClientConfig.
func LoadClientConfig(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	var raw clientFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return ClientConfig{}, fmt.Errorf("load client config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("kind") {
		cfg.Kind = strings.TrimSpace(raw.Kind)
	}
	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("port") {
		cfg.Port = fmt.Sprintf("%d", raw.Port)
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return ClientConfig{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if meta.IsDefined("timeout_ms") {
		cfg.Timeout = time.Duration(raw.TimeoutMS) * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		return ClientConfig{}, fmt.Errorf("client config: timeout must be positive, got %v", cfg.Timeout)
	}
	return cfg, nil
}
