package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/dtproto/internal/protocol"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultServerName = "dtserver"
	DefaultBindHost   = "0.0.0.0"
)

type ServerConfig struct {
	Name        string   `toml:"name"`
	BindHost    string   `toml:"bind_host"`
	EngPort     int      `toml:"eng_port"`
	MaoPort     int      `toml:"mao_port"`
	GerPort     int      `toml:"ger_port"`
	AdminAddr   string   `toml:"admin_addr"`
	CorsOrigins []string `toml:"cors_origins"`
}

// PortFor returns the port bound to lang.
func (c ServerConfig) PortFor(lang protocol.Language) int {
	switch lang {
	case protocol.LanguageEnglish:
		return c.EngPort
	case protocol.LanguageMaori:
		return c.MaoPort
	case protocol.LanguageGerman:
		return c.GerPort
	default:
		return 0
	}
}

// MissingPorts lists the tags of languages whose port is unset.
func (c ServerConfig) MissingPorts() []string {
	var missing []string
	for _, lang := range protocol.Languages {
		if c.PortFor(lang) == 0 {
			missing = append(missing, lang.Tag())
		}
	}
	return missing
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Name:     DefaultServerName,
		BindHost: DefaultBindHost,
	}
}

// DecodeServerConfig reads path and fills name and bind_host defaults.
// Ports are left as decoded so callers can layer flags or a prompt on top.
func DecodeServerConfig(path string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := loadToml(path, &cfg); err != nil {
		return ServerConfig{}, err
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = DefaultServerName
	}
	if strings.TrimSpace(cfg.BindHost) == "" {
		cfg.BindHost = DefaultBindHost
	}
	return cfg, nil
}

func LoadServerConfig(path string) (ServerConfig, error) {
	cfg, err := DecodeServerConfig(path)
	if err != nil {
		return ServerConfig{}, err
	}
	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.BindHost) == "" {
		return fmt.Errorf("server config missing bind_host")
	}
	if err := ValidateServerPorts(cfg.EngPort, cfg.MaoPort, cfg.GerPort); err != nil {
		return fmt.Errorf("server config: %w", err)
	}
	return nil
}
