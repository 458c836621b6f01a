package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/dtproto/internal/config"
	"github.com/danmuck/dtproto/internal/prompt"
)

func TestResolveConfigFromFlags(t *testing.T) {
	cfg, err := resolveConfig([]string{"-eng", "5000", "-mao", "5001", "-ger", "5002"}, strings.NewReader(""), io.Discard)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.EngPort != 5000 || cfg.MaoPort != 5001 || cfg.GerPort != 5002 {
		t.Fatalf("unexpected ports: %+v", cfg)
	}
	if cfg.BindHost != config.DefaultBindHost || cfg.AdminAddr != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestResolveConfigFileWithFlagOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	content := `
name = "dt-lab"
eng_port = 6000
mao_port = 6001
ger_port = 6002
admin_addr = "127.0.0.1:9400"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := resolveConfig([]string{"-config", path, "-ger", "6010"}, strings.NewReader(""), io.Discard)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.Name != "dt-lab" || cfg.EngPort != 6000 || cfg.GerPort != 6010 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.AdminAddr != "127.0.0.1:9400" {
		t.Fatalf("unexpected admin addr: %q", cfg.AdminAddr)
	}
}

func TestResolveConfigPortlessFileWithPortFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := os.WriteFile(path, []byte("admin_addr = \"127.0.0.1:9400\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := resolveConfig([]string{"-config", path, "-eng", "5000", "-mao", "5001", "-ger", "5002"}, strings.NewReader(""), io.Discard)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.EngPort != 5000 || cfg.MaoPort != 5001 || cfg.GerPort != 5002 {
		t.Fatalf("unexpected ports: %+v", cfg)
	}
	if cfg.AdminAddr != "127.0.0.1:9400" || cfg.Name != config.DefaultServerName {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestResolveConfigPortlessFilePrompts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := os.WriteFile(path, []byte("admin_addr = \"127.0.0.1:9400\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := resolveConfig([]string{"-config", path}, strings.NewReader("7000 7001 7002\n"), io.Discard)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.EngPort != 7000 || cfg.MaoPort != 7001 || cfg.GerPort != 7002 {
		t.Fatalf("unexpected ports: %+v", cfg)
	}
}

func TestResolveConfigPartialPortsNamesMissing(t *testing.T) {
	_, err := resolveConfig([]string{"-eng", "5000"}, strings.NewReader("7000 7001 7002\n"), io.Discard)
	if !errors.Is(err, config.ErrMissingPort) {
		t.Fatalf("expected ErrMissingPort, got %v", err)
	}
	if !strings.Contains(err.Error(), "mao, ger") {
		t.Fatalf("expected missing languages in error, got %v", err)
	}
}

func TestResolveConfigPromptsForPorts(t *testing.T) {
	cfg, err := resolveConfig(nil, strings.NewReader("7000 7001 7002\n"), io.Discard)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.EngPort != 7000 || cfg.MaoPort != 7001 || cfg.GerPort != 7002 {
		t.Fatalf("unexpected ports: %+v", cfg)
	}
}

func TestResolveConfigRejectsBadInput(t *testing.T) {
	if _, err := resolveConfig(nil, strings.NewReader("7000 seven 7002\n"), io.Discard); !errors.Is(err, prompt.ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
	if _, err := resolveConfig(nil, strings.NewReader("7000 7000 7002\n"), io.Discard); !errors.Is(err, config.ErrDuplicatePort) {
		t.Fatalf("expected ErrDuplicatePort, got %v", err)
	}
	if _, err := resolveConfig([]string{"-eng", "80", "-mao", "7001", "-ger", "7002"}, strings.NewReader(""), io.Discard); !errors.Is(err, config.ErrInvalidPort) {
		t.Fatalf("expected ErrInvalidPort, got %v", err)
	}
}
