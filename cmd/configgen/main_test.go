package main

import (
	"path/filepath"
	"testing"

	"github.com/danmuck/dtproto/internal/config"
)

func TestDefaultPathAndValidate(t *testing.T) {
	if _, err := defaultPath("relay"); err == nil {
		t.Fatalf("expected unknown kind error")
	}
	dir := t.TempDir()
	for _, kind := range []string{"server", "client"} {
		if _, err := defaultPath(kind); err != nil {
			t.Fatalf("default path for %s: %v", kind, err)
		}
		path := filepath.Join(dir, kind+".toml")
		if err := config.WriteTemplate(path, kind, false); err != nil {
			t.Fatalf("write %s template: %v", kind, err)
		}
		if err := validate(kind, path); err != nil {
			t.Fatalf("validate %s template: %v", kind, err)
		}
	}
	if err := validate("client", filepath.Join(dir, "server.toml")); err == nil {
		t.Fatalf("expected server template to fail client validation")
	}
}
