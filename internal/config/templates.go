package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "server":
		return serverTemplate, nil
	case "client":
		return clientTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const serverTemplate = `name = "dtserver"
bind_host = "0.0.0.0"
eng_port = 5000
mao_port = 5001
ger_port = 5002

# optional HTTP admin surface (health, readiness, prometheus metrics)
admin_addr = "127.0.0.1:9400"
cors_origins = ["http://localhost:3000"]
`

const clientTemplate = `kind = "date"
host = "127.0.0.1"
port = 5000
timeout = "1s"
`
