package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danmuck/dtproto/internal/config"
	"github.com/danmuck/dtproto/internal/prompt"
	"github.com/danmuck/dtproto/internal/protocol"
)

const portsQuestion = "Please input three 'different' port numbers separated by whitespaces\n" +
	"First for English, Second for Te Reo Maori, and third for German: "

// resolveConfig layers flags over an optional TOML file and falls back to
// prompting when no port is set. Validation runs once, on the merged result.
func resolveConfig(args []string, stdin io.Reader, stdout io.Writer) (config.ServerConfig, error) {
	fs := flag.NewFlagSet("dtserver", flag.ContinueOnError)
	fs.SetOutput(stdout)
	path := fs.String("config", "", "server config TOML")
	eng := fs.Int("eng", 0, "English port")
	mao := fs.Int("mao", 0, "Te Reo Māori port")
	ger := fs.Int("ger", 0, "German port")
	host := fs.String("host", config.DefaultBindHost, "IPv4 address to bind")
	adminAddr := fs.String("admin", "", "admin HTTP listen address (disabled when empty)")
	if err := fs.Parse(args); err != nil {
		return config.ServerConfig{}, err
	}
	if fs.NArg() != 0 {
		return config.ServerConfig{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := config.DefaultServerConfig()
	if *path != "" {
		loaded, err := config.DecodeServerConfig(*path)
		if err != nil {
			return config.ServerConfig{}, err
		}
		cfg = loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "eng":
			cfg.EngPort = *eng
		case "mao":
			cfg.MaoPort = *mao
		case "ger":
			cfg.GerPort = *ger
		case "host":
			cfg.BindHost = *host
		case "admin":
			cfg.AdminAddr = *adminAddr
		}
	})

	switch missing := cfg.MissingPorts(); len(missing) {
	case 0:
	case len(protocol.Languages):
		ports, err := askPorts(prompt.New(stdin, stdout))
		if err != nil {
			return config.ServerConfig{}, err
		}
		cfg.EngPort, cfg.MaoPort, cfg.GerPort = ports[0], ports[1], ports[2]
	default:
		return config.ServerConfig{}, fmt.Errorf("%w: set %s too, or none to be prompted", config.ErrMissingPort, strings.Join(missing, ", "))
	}

	if err := config.ValidateServerConfig(cfg); err != nil {
		return config.ServerConfig{}, err
	}
	return cfg, nil
}

func askPorts(p *prompt.Prompter) ([3]int, error) {
	var ports [3]int
	fields, err := p.Fields(portsQuestion, len(ports))
	if err != nil {
		return ports, err
	}
	for i, raw := range fields {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return ports, fmt.Errorf("%w: %q is not a port number", prompt.ErrBadInput, raw)
		}
		ports[i] = v
	}
	return ports, nil
}
