package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/dtproto/internal/config"
	"github.com/danmuck/dtproto/internal/observability"
	"github.com/rs/zerolog/log"
)

func defaultPath(kind string) (string, error) {
	switch kind {
	case "server":
		return "cmd/dtserver/config.toml", nil
	case "client":
		return "cmd/dtclient/config.toml", nil
	default:
		return "", fmt.Errorf("unknown kind: %s", kind)
	}
}

func validate(kind, path string) error {
	switch kind {
	case "server":
		_, err := config.LoadServerConfig(path)
		return err
	case "client":
		_, err := config.LoadClientConfig(path)
		return err
	default:
		return fmt.Errorf("unknown kind: %s", kind)
	}
}

func main() {
	observability.InitLogger("configgen")

	kind := flag.String("kind", "server", "config kind: server|client")
	output := flag.String("output", "", "output path for config template")
	check := flag.Bool("validate", false, "validate an existing config file")
	input := flag.String("input", "", "config path for validation (defaults to per-kind cmd path)")
	force := flag.Bool("force", false, "overwrite existing config file")
	flag.Parse()

	if *check {
		path := *input
		if path == "" {
			p, err := defaultPath(*kind)
			if err != nil {
				log.Fatal().Err(err).Msg("validate")
			}
			path = p
		}
		if err := validate(*kind, path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("config invalid")
			os.Exit(1)
		}
		log.Info().Str("kind", *kind).Str("path", path).Msg("config valid")
		return
	}

	target := *output
	if target == "" {
		p, err := defaultPath(*kind)
		if err != nil {
			log.Fatal().Err(err).Msg("write template")
		}
		target = p
	}
	if err := config.WriteTemplate(target, *kind, *force); err != nil {
		log.Fatal().Err(err).Msg("write template")
	}
	log.Info().Str("kind", *kind).Str("path", target).Msg("wrote config template")
}
