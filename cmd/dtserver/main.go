package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/dtproto/internal/admin"
	"github.com/danmuck/dtproto/internal/observability"
	"github.com/danmuck/dtproto/internal/transport"
	"github.com/rs/zerolog/log"
)

func main() {
	observability.InitLogger("dtserver")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// run serves until ctx ends or a socket fails, then waits for the admin
// listener to finish its shutdown.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	cfg, err := resolveConfig(args, stdin, stdout)
	if err != nil {
		return err
	}
	log.Info().
		Int("eng", cfg.EngPort).
		Int("mao", cfg.MaoPort).
		Int("ger", cfg.GerPort).
		Msg("port numbers check passed")

	ctx, stop := context.WithCancel(ctx)
	defer stop()

	observability.RegisterMetrics()
	srv := transport.NewServer(cfg.BindHost, cfg.EngPort, cfg.MaoPort, cfg.GerPort)
	if err := srv.Bind(); err != nil {
		return err
	}

	adminErr := make(chan error, 1)
	adminDone := make(chan struct{})
	if cfg.AdminAddr != "" {
		a := admin.New(cfg.Name, cfg.CorsOrigins, srv)
		go func() {
			defer close(adminDone)
			if err := a.Serve(ctx, cfg.AdminAddr); err != nil {
				adminErr <- err
				stop()
			}
		}()
	} else {
		close(adminDone)
	}

	log.Info().Str("name", cfg.Name).Msg("server started")
	serveErr := srv.Serve(ctx)
	// Serve may return on a socket failure with ctx still live.
	stop()
	<-adminDone
	if serveErr != nil {
		return serveErr
	}
	select {
	case err := <-adminErr:
		return err
	default:
		return nil
	}
}
