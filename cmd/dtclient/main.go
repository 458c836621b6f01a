package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/dtproto/internal/config"
	"github.com/danmuck/dtproto/internal/observability"
	"github.com/danmuck/dtproto/internal/prompt"
	"github.com/danmuck/dtproto/internal/protocol"
	"github.com/danmuck/dtproto/internal/transport"
	"github.com/rs/zerolog/log"
)

const requestQuestion = "Please enter the request (date or time), the IP Address of the server, and the port number: "

func main() {
	observability.InitLogger("dtclient")
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("closing the client")
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("dtclient", flag.ContinueOnError)
	fs.SetOutput(stdout)
	path := fs.String("config", "", "client config TOML (kind, host, port, timeout)")
	timeout := fs.Duration("timeout", 0, "response timeout (default 1s)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.DefaultClientConfig()
	if *path != "" {
		loaded, err := config.LoadClientConfig(*path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 3:
		cfg.Kind, cfg.Host, cfg.Port = rest[0], rest[1], rest[2]
	default:
		return errors.New("usage: dtclient [flags] <date|time> <host> <port>")
	}
	if cfg.Kind == "" || cfg.Host == "" || cfg.Port == "" {
		fields, err := prompt.New(stdin, stdout).Fields(requestQuestion, 3)
		if err != nil {
			return err
		}
		cfg.Kind, cfg.Host, cfg.Port = fields[0], fields[1], fields[2]
	}

	params, err := config.ValidateClientParams(ctx, cfg.Kind, cfg.Host, cfg.Port)
	if err != nil {
		return err
	}
	log.Info().Str("kind", params.Kind.String()).Str("server", params.Addr.String()).Msg("input check passed")

	reply, err := exchange(ctx, params, cfg.Timeout)
	if err != nil {
		return err
	}
	printHeader(stdout, reply.Response)
	fmt.Fprintf(stdout, "\n%s\n", reply.Text)
	return nil
}

func exchange(ctx context.Context, params config.ClientParams, timeout time.Duration) (transport.Reply, error) {
	client := transport.NewClient(params.Addr)
	client.Timeout = timeout
	reply, err := client.Request(ctx, params.Kind)
	log.Info().
		Str("kind", params.Kind.String()).
		Str("server", params.Addr.String()).
		Str("outcome", outcome(err)).
		Msg("exchange finished")
	return reply, err
}

func outcome(err error) string {
	var verr *protocol.ValidationError
	var terr *transport.TransportError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, transport.ErrTimeout):
		return "timeout"
	case errors.As(err, &verr):
		return "invalid_response"
	case errors.As(err, &terr):
		return "transport_error"
	default:
		return "error"
	}
}
