package transport

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/danmuck/dtproto/internal/protocol"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds the wait for the single response datagram.
const DefaultTimeout = time.Second

// Client performs one request/response exchange per Request call.
type Client struct {
	Addr    *net.UDPAddr
	Timeout time.Duration
}

// Reply is a validated response and its text payload.
type Reply struct {
	Response protocol.Response
	Text     string
}

func NewClient(addr *net.UDPAddr) *Client {
	return &Client{Addr: addr, Timeout: DefaultTimeout}
}

// Request sends one kind request and waits for one response. There is no
// retry: any failure is returned to the caller. An expired context deadline
// is reported as ErrTimeout, a cancelled context as context.Canceled.
func (c *Client) Request(ctx context.Context, kind protocol.RequestType) (Reply, error) {
	if c.Addr == nil {
		return Reply{}, &TransportError{Op: "send", Err: errors.New("no server address")}
	}
	target := c.Addr.String()

	// Unconnected so an ICMP unreachable surfaces as a timeout, not a read error.
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return Reply{}, &TransportError{Op: "open", Err: err}
	}
	defer conn.Close()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return Reply{}, &TransportError{Op: "deadline", Err: err}
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	log.Debug().Str("server", target).Str("kind", kind.String()).Msg("sending request")
	if _, err := conn.WriteToUDP(protocol.EncodeRequest(kind), c.Addr); err != nil {
		return Reply{}, &TransportError{Op: "send", Addr: target, Err: err}
	}

	buf := make([]byte, protocol.MaxDatagramSize)
	n, from, err := conn.ReadFromUDP(buf)
	if err != nil {
		// The context deadline and the read deadline race; both are a timeout.
		ctxErr := ctx.Err()
		if ctxErr != nil && !errors.Is(ctxErr, context.DeadlineExceeded) {
			return Reply{}, ctxErr
		}
		var ne net.Error
		if ctxErr != nil || errors.As(err, &ne) && ne.Timeout() {
			return Reply{}, ErrTimeout
		}
		return Reply{}, &TransportError{Op: "receive", Addr: target, Err: err}
	}
	log.Debug().Str("from", from.String()).Int("bytes", n).Msg("response received")

	packet := buf[:n]
	payload, err := protocol.ValidateResponse(packet)
	if err != nil {
		return Reply{}, err
	}
	resp, err := protocol.DecodeResponse(packet)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Response: resp, Text: string(payload)}, nil
}
