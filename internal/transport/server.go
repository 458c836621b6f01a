package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danmuck/dtproto/internal/observability"
	"github.com/danmuck/dtproto/internal/protocol"
	"github.com/danmuck/dtproto/internal/text"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

// A socket that fails this many reads in a row is treated as unusable.
const maxConsecutiveReadErrors = 8

// State is the dispatcher lifecycle position.
type State int32

const (
	StateIdle State = iota
	StateAwaitingRequest
	StateProcessing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingRequest:
		return "awaiting_request"
	case StateProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Binding ties one UDP port to one language for the socket's lifetime.
type Binding struct {
	Language protocol.Language
	Port     int
}

// Server answers date/time requests on one socket per language.
type Server struct {
	Host     string
	Bindings []Binding
	// Now supplies the wall clock; nil means time.Now.
	Now func() time.Time

	// render produces the localized text; nil means text.Render.
	render func(protocol.RequestType, protocol.Language, text.Date, text.Clock) ([]byte, bool)

	mu      sync.Mutex
	sockets []*socket
	state   atomic.Int32
	ready   atomic.Bool
}

type socket struct {
	lang protocol.Language
	conn *net.UDPConn
	port int
}

type datagram struct {
	sock *socket
	peer *net.UDPAddr
	data []byte
}

// NewServer binds English, Māori and German to eng, mao and ger on host.
func NewServer(host string, eng, mao, ger int) *Server {
	return &Server{
		Host: host,
		Bindings: []Binding{
			{Language: protocol.LanguageEnglish, Port: eng},
			{Language: protocol.LanguageMaori, Port: mao},
			{Language: protocol.LanguageGerman, Port: ger},
		},
	}
}

// Bind opens every socket in Bindings. On failure the sockets opened so far
// are closed and the error is returned; the caller treats it as fatal.
func (s *Server) Bind() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sockets) > 0 {
		return ErrAlreadyBound
	}
	if len(s.Bindings) == 0 {
		return ErrNoBindings
	}

	ip := net.IPv4zero
	if s.Host != "" {
		ip = net.ParseIP(s.Host)
		if ip == nil || ip.To4() == nil {
			return &TransportError{Op: "bind", Addr: s.Host, Err: errors.New("bind host must be an IPv4 address")}
		}
	}

	sockets := make([]*socket, 0, len(s.Bindings))
	for _, b := range s.Bindings {
		if !b.Language.Valid() {
			closeSockets(sockets)
			return fmt.Errorf("transport: binding for unknown language %d", b.Language)
		}
		addr := &net.UDPAddr{IP: ip, Port: b.Port}
		conn, err := net.ListenUDP("udp4", addr)
		if err != nil {
			closeSockets(sockets)
			return &TransportError{Op: "bind", Addr: addr.String(), Err: err}
		}
		port := conn.LocalAddr().(*net.UDPAddr).Port
		sockets = append(sockets, &socket{lang: b.Language, conn: conn, port: port})
		log.Info().Str("lang", b.Language.Tag()).Int("port", port).Msg("socket bound")
	}
	s.sockets = sockets
	s.ready.Store(true)
	return nil
}

// Serve runs the dispatch loop until ctx is cancelled or a socket becomes
// unusable. It binds first if Bind was not called. All sockets are closed
// when Serve returns.
func (s *Server) Serve(ctx context.Context) error {
	if !s.Ready() {
		if err := s.Bind(); err != nil {
			return err
		}
	}
	s.mu.Lock()
	sockets := s.sockets
	s.mu.Unlock()
	if len(sockets) == 0 {
		return ErrNotBound
	}

	ctx, cancel := context.WithCancel(ctx)
	inbox := make(chan datagram)
	failed := make(chan error, len(sockets))

	var wg sync.WaitGroup
	for _, sock := range sockets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.readLoop(ctx, sock, inbox, failed)
		}()
	}
	defer func() {
		cancel()
		s.Close()
		wg.Wait()
		s.state.Store(int32(StateIdle))
	}()

	for {
		s.state.Store(int32(StateAwaitingRequest))
		select {
		case <-ctx.Done():
			log.Info().Msg("server shutting down")
			return nil
		case err := <-failed:
			return err
		case dg := <-inbox:
			s.state.Store(int32(StateProcessing))
			s.dispatch(dg)
		}
	}
}

// readLoop forwards datagrams from one socket to the dispatcher.
func (s *Server) readLoop(ctx context.Context, sock *socket, inbox chan<- datagram, failed chan<- error) {
	errCount := 0
	for {
		buf := make([]byte, protocol.MaxDatagramSize)
		n, peer, err := sock.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			errCount++
			if errors.Is(err, net.ErrClosed) || errCount >= maxConsecutiveReadErrors {
				if !errors.Is(err, net.ErrClosed) {
					err = fmt.Errorf("%w: %v", ErrSocketFailing, err)
				}
				failed <- &TransportError{Op: "receive", Addr: sock.conn.LocalAddr().String(), Err: err}
				return
			}
			log.Warn().Err(err).Str("lang", sock.lang.Tag()).Int("port", sock.port).Msg("receive failed, continuing")
			continue
		}
		errCount = 0
		select {
		case inbox <- datagram{sock: sock, peer: peer, data: buf[:n]}:
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) dispatch(dg datagram) {
	start := time.Now()
	lang := dg.sock.lang
	logger := log.With().
		Str("trace", ulid.Make().String()).
		Str("lang", lang.Tag()).
		Int("port", dg.sock.port).
		Str("peer", dg.peer.String()).
		Logger()

	observability.RecordDatagram(lang.Tag())
	logger.Info().Int("bytes", len(dg.data)).Msgf("request received in %s", lang)

	req, packet, err := s.respond(lang, dg.data)
	if err != nil {
		observability.RecordDiscard(lang.Tag(), discardReason(err))
		logger.Warn().Err(err).Msg("discarding datagram")
		return
	}
	if _, err := dg.sock.conn.WriteToUDP(packet, dg.peer); err != nil {
		observability.RecordDiscard(lang.Tag(), "send_failed")
		logger.Warn().Err(&TransportError{Op: "send", Addr: dg.peer.String(), Err: err}).Msg("discarding response")
		return
	}
	observability.RecordResponse(lang.Tag(), req.RequestType.String(), time.Since(start))
	logger.Info().Str("kind", req.RequestType.String()).Int("bytes", len(packet)).Msg("response sent")
}

// respond validates a request datagram and builds the encoded response for
// the socket's language.
func (s *Server) respond(lang protocol.Language, data []byte) (protocol.Request, []byte, error) {
	req, err := protocol.ValidateRequest(data)
	if err != nil {
		return protocol.Request{}, nil, err
	}
	now := s.now()
	render := s.render
	if render == nil {
		render = text.Render
	}
	payload, ok := render(req.RequestType, lang, text.DateOf(now), text.ClockOf(now))
	if !ok {
		return protocol.Request{}, nil, ErrUnrenderable
	}
	if len(payload) > protocol.MaxTextLen {
		return protocol.Request{}, nil, fmt.Errorf("%w: %d bytes", protocol.ErrTextTooLong, len(payload))
	}
	packet, err := protocol.EncodeResponse(protocol.NewResponse(lang, now, payload))
	if err != nil {
		return protocol.Request{}, nil, err
	}
	return req, packet, nil
}

func (s *Server) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func discardReason(err error) string {
	var verr *protocol.ValidationError
	switch {
	case errors.As(err, &verr):
		return "invalid_" + verr.Field
	case errors.Is(err, protocol.ErrTextTooLong):
		return "text_too_long"
	case errors.Is(err, ErrUnrenderable):
		return "unrenderable"
	default:
		return "error"
	}
}

// Close releases every bound socket. It is safe to call more than once.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	closeSockets(s.sockets)
	s.sockets = nil
	s.ready.Store(false)
	return nil
}

func closeSockets(sockets []*socket) {
	for _, sock := range sockets {
		_ = sock.conn.Close()
	}
}

// Ready reports whether the binding set is open.
func (s *Server) Ready() bool {
	return s.ready.Load()
}

func (s *Server) State() State {
	return State(s.state.Load())
}

func (s *Server) StateName() string {
	return s.State().String()
}

// Ports maps each language tag to its bound port. Before Bind it reports
// the configured ports.
func (s *Server) Ports() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.Bindings))
	if len(s.sockets) > 0 {
		for _, sock := range s.sockets {
			out[sock.lang.Tag()] = sock.port
		}
		return out
	}
	for _, b := range s.Bindings {
		out[b.Language.Tag()] = b.Port
	}
	return out
}

// Addr returns the bound address for lang, or nil.
func (s *Server) Addr(lang protocol.Language) *net.UDPAddr {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sock := range s.sockets {
		if sock.lang == lang {
			return sock.conn.LocalAddr().(*net.UDPAddr)
		}
	}
	return nil
}
