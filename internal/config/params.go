package config

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/danmuck/dtproto/internal/protocol"
)

const (
	// Valid ports lie strictly between these bounds.
	PortFloor   = 1024
	PortCeiling = 64000
)

var (
	ErrInvalidRequestType  = errors.New("config: request must be \"date\" or \"time\"")
	ErrUnresolvableAddress = errors.New("config: address does not resolve")
	ErrInvalidPort         = errors.New("config: invalid port")
	ErrDuplicatePort       = errors.New("config: ports must be distinct")
	ErrMissingPort         = errors.New("config: missing port")
)

// ClientParams are validated client inputs with the host resolved to IPv4.
type ClientParams struct {
	Kind protocol.RequestType
	Host string
	Addr *net.UDPAddr
}

func ValidPort(port int) bool {
	return port > PortFloor && port < PortCeiling
}

// ParsePort parses raw and checks the port range.
func ParsePort(raw string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidPort, raw)
	}
	if !ValidPort(port) {
		return 0, fmt.Errorf("%w: %d outside (%d, %d)", ErrInvalidPort, port, PortFloor, PortCeiling)
	}
	return port, nil
}

// ValidateClientParams checks request kind, then address, then port.
func ValidateClientParams(ctx context.Context, kind, address, port string) (ClientParams, error) {
	reqType, ok := protocol.ParseRequestType(kind)
	if !ok {
		return ClientParams{}, fmt.Errorf("%w: got %q", ErrInvalidRequestType, kind)
	}
	ip, err := resolveIPv4(ctx, address)
	if err != nil {
		return ClientParams{}, err
	}
	p, err := ParsePort(port)
	if err != nil {
		return ClientParams{}, err
	}
	return ClientParams{
		Kind: reqType,
		Host: strings.TrimSpace(address),
		Addr: &net.UDPAddr{IP: ip, Port: p},
	}, nil
}

func resolveIPv4(ctx context.Context, address string) (net.IP, error) {
	host := strings.TrimSpace(address)
	if host == "" {
		return nil, fmt.Errorf("%w: empty address", ErrUnresolvableAddress)
	}
	if ip := net.ParseIP(host); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
		return nil, fmt.Errorf("%w: %s is not IPv4", ErrUnresolvableAddress, host)
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnresolvableAddress, host, err)
	}
	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no IPv4 address", ErrUnresolvableAddress, host)
}

// ValidateServerPorts checks for duplicates first, then each port's range
// in English, Māori, German order.
func ValidateServerPorts(eng, mao, ger int) error {
	if eng == mao || eng == ger || mao == ger {
		return fmt.Errorf("%w: eng=%d mao=%d ger=%d", ErrDuplicatePort, eng, mao, ger)
	}
	ports := [...]int{eng, mao, ger}
	for _, lang := range protocol.Languages {
		if p := ports[lang.Index()]; !ValidPort(p) {
			return fmt.Errorf("%w: %s port %d outside (%d, %d)", ErrInvalidPort, lang, p, PortFloor, PortCeiling)
		}
	}
	return nil
}
