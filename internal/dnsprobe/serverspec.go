package dnsprobe

import (
	"fmt"
	"net"
	"strings"
)

// Scheme identifies the DNS transport a ServerSpec names.
type Scheme string

const (
	SchemeUDP   Scheme = "udp"
	SchemeTCP   Scheme = "tcp"
	SchemeTLS   Scheme = "tls"
	SchemeHTTPS Scheme = "https"
)

// defaultPort returns the well-known port for a transport scheme.
// https has no fixed default here — the server's own URL carries it.
func (s Scheme) defaultPort() string {
	switch s {
	case SchemeTCP:
		return "53"
	case SchemeTLS:
		return "853"
	default: // udp
		return "53"
	}
}

// ServerSpec is a parsed DnsServerSpec string: [scheme "://"] host [":" port].
// An empty scheme in the input defaults to udp. For https, Addr holds the
// full original URL (the transport keeps it intact) rather than a
// host:port pair.
type ServerSpec struct {
	Scheme Scheme
	Addr   string // host:port for udp/tcp/tls; full URL for https
}

// ParseServerSpec parses a single DnsServerSpec string.
// An unrecognized scheme is a programming error — the caller (the checker
// factory) must fail fast rather than silently skip the server.
func ParseServerSpec(raw string) (ServerSpec, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ServerSpec{}, fmt.Errorf("dnsprobe: empty DNS server spec")
	}

	scheme := ""
	rest := s
	if i := strings.Index(s, "://"); i >= 0 {
		scheme = strings.ToLower(s[:i])
		rest = s[i+3:]
	}
	if scheme == "" {
		scheme = string(SchemeUDP)
	}

	switch Scheme(scheme) {
	case SchemeUDP, SchemeTCP, SchemeTLS:
		host, port, err := splitHostPortOrDefault(rest, Scheme(scheme).defaultPort())
		if err != nil {
			return ServerSpec{}, fmt.Errorf("dnsprobe: invalid server spec %q: %w", raw, err)
		}
		return ServerSpec{Scheme: Scheme(scheme), Addr: net.JoinHostPort(host, port)}, nil
	case SchemeHTTPS:
		return ServerSpec{Scheme: SchemeHTTPS, Addr: "https://" + rest}, nil
	default:
		return ServerSpec{}, fmt.Errorf("dnsprobe: unknown DNS server scheme %q", scheme)
	}
}

func splitHostPortOrDefault(hostport, defaultPort string) (host, port string, err error) {
	if h, p, err := net.SplitHostPort(hostport); err == nil {
		return h, p, nil
	}
	// No port present (or bracket-less IPv6 — callers are expected to use
	// the documented host[:port] grammar, so a bare host is the common case).
	if hostport == "" {
		return "", "", fmt.Errorf("empty host")
	}
	return hostport, defaultPort, nil
}
