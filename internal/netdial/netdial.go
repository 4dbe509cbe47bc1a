// Package netdial builds a raw TCP dial function, optionally tunnelled
// through a SOCKS5 proxy, usable by any raw-TCP collaborator: DnsProbe's
// tcp/tls resolvers and WhoisHeuristic's TCP/43 client both dial through
// it.
package netdial

import (
	"context"
	"fmt"
	"net"
	"strings"

	"golang.org/x/net/proxy"
)

// DialContextFunc matches the shape net.Dialer.DialContext and
// tls.Dialer.NetDialContext both accept.
type DialContextFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// NewDialer returns a DialContextFunc appropriate for the given proxy URL.
//
// When proxyURL is empty or its scheme is not "socks5", a plain
// *net.Dialer is returned.
//
// When proxyURL is a socks5:// URL, connections are tunnelled through the
// SOCKS5 proxy, preventing leaks of DNS/WHOIS traffic to the local network
// when the caller wants everything routed through the proxy.
func NewDialer(proxyURL string) (DialContextFunc, error) {
	if proxyURL == "" || !strings.HasPrefix(proxyURL, "socks5://") {
		var d net.Dialer
		return d.DialContext, nil
	}

	host := strings.TrimPrefix(proxyURL, "socks5://")

	dialer, err := proxy.SOCKS5("tcp", host, nil, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("netdial: creating SOCKS5 dialer: %w", err)
	}

	ctxDialer, ok := dialer.(proxy.ContextDialer)
	if !ok {
		return nil, fmt.Errorf("netdial: SOCKS5 dialer does not implement ContextDialer")
	}

	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return ctxDialer.DialContext(ctx, network, addr)
	}, nil
}
