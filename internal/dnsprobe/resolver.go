package dnsprobe

import (
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/imroc/req/v3"

	"github.com/dnsvitals/liveness/internal/apperr"
	"github.com/dnsvitals/liveness/internal/netdial"
)

// Resolver sends a single query to one DNS server and reports whether the
// response's answer section is non-empty. Each DnsServerSpec scheme
// (udp/tcp/tls/https) gets its own Resolver implementation.
type Resolver interface {
	Confirm(ctx context.Context, name string, recordType RecordType) (confirmed bool, err error)
}

// NewResolver builds the Resolver matching spec.Scheme, dialing (when
// applicable) through dial.
func NewResolver(spec ServerSpec, dial netdial.DialContextFunc, httpClient *req.Client) (Resolver, error) {
	if dial != nil {
		inner := dial
		dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
			if _, ok := ctx.Deadline(); !ok {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, dialTimeout)
				defer cancel()
			}
			return inner(ctx, network, addr)
		}
	}
	switch spec.Scheme {
	case SchemeUDP:
		return &udpResolver{addr: spec.Addr, dial: dial}, nil
	case SchemeTCP:
		return &streamResolver{addr: spec.Addr, dial: dial}, nil
	case SchemeTLS:
		return &streamResolver{addr: spec.Addr, dial: dial, tls: true}, nil
	case SchemeHTTPS:
		return &httpsResolver{url: spec.Addr, client: httpClient}, nil
	default:
		return nil, fmt.Errorf("dnsprobe: unknown resolver scheme %q", spec.Scheme)
	}
}

// udpResolver queries a DNS server over a single UDP datagram exchange.
type udpResolver struct {
	addr string
	dial netdial.DialContextFunc
}

func (r *udpResolver) Confirm(ctx context.Context, name string, recordType RecordType) (bool, error) {
	query, err := buildQuery(name, recordType)
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
	}

	conn, err := r.dial(ctx, "udp", r.addr)
	if err != nil {
		return false, fmt.Errorf("%w: dialing %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if _, err := conn.Write(query); err != nil {
		return false, fmt.Errorf("%w: writing to %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil {
		return false, fmt.Errorf("%w: reading from %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}

	count, err := answerCount(buf[:n])
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
	}
	return count > 0, nil
}

// streamResolver queries a DNS server over TCP, optionally wrapped in TLS
// (DNS-over-TLS, RFC 7858). Both transports share RFC 1035 §4.2.2's 2-byte
// big-endian length-prefixed message framing.
type streamResolver struct {
	addr string
	dial netdial.DialContextFunc
	tls  bool
}

func (r *streamResolver) Confirm(ctx context.Context, name string, recordType RecordType) (bool, error) {
	query, err := buildQuery(name, recordType)
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
	}

	conn, err := r.dial(ctx, "tcp", r.addr)
	if err != nil {
		return false, fmt.Errorf("%w: dialing %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}
	defer conn.Close()

	if r.tls {
		host, _, splitErr := net.SplitHostPort(r.addr)
		if splitErr != nil {
			host = r.addr
		}
		tlsConn := tls.Client(conn, &tls.Config{ServerName: host, MinVersion: tls.VersionTLS12})
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return false, fmt.Errorf("%w: TLS handshake with %s: %w", apperr.ErrRequestFailed, r.addr, err)
		}
		conn = tlsConn
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	framed := make([]byte, 2+len(query))
	binary.BigEndian.PutUint16(framed, uint16(len(query)))
	copy(framed[2:], query)
	if _, err := conn.Write(framed); err != nil {
		return false, fmt.Errorf("%w: writing to %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}

	var lenBuf [2]byte
	if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
		return false, fmt.Errorf("%w: reading length prefix from %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}
	msgLen := binary.BigEndian.Uint16(lenBuf[:])
	msg := make([]byte, msgLen)
	if _, err := io.ReadFull(conn, msg); err != nil {
		return false, fmt.Errorf("%w: reading message from %s: %w", apperr.ErrRequestFailed, r.addr, err)
	}

	count, err := answerCount(msg)
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
	}
	return count > 0, nil
}

// httpsResolver queries a DNS-over-HTTPS server per RFC 8484 against a
// caller-supplied endpoint URL.
type httpsResolver struct {
	url    string
	client *req.Client
}

func (r *httpsResolver) Confirm(ctx context.Context, name string, recordType RecordType) (bool, error) {
	query, err := buildQuery(name, recordType)
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
	}
	encoded := base64.RawURLEncoding.EncodeToString(query)

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/dns-message").
		SetQueryParam("dns", encoded).
		Get(r.url)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return false, fmt.Errorf("%w: DoH request to %s: %w", apperr.ErrRequestFailed, r.url, err)
	}
	if !resp.IsSuccessState() {
		return false, fmt.Errorf("%w: DoH server %s returned HTTP %d", apperr.ErrRequestFailed, r.url, resp.StatusCode)
	}

	count, err := answerCount(resp.Bytes())
	if err != nil {
		return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
	}
	return count > 0, nil
}

// dialTimeout bounds a single dial attempt when the caller's context carries
// no deadline of its own.
const dialTimeout = 5 * time.Second
