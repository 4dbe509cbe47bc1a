package whoisheuristic

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dnsvitals/liveness/internal/netdial"
)

// QueryOptions carries the per-call knobs passed to the WHOIS/RDAP client:
// a timeout, an optional hint host, and the optional family/follow-depth
// passthrough options.
type QueryOptions struct {
	Host        string // hint host; empty means "client decides"
	Timeout     time.Duration
	Family      int // 0 (unset), 4, or 6
	FollowDepth int
}

// Client is a WHOIS/RDAP client producing a possibly-nested referral tree,
// with errors carrying a human-readable message for substring
// classification. WhoisHeuristic depends only on this interface;
// DefaultClient is one swappable implementation of it.
type Client interface {
	Query(ctx context.Context, domain string, opts QueryOptions) (*Node, error)
}

const ianaWhoisHost = "whois.iana.org"

// DefaultClient is a TCP/43 WHOIS client: dial host:43, send "domain\r\n",
// read the raw response. When no host hint is supplied it first queries
// IANA's root WHOIS server to discover the TLD's registry server. It then
// follows up to opts.FollowDepth layers of "ReferralServer:"/"Registrar
// WHOIS Server:" redirection (none when FollowDepth is 0), nesting each
// referral's response under a "referral" field for the recursive raw-text
// scanner to walk.
type DefaultClient struct {
	Dial netdial.DialContextFunc
}

// NewDefaultClient returns a DefaultClient dialing directly (no proxy).
func NewDefaultClient() *DefaultClient {
	dial, _ := netdial.NewDialer("")
	return &DefaultClient{Dial: dial}
}

func (c *DefaultClient) Query(ctx context.Context, domain string, opts QueryOptions) (*Node, error) {
	host := opts.Host
	if host == "" {
		tld := tldOf(domain)
		referral, err := c.lookupOne(ctx, ianaWhoisHost, tld, opts.Timeout)
		if err != nil {
			return nil, err
		}
		ref := findReferral(referral.Raw)
		if ref == "" {
			return nil, fmt.Errorf("TLD %q not found", tld)
		}
		host = ref
	}

	root, err := c.lookupOne(ctx, host, domain, opts.Timeout)
	if err != nil {
		return nil, err
	}

	depth := opts.FollowDepth
	node := root
	for depth > 0 {
		ref := findReferral(node.Raw)
		if ref == "" || ref == host {
			break
		}
		child, err := c.lookupOne(ctx, ref, domain, opts.Timeout)
		if err != nil {
			break
		}
		node.Fields["referral"] = NewNested(child)
		node = child
		host = ref
		depth--
	}

	return root, nil
}

// lookupOne performs a single TCP/43 query against host, returning a leaf
// Node wrapping the raw response text.
func (c *DefaultClient) lookupOne(ctx context.Context, host, query string, timeout time.Duration) (*Node, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := c.Dial(dialCtx, "tcp", host+":43")
	if err != nil {
		return nil, fmt.Errorf("dialing whois server %s: %w", host, err)
	}
	defer conn.Close()

	if deadline, ok := dialCtx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if _, err := fmt.Fprintf(conn, "%s\r\n", query); err != nil {
		return nil, fmt.Errorf("sending whois query to %s: %w", host, err)
	}

	body, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("reading whois response from %s: %w", host, err)
	}

	return &Node{Raw: string(body), HasRaw: true, Fields: map[string]Value{}}, nil
}

var referralPrefixes = []string{
	"referralserver:",
	"registrar whois server:",
	"whois server:",
}

// findReferral extracts a referral host from raw WHOIS text, stripping a
// leading "whois://" scheme if present (common on ReferralServer lines).
func findReferral(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		lower := strings.ToLower(line)
		for _, prefix := range referralPrefixes {
			if strings.HasPrefix(lower, prefix) {
				val := strings.TrimSpace(line[len(prefix):])
				val = strings.TrimPrefix(val, "whois://")
				val = strings.TrimPrefix(val, "rwhois://")
				if val != "" {
					return val
				}
			}
		}
	}
	return ""
}

func tldOf(domain string) string {
	domain = strings.TrimSuffix(domain, ".")
	if i := strings.LastIndexByte(domain, '.'); i >= 0 {
		return domain[i+1:]
	}
	return domain
}
