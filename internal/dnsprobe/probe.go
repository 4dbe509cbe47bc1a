// Package dnsprobe implements DnsProbe: a confirmation race against a
// shuffled set of DNS servers, used for the NS/A/AAAA liveness signals.
package dnsprobe

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/imroc/req/v3"

	"github.com/dnsvitals/liveness/internal/apperr"
	"github.com/dnsvitals/liveness/internal/netdial"
)

// Probe runs a single record-type confirmation race against a list of DNS
// servers.
type Probe struct {
	servers     []ServerSpec
	confirms    int
	maxAttempts int
	retry       RetryPolicy
	dial        netdial.DialContextFunc
	httpClient  *req.Client
	newResolver func(spec ServerSpec, dial netdial.DialContextFunc, httpClient *req.Client) (Resolver, error)
	logger      *slog.Logger
}

// Config configures a new Probe. MaxAttempts is clamped to len(Servers).
type Config struct {
	Servers       []ServerSpec
	Confirmations int
	MaxAttempts   int
	Retry         RetryPolicy
	Dial          netdial.DialContextFunc
	HTTPClient    *req.Client
	Logger        *slog.Logger

	// NewResolver overrides resolver construction, for tests that need to
	// substitute a scripted Resolver without standing up real transports.
	// Defaults to NewResolver.
	NewResolver func(spec ServerSpec, dial netdial.DialContextFunc, httpClient *req.Client) (Resolver, error)
}

// New constructs a Probe. It fails fast (returns an error, never panics)
// when Config names zero servers or a nonsensical confirmation threshold —
// both are programmer errors, not runtime conditions.
func New(cfg Config) (*Probe, error) {
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("dnsprobe: no DNS servers configured")
	}
	if cfg.Confirmations <= 0 {
		return nil, fmt.Errorf("dnsprobe: confirmations threshold must be positive, got %d", cfg.Confirmations)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 || maxAttempts > len(cfg.Servers) {
		maxAttempts = len(cfg.Servers)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	newResolver := cfg.NewResolver
	if newResolver == nil {
		newResolver = NewResolver
	}

	return &Probe{
		servers:     cfg.Servers,
		confirms:    cfg.Confirmations,
		maxAttempts: maxAttempts,
		retry:       cfg.Retry,
		dial:        cfg.Dial,
		httpClient:  cfg.HTTPClient,
		newResolver: newResolver,
		logger:      logger,
	}, nil
}

// Confirm runs the probe for name/recordType and reports whether at least
// Confirmations servers (out of a freshly shuffled copy of the configured
// list) returned a non-empty answer section.
//
// Servers are shuffled once per call, attempts proceed sequentially
// cycling resolver i mod len(servers) up to maxAttempts times, and a
// retry-exhausted attempt counts as non-confirming rather than aborting
// the whole probe.
func (p *Probe) Confirm(ctx context.Context, name string, recordType RecordType) (bool, error) {
	shuffled := make([]ServerSpec, len(p.servers))
	copy(shuffled, p.servers)
	rand.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	confirmed := 0
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		spec := shuffled[attempt%len(shuffled)]
		resolver, err := p.newResolver(spec, p.dial, p.httpClient)
		if err != nil {
			return false, fmt.Errorf("%w: %w", apperr.ErrRequestFailed, err)
		}

		ok, err := WithRetry(ctx, p.retry, func() (bool, error) {
			return resolver.Confirm(ctx, name, recordType)
		})
		if err != nil {
			if ctx.Err() != nil {
				return false, ctx.Err()
			}
			p.logger.Debug("dnsprobe attempt exhausted retries", "server", spec.Addr, "scheme", spec.Scheme, "name", name, "error", err)
			continue
		}
		if ok {
			confirmed++
			if confirmed >= p.confirms {
				return true, nil
			}
		}
	}

	return confirmed >= p.confirms, nil
}
