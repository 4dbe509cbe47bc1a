package whoisheuristic

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dnsvitals/liveness/internal/apperr"
	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/suffix"
)

// Options configures Heuristic.
type Options struct {
	Client                 Client
	TldMap                 TldMap
	Timeout                time.Duration
	Retry                  dnsprobe.RetryPolicy
	Family                 int
	FollowDepth            int
	WhoisErrorCountAsAlive bool
	Logger                 *slog.Logger
}

// Heuristic decides whether an apex has been registered, by heuristically
// parsing a WHOIS/RDAP client's free-form response.
type Heuristic struct {
	client      Client
	tldMap      TldMap
	timeout     time.Duration
	retry       dnsprobe.RetryPolicy
	family      int
	followDepth int
	errAsAlive  bool
	extractor   suffix.Extractor
	logger      *slog.Logger
}

// New constructs a Heuristic. Fails fast on a nil Client — a programmer
// error, not a runtime condition.
func New(opts Options) (*Heuristic, error) {
	if opts.Client == nil {
		return nil, apperr.ErrInvalidInput
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Heuristic{
		client:      opts.Client,
		tldMap:      opts.TldMap,
		timeout:     opts.Timeout,
		retry:       opts.Retry,
		family:      opts.Family,
		followDepth: opts.FollowDepth,
		errAsAlive:  opts.WhoisErrorCountAsAlive,
		extractor:   suffix.New(),
		logger:      logger,
	}, nil
}

// HasBeenRegistered runs the full TLD-lookup → query → classify → scan
// pipeline end to end for apex.
func (h *Heuristic) HasBeenRegistered(ctx context.Context, apex string) (bool, error) {
	tld, ok := h.extractor.Tld(apex)
	if !ok {
		return false, &TldExtractionError{Domain: apex}
	}

	hint, _ := h.tldMap.Lookup(tld)

	opts := QueryOptions{
		Host:        hint,
		Timeout:     h.timeout,
		Family:      h.family,
		FollowDepth: h.followDepth,
	}

	var out outcome
	var bailErr error

	_, retryErr := dnsprobe.WithRetry(ctx, h.retry, func() (bool, error) {
		node, err := h.client.Query(ctx, apex, opts)
		if err == nil {
			out = nodeOutcome(node)
			return true, nil
		}

		switch classify(err.Error(), apex) {
		case classBail:
			bailErr = &QueryError{Domain: apex, Err: err}
			return true, nil // stop retrying; bailErr takes precedence below
		case classTldUnsupported:
			out = sentinelOutcome(sentinelTldUnsupported)
			return true, nil
		case classNoWhois:
			out = sentinelOutcome(sentinelNoWhois)
			return true, nil
		default:
			return false, err // retryable
		}
	})

	if bailErr != nil {
		return false, bailErr
	}

	if retryErr != nil {
		h.logger.Debug("whois retries exhausted", "apex", apex, "error", retryErr)
		return h.errAsAlive, nil
	}

	switch out.sentinel {
	case sentinelTldUnsupported:
		return true, nil
	case sentinelNoWhois:
		return false, nil
	default:
		return scanRegistered(out.node), nil
	}
}

type errClass int

const (
	classRetryable errClass = iota
	classTldUnsupported
	classBail
	classNoWhois
)

// classify maps a WHOIS client error message to an errClass by
// substring-matching known failure phrasings.
func classify(msg, domain string) errClass {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not supported"):
		return classTldUnsupported
	case strings.Contains(lower, "no whois data found"):
		return classNoWhois
	case strings.Contains(lower, "invalid tld") || strings.Contains(lower, "not found"):
		return classBail
	default:
		return classRetryable
	}
}
