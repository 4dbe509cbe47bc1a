// Package apexcheck implements ApexChecker: registerable-apex liveness via
// an NS-probe fast path with a WHOIS/RDAP heuristic fallback.
package apexcheck

import (
	"context"
	"log/slog"

	"github.com/dnsvitals/liveness/internal/apperr"
	"github.com/dnsvitals/liveness/internal/cachefacade"
	"github.com/dnsvitals/liveness/internal/coalesce"
	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/idn"
	"github.com/dnsvitals/liveness/internal/model"
	"github.com/dnsvitals/liveness/internal/suffix"
)

// Prober is the subset of *dnsprobe.Probe the checker needs — narrowed to
// an interface so tests can substitute a counting/scripted stub without
// standing up real DNS transports.
type Prober interface {
	Confirm(ctx context.Context, name string, recordType dnsprobe.RecordType) (bool, error)
}

// Whoiser is the subset of *whoisheuristic.Heuristic the checker needs.
type Whoiser interface {
	HasBeenRegistered(ctx context.Context, apex string) (bool, error)
}

// Checker decides registerable-apex liveness.
type Checker struct {
	normalizer idn.Normalizer
	extractor  suffix.Extractor
	coalescer  *coalesce.Coalescer
	cache      cachefacade.Cache[model.ApexResult]
	nsProbe    Prober
	whois      Whoiser
	errAsAlive bool
	logger     *slog.Logger
}

// Config wires a Checker's collaborators. Cache may be nil (facade
// passthrough, computing unconditionally on every call).
type Config struct {
	Normalizer             idn.Normalizer
	Extractor              suffix.Extractor
	Coalescer              *coalesce.Coalescer
	Cache                  cachefacade.Cache[model.ApexResult]
	NSProbe                Prober
	Whois                  Whoiser
	WhoisErrorCountAsAlive bool
	Logger                 *slog.Logger
}

// New constructs a Checker. Fails fast on missing required collaborators.
func New(cfg Config) (*Checker, error) {
	if cfg.Normalizer == nil || cfg.Extractor == nil || cfg.Coalescer == nil || cfg.NSProbe == nil || cfg.Whois == nil {
		return nil, apperr.ErrInvalidInput
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		normalizer: cfg.Normalizer,
		extractor:  cfg.Extractor,
		coalescer:  cfg.Coalescer,
		cache:      cfg.Cache,
		nsProbe:    cfg.NSProbe,
		whois:      cfg.Whois,
		errAsAlive: cfg.WhoisErrorCountAsAlive,
		logger:     logger,
	}, nil
}

// IsApexAlive decides whether inputDomain's registerable apex is alive.
func (c *Checker) IsApexAlive(ctx context.Context, inputDomain string) model.ApexResult {
	normalized, err := c.normalizer.ToALabel(inputDomain)
	if err != nil {
		return model.NullApexResult()
	}

	// Coalescing key is the normalized input, matching the cache key: two
	// distinct inputs sharing an apex are deduplicated only by the cache,
	// never by this coalescer.
	result, _ := c.coalescer.Run(normalized, func() (any, error) {
		return cachefacade.GetOrCompute(c.cache, normalized, func() (model.ApexResult, error) {
			return c.compute(ctx, normalized), nil
		})
	})

	if result == nil {
		return model.NullApexResult()
	}
	return result.(model.ApexResult)
}

func (c *Checker) compute(ctx context.Context, normalized string) model.ApexResult {
	apex, ok := c.extractor.Apex(normalized)
	if !ok {
		return model.NullApexResult()
	}

	confirmed, err := c.nsProbe.Confirm(ctx, apex, dnsprobe.TypeNS)
	if err == nil && confirmed {
		return model.ApexResult{RegisterableDomain: &apex, Alive: true}
	}
	if err != nil {
		c.logger.Debug("NS probe errored, falling back to WHOIS", "apex", apex, "error", err)
	}

	registered, err := c.whois.HasBeenRegistered(ctx, apex)
	if err != nil {
		// WhoisQueryError or TldExtractionError — both collapse into the
		// configured bias rather than surfacing as an error to the caller.
		c.logger.Debug("whois heuristic bailed", "apex", apex, "error", err)
		return model.ApexResult{RegisterableDomain: &apex, Alive: c.errAsAlive}
	}

	return model.ApexResult{RegisterableDomain: &apex, Alive: registered}
}
