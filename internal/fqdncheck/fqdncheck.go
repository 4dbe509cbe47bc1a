// Package fqdncheck implements FqdnChecker: wraps an ApexChecker and, when
// the FQDN differs from its apex, independently confirms A then AAAA
// reachability.
package fqdncheck

import (
	"context"
	"log/slog"

	"github.com/dnsvitals/liveness/internal/apperr"
	"github.com/dnsvitals/liveness/internal/cachefacade"
	"github.com/dnsvitals/liveness/internal/coalesce"
	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/idn"
	"github.com/dnsvitals/liveness/internal/model"
)

// Prober is the subset of *dnsprobe.Probe the checker needs — narrowed to
// an interface so tests can substitute a counting/scripted stub.
type Prober interface {
	Confirm(ctx context.Context, name string, recordType dnsprobe.RecordType) (bool, error)
}

// Apexer is the subset of *apexcheck.Checker the checker needs.
type Apexer interface {
	IsApexAlive(ctx context.Context, inputDomain string) model.ApexResult
}

// Checker decides FQDN liveness by delegating apex liveness and, for
// non-apex names, racing A/AAAA confirmation.
type Checker struct {
	normalizer idn.Normalizer
	apex       Apexer
	coalescer  *coalesce.Coalescer
	cache      cachefacade.Cache[model.FqdnResult]
	aProbe     Prober
	aaaaProbe  Prober
	logger     *slog.Logger
}

// Config wires a Checker's collaborators. Cache may be nil.
type Config struct {
	Normalizer idn.Normalizer
	Apex       Apexer
	Coalescer  *coalesce.Coalescer
	Cache      cachefacade.Cache[model.FqdnResult]
	AProbe     Prober
	AAAAProbe  Prober
	Logger     *slog.Logger
}

// New constructs a Checker. Fails fast on missing required collaborators.
func New(cfg Config) (*Checker, error) {
	if cfg.Normalizer == nil || cfg.Apex == nil || cfg.Coalescer == nil || cfg.AProbe == nil || cfg.AAAAProbe == nil {
		return nil, apperr.ErrInvalidInput
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Checker{
		normalizer: cfg.Normalizer,
		apex:       cfg.Apex,
		coalescer:  cfg.Coalescer,
		cache:      cfg.Cache,
		aProbe:     cfg.AProbe,
		aaaaProbe:  cfg.AAAAProbe,
		logger:     logger,
	}, nil
}

// IsFqdnAlive decides whether inputDomain resolves, given its apex's
// liveness.
func (c *Checker) IsFqdnAlive(ctx context.Context, inputDomain string) model.FqdnResult {
	normalized, err := c.normalizer.ToALabel(inputDomain)
	if err != nil {
		return model.NullFqdnResult()
	}

	apexResult := c.apex.IsApexAlive(ctx, normalized)
	if apexResult.RegisterableDomain == nil {
		return model.NullFqdnResult()
	}
	apex := *apexResult.RegisterableDomain
	if !apexResult.Alive {
		return model.FqdnResult{RegisterableDomain: &apex, RegisterableDomainAlive: false, Alive: false}
	}

	// Apex-identity shortcut: zero A/AAAA queries when the normalized input
	// already is the apex.
	if normalized == apex {
		return model.FqdnResult{RegisterableDomain: &apex, RegisterableDomainAlive: true, Alive: true}
	}

	result, _ := c.coalescer.Run(normalized, func() (any, error) {
		return cachefacade.GetOrCompute(c.cache, normalized, func() (model.FqdnResult, error) {
			return c.compute(ctx, normalized, apex), nil
		})
	})

	if result == nil {
		return model.FqdnResult{RegisterableDomain: &apex, RegisterableDomainAlive: true, Alive: false}
	}
	return result.(model.FqdnResult)
}

func (c *Checker) compute(ctx context.Context, normalized, apex string) model.FqdnResult {
	// Each probe independently shuffles and constructs its own resolver
	// set, so A and AAAA queries don't share a fixed server order.
	confirmedA, err := c.aProbe.Confirm(ctx, normalized, dnsprobe.TypeA)
	if err != nil {
		c.logger.Debug("A probe errored", "fqdn", normalized, "error", err)
	}
	if confirmedA {
		return model.FqdnResult{RegisterableDomain: &apex, RegisterableDomainAlive: true, Alive: true}
	}

	confirmedAAAA, err := c.aaaaProbe.Confirm(ctx, normalized, dnsprobe.TypeAAAA)
	if err != nil {
		c.logger.Debug("AAAA probe errored", "fqdn", normalized, "error", err)
	}
	if confirmedAAAA {
		return model.FqdnResult{RegisterableDomain: &apex, RegisterableDomainAlive: true, Alive: true}
	}

	return model.FqdnResult{RegisterableDomain: &apex, RegisterableDomainAlive: true, Alive: false}
}
