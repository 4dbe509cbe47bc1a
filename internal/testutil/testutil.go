// Package testutil provides shared hand-written test fakes rather than
// generated mocks.
package testutil

import (
	"context"
	"io"
	"log/slog"

	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/model"
	"github.com/dnsvitals/liveness/internal/whoisheuristic"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StubResolver implements dnsprobe.Resolver for testing. ConfirmFn is called
// on every invocation; Calls counts how many times Confirm ran (for
// coalescing/dedup assertions).
type StubResolver struct {
	ConfirmFn func(ctx context.Context, name string, recordType dnsprobe.RecordType) (bool, error)
	Calls     int
}

var _ dnsprobe.Resolver = (*StubResolver)(nil)

func (s *StubResolver) Confirm(ctx context.Context, name string, recordType dnsprobe.RecordType) (bool, error) {
	s.Calls++
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, name, recordType)
	}
	return false, nil
}

// StubWhoisClient implements whoisheuristic.Client for testing.
type StubWhoisClient struct {
	QueryFn func(ctx context.Context, domain string, opts whoisheuristic.QueryOptions) (*whoisheuristic.Node, error)
	Calls   int
}

var _ whoisheuristic.Client = (*StubWhoisClient)(nil)

func (s *StubWhoisClient) Query(ctx context.Context, domain string, opts whoisheuristic.QueryOptions) (*whoisheuristic.Node, error) {
	s.Calls++
	if s.QueryFn != nil {
		return s.QueryFn(ctx, domain, opts)
	}
	return &whoisheuristic.Node{}, nil
}

// StubProbe implements apexcheck.Prober / fqdncheck.Prober for testing,
// scripted per-call via ConfirmFn. Calls counts invocations (for
// coalescing/dedup assertions and "WHOIS must not be called" scenarios).
type StubProbe struct {
	ConfirmFn func(ctx context.Context, name string, recordType dnsprobe.RecordType) (bool, error)
	Calls     int
}

func (s *StubProbe) Confirm(ctx context.Context, name string, recordType dnsprobe.RecordType) (bool, error) {
	s.Calls++
	if s.ConfirmFn != nil {
		return s.ConfirmFn(ctx, name, recordType)
	}
	return false, nil
}

// StubWhoiser implements apexcheck.Whoiser for testing.
type StubWhoiser struct {
	HasBeenRegisteredFn func(ctx context.Context, apex string) (bool, error)
	Calls               int
}

func (s *StubWhoiser) HasBeenRegistered(ctx context.Context, apex string) (bool, error) {
	s.Calls++
	if s.HasBeenRegisteredFn != nil {
		return s.HasBeenRegisteredFn(ctx, apex)
	}
	return false, nil
}

// StubApexer implements fqdncheck.Apexer for testing.
type StubApexer struct {
	IsApexAliveFn func(ctx context.Context, inputDomain string) model.ApexResult
	Calls         int
}

func (s *StubApexer) IsApexAlive(ctx context.Context, inputDomain string) model.ApexResult {
	s.Calls++
	if s.IsApexAliveFn != nil {
		return s.IsApexAliveFn(ctx, inputDomain)
	}
	return model.NullApexResult()
}
