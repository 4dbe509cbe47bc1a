package fqdncheck_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsvitals/liveness/internal/cachefacade"
	"github.com/dnsvitals/liveness/internal/coalesce"
	"github.com/dnsvitals/liveness/internal/dnsprobe"
	"github.com/dnsvitals/liveness/internal/fqdncheck"
	"github.com/dnsvitals/liveness/internal/idn"
	"github.com/dnsvitals/liveness/internal/model"
	"github.com/dnsvitals/liveness/internal/testutil"
)

func aliveApex(apex string) *testutil.StubApexer {
	return &testutil.StubApexer{IsApexAliveFn: func(_ context.Context, _ string) model.ApexResult {
		return model.ApexResult{RegisterableDomain: &apex, Alive: true}
	}}
}

func newChecker(t *testing.T, apex fqdncheck.Apexer, aProbe, aaaaProbe fqdncheck.Prober) *fqdncheck.Checker {
	t.Helper()
	c, err := fqdncheck.New(fqdncheck.Config{
		Normalizer: idn.New(),
		Apex:       apex,
		Coalescer:  coalesce.New(),
		Cache:      cachefacade.NewInMemory[model.FqdnResult](),
		AProbe:     aProbe,
		AAAAProbe:  aaaaProbe,
		Logger:     testutil.NopLogger(),
	})
	require.NoError(t, err)
	return c
}

// Scenario 5: apex alive, FQDN has A answers.
func TestIsFqdnAlive_AConfirmed(t *testing.T) {
	apex := aliveApex("example.com")
	aProbe := &testutil.StubProbe{ConfirmFn: func(_ context.Context, _ string, _ dnsprobe.RecordType) (bool, error) {
		return true, nil
	}}
	aaaaProbe := &testutil.StubProbe{}

	c := newChecker(t, apex, aProbe, aaaaProbe)
	result := c.IsFqdnAlive(context.Background(), "a.example.com")

	require.NotNil(t, result.RegisterableDomain)
	assert.Equal(t, "example.com", *result.RegisterableDomain)
	assert.True(t, result.RegisterableDomainAlive)
	assert.True(t, result.Alive)
	assert.Equal(t, 0, aaaaProbe.Calls, "AAAA must not be queried once A confirms")
}

// Scenario 6: apex alive, no A and no AAAA.
func TestIsFqdnAlive_NoAnswers(t *testing.T) {
	apex := aliveApex("example.com")
	aProbe := &testutil.StubProbe{}
	aaaaProbe := &testutil.StubProbe{}

	c := newChecker(t, apex, aProbe, aaaaProbe)
	result := c.IsFqdnAlive(context.Background(), "ghost.example.com")

	require.NotNil(t, result.RegisterableDomain)
	assert.True(t, result.RegisterableDomainAlive)
	assert.False(t, result.Alive)
}

// Apex-identity shortcut: zero A/AAAA queries when input normalizes to its apex.
func TestIsFqdnAlive_ApexIdentityShortcut(t *testing.T) {
	apex := aliveApex("example.com")
	aProbe := &testutil.StubProbe{}
	aaaaProbe := &testutil.StubProbe{}

	c := newChecker(t, apex, aProbe, aaaaProbe)
	result := c.IsFqdnAlive(context.Background(), "example.com")

	assert.True(t, result.Alive)
	assert.True(t, result.RegisterableDomainAlive)
	assert.Equal(t, 0, aProbe.Calls)
	assert.Equal(t, 0, aaaaProbe.Calls)
}

// Apex not alive short-circuits without any A/AAAA queries.
func TestIsFqdnAlive_ApexDead(t *testing.T) {
	apex := &testutil.StubApexer{IsApexAliveFn: func(_ context.Context, _ string) model.ApexResult {
		d := "dead.com"
		return model.ApexResult{RegisterableDomain: &d, Alive: false}
	}}
	aProbe := &testutil.StubProbe{}
	aaaaProbe := &testutil.StubProbe{}

	c := newChecker(t, apex, aProbe, aaaaProbe)
	result := c.IsFqdnAlive(context.Background(), "www.dead.com")

	assert.False(t, result.RegisterableDomainAlive)
	assert.False(t, result.Alive)
	assert.Equal(t, 0, aProbe.Calls)
	assert.Equal(t, 0, aaaaProbe.Calls)
}

// Null propagation: an apex that cannot be reduced propagates the null result.
func TestIsFqdnAlive_NullPropagation(t *testing.T) {
	apex := &testutil.StubApexer{}
	aProbe := &testutil.StubProbe{}
	aaaaProbe := &testutil.StubProbe{}

	c := newChecker(t, apex, aProbe, aaaaProbe)
	result := c.IsFqdnAlive(context.Background(), "203.0.113.5")

	assert.Nil(t, result.RegisterableDomain)
	assert.False(t, result.RegisterableDomainAlive)
	assert.False(t, result.Alive)
}

// Apex monotonicity: alive ⇒ registerableDomainAlive, across every observed outcome.
func TestIsFqdnAlive_ApexMonotonicity(t *testing.T) {
	apex := aliveApex("example.com")
	for _, confirmed := range []bool{true, false} {
		aProbe := &testutil.StubProbe{ConfirmFn: func(_ context.Context, _ string, _ dnsprobe.RecordType) (bool, error) {
			return confirmed, nil
		}}
		aaaaProbe := &testutil.StubProbe{}
		c := newChecker(t, apex, aProbe, aaaaProbe)
		result := c.IsFqdnAlive(context.Background(), "a.example.com")
		if result.Alive {
			assert.True(t, result.RegisterableDomainAlive)
		}
	}
}

// Coalescing: concurrent calls for the same FQDN trigger the A probe at most once.
func TestIsFqdnAlive_Coalesces(t *testing.T) {
	apex := aliveApex("example.com")
	var mu sync.Mutex
	calls := 0
	aProbe := &testutil.StubProbe{ConfirmFn: func(_ context.Context, _ string, _ dnsprobe.RecordType) (bool, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return true, nil
	}}
	aaaaProbe := &testutil.StubProbe{}

	c := newChecker(t, apex, aProbe, aaaaProbe)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.IsFqdnAlive(context.Background(), "a.example.com")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
}
