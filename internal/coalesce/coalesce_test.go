package coalesce

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_ConcurrentCallsShareOneExecution(t *testing.T) {
	c := New()
	var executions int32
	var arrived int32
	start := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]any, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			atomic.AddInt32(&arrived, 1)
			v, _ := c.Run("same-key", func() (any, error) {
				atomic.AddInt32(&executions, 1)
				// Hold the call open until every caller has arrived so all 20
				// calls overlap the single in-flight execution.
				for atomic.LoadInt32(&arrived) < 20 {
					time.Sleep(time.Millisecond)
				}
				time.Sleep(10 * time.Millisecond)
				return "result", nil
			})
			results[idx] = v
		}(i)
	}
	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&executions); got != 1 {
		t.Errorf("executions = %d, want 1", got)
	}
	for i, v := range results {
		if v != "result" {
			t.Errorf("results[%d] = %v, want %q", i, v, "result")
		}
	}
}

func TestRun_DifferentKeysExecuteIndependently(t *testing.T) {
	c := New()
	var executions int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, _ = c.Run(string(rune('a'+idx)), func() (any, error) {
				atomic.AddInt32(&executions, 1)
				return nil, nil
			})
		}(i)
	}
	wg.Wait()
	if got := atomic.LoadInt32(&executions); got != 5 {
		t.Errorf("executions = %d, want 5 (one per distinct key)", got)
	}
}

// Failures are not cached: a subsequent call with the same key after a prior
// failure settles must re-run the thunk rather than replaying the error.
func TestRun_FailureNotCachedAcrossSubsequentCalls(t *testing.T) {
	c := New()
	sentinel := errors.New("boom")
	calls := 0

	_, err := c.Run("key", func() (any, error) {
		calls++
		return nil, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("first Run() error = %v, want %v", err, sentinel)
	}

	v, err := c.Run("key", func() (any, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if v != "ok" {
		t.Errorf("second Run() = %v, want %q", v, "ok")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2 (thunk must re-run after a settled failure)", calls)
	}
}
