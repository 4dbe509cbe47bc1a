package worker_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnsvitals/liveness/internal/worker"
)

func collect(ch <-chan worker.JobResult) []worker.JobResult {
	var out []worker.JobResult
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func feed(inputs []string) <-chan worker.Input {
	ch := make(chan worker.Input, len(inputs))
	for _, in := range inputs {
		ch <- in
	}
	close(ch)
	return ch
}

func TestPool_Process_AllInputsProcessed(t *testing.T) {
	inputs := make([]string, 20)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("input-%d", i)
	}

	pool := worker.NewPool(5, nil)
	results := collect(pool.Process(context.Background(), feed(inputs), func(_ context.Context, in worker.Input) (interface{}, error) {
		return in, nil
	}))

	require.Len(t, results, len(inputs))
	seen := make(map[string]bool)
	for _, r := range results {
		assert.NoError(t, r.Error)
		seen[r.Input.(string)] = true
	}
	for _, in := range inputs {
		assert.True(t, seen[in], "missing result for %q", in)
	}
}

func TestPool_Process_ErrorPerInput(t *testing.T) {
	pool := worker.NewPool(3, nil)
	results := collect(pool.Process(context.Background(), feed([]string{"good", "bad", "good"}), func(_ context.Context, in worker.Input) (interface{}, error) {
		if in.(string) == "bad" {
			return nil, errors.New("bad input")
		}
		return in, nil
	}))

	require.Len(t, results, 3)
	var errCount int
	for _, r := range results {
		if r.Error != nil {
			errCount++
		}
	}
	assert.Equal(t, 1, errCount)
}

func TestPool_Process_AllErrors(t *testing.T) {
	sentinel := errors.New("service error")
	pool := worker.NewPool(2, nil)
	results := collect(pool.Process(context.Background(), feed([]string{"a", "b", "c"}), func(_ context.Context, _ worker.Input) (interface{}, error) {
		return nil, sentinel
	}))

	require.Len(t, results, 3)
	for _, r := range results {
		assert.ErrorIs(t, r.Error, sentinel)
	}
}

func TestPool_Process_SingleInput(t *testing.T) {
	pool := worker.NewPool(10, nil)
	results := collect(pool.Process(context.Background(), feed([]string{"only"}), func(_ context.Context, in worker.Input) (interface{}, error) {
		return in, nil
	}))

	require.Len(t, results, 1)
	assert.Equal(t, "only", results[0].Value)
	assert.NoError(t, results[0].Error)
}

func TestPool_Process_EmptyInputs(t *testing.T) {
	pool := worker.NewPool(5, nil)
	results := collect(pool.Process(context.Background(), feed(nil), func(_ context.Context, in worker.Input) (interface{}, error) {
		return in, nil
	}))
	assert.Empty(t, results)
}

func TestPool_Process_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := worker.NewPool(2, nil)
	results := collect(pool.Process(ctx, feed([]string{"a", "b"}), func(_ context.Context, in worker.Input) (interface{}, error) {
		return in, nil
	}))
	// Workers may exit before consuming any input once ctx is already canceled.
	assert.LessOrEqual(t, len(results), 2)
}

func TestPool_Process_ConcurrencyOne(t *testing.T) {
	pool := worker.NewPool(1, nil)
	inputs := []string{"x", "y", "z"}
	results := collect(pool.Process(context.Background(), feed(inputs), func(_ context.Context, in worker.Input) (interface{}, error) {
		return in, nil
	}))

	require.Len(t, results, 3)
	seen := make(map[string]bool)
	for _, r := range results {
		seen[r.Value.(string)] = true
	}
	for _, in := range inputs {
		assert.True(t, seen[in])
	}
}
