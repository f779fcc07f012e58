package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/internal/search"
	"catalog/internal/testutil"
)

func TestRun_SeedsDemoCollection(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	connector := New(fakeEngine, testutil.NewTestLogger(), Config{
		MaxAttempts:  10,
		InitialDelay: time.Millisecond,
		Multiplier:   1.5,
	})

	connector.Run(context.Background())

	assert.Equal(t, 1, fakeEngine.HealthCalls)
	assert.True(t, fakeEngine.HasCollection(search.ProductsCollection))
	assert.Equal(t, len(SampleProducts()), fakeEngine.DocumentCount(search.ProductsCollection))
}

func TestRun_RecreatesExistingCollection(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	ctx := context.Background()

	// Leftovers from a previous run
	require.NoError(t, fakeEngine.CreateCollection(ctx, search.CollectionSchema{Name: search.ProductsCollection}))
	_, err := fakeEngine.CreateDocument(ctx, search.ProductsCollection, map[string]any{"id": "stale"})
	require.NoError(t, err)

	connector := New(fakeEngine, testutil.NewTestLogger(), Config{
		MaxAttempts:  10,
		InitialDelay: time.Millisecond,
		Multiplier:   1.5,
	})
	connector.Run(ctx)

	assert.Equal(t, len(SampleProducts()), fakeEngine.DocumentCount(search.ProductsCollection))

	_, err = fakeEngine.GetDocument(ctx, search.ProductsCollection, "stale")
	assert.Error(t, err)
}

func TestRun_GivesUpAfterMaxAttempts(t *testing.T) {
	fakeEngine := search.NewInMemoryEngine()
	fakeEngine.HealthErr = assert.AnError

	connector := New(fakeEngine, testutil.NewTestLogger(), Config{
		MaxAttempts:  10,
		InitialDelay: time.Millisecond,
		Multiplier:   1.5,
	})

	// Must return without panicking; the process starts degraded.
	connector.Run(context.Background())

	assert.Equal(t, 10, fakeEngine.HealthCalls)
	assert.False(t, fakeEngine.HasCollection(search.ProductsCollection))
}

func TestBackOff_DelaySequence(t *testing.T) {
	bo := newBackOff(DefaultConfig())

	var delays []time.Duration
	for {
		next := bo.NextBackOff()
		if next == backoff.Stop {
			break
		}
		delays = append(delays, next)
	}

	// 10 attempts means 9 sleeps: 2s, 3s, 4.5s, ...
	require.Len(t, delays, 9)
	assert.Equal(t, 2*time.Second, delays[0])
	assert.Equal(t, 3*time.Second, delays[1])
	assert.Equal(t, 4500*time.Millisecond, delays[2])
	for i := 1; i < len(delays); i++ {
		assert.InDelta(t, 1.5, float64(delays[i])/float64(delays[i-1]), 0.001)
	}
}
