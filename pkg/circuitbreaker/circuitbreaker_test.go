package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestBreakerOpensAfterMaxFailures(t *testing.T) {
	cb := New(Settings{Name: "redis", MaxFailures: 3, Timeout: time.Minute})

	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Execute(func() error { return errBoom }), errBoom)
	}

	// Now failing fast: the wrapped call never runs.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	require.Error(t, err)
	assert.False(t, called)
	assert.Contains(t, err.Error(), "redis")
}

func TestBreakerRecoversAfterTimeout(t *testing.T) {
	cb := New(Settings{Name: "redis", MaxFailures: 1, Timeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	require.Error(t, cb.Execute(func() error { return nil })) // still open

	time.Sleep(15 * time.Millisecond)

	// Probe call goes through and closes the breaker.
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.NoError(t, cb.Execute(func() error { return nil }))
}

func TestBreakerReopensOnFailedProbe(t *testing.T) {
	cb := New(Settings{Name: "redis", MaxFailures: 1, Timeout: 10 * time.Millisecond})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	time.Sleep(15 * time.Millisecond)
	require.Error(t, cb.Execute(func() error { return errBoom }))

	called := false
	require.Error(t, cb.Execute(func() error { called = true; return nil }))
	assert.False(t, called)
}

func TestBreakerResetsFailureCountOnSuccess(t *testing.T) {
	cb := New(Settings{Name: "redis", MaxFailures: 2, Timeout: time.Minute})

	require.Error(t, cb.Execute(func() error { return errBoom }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errBoom }))

	// Two non-consecutive failures never open the breaker.
	called := false
	require.NoError(t, cb.Execute(func() error { called = true; return nil }))
	assert.True(t, called)
}
