package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/fitsync/internal/client/queue"
)

func TestMonitor_RecoversOnTransition(t *testing.T) {
	ctx := context.Background()
	results := []error{errors.New("down"), nil, nil, errors.New("down"), nil}
	step := 0
	checker := &HealthCheckerMock{
		HealthFunc: func(ctx context.Context) error {
			err := results[step]
			step++
			return err
		},
	}
	recovered := 0
	m := NewMonitor(checker, func(ctx context.Context) queue.DrainResult {
		recovered++
		return queue.DrainResult{}
	}, time.Minute, setupTestLogger())

	want := []bool{false, true, true, false, true}
	for i, online := range want {
		assert.Equal(t, online, m.Check(ctx), "check %d", i)
	}

	// восстановление только на переходах offline -> online
	assert.Equal(t, 2, recovered)
	assert.True(t, m.Online())
}

func TestMonitor_RunStopsOnCancel(t *testing.T) {
	checker := &HealthCheckerMock{
		HealthFunc: func(ctx context.Context) error { return nil },
	}
	recovered := make(chan struct{}, 1)
	m := NewMonitor(checker, func(ctx context.Context) queue.DrainResult {
		recovered <- struct{}{}
		return queue.DrainResult{}
	}, 5*time.Millisecond, setupTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case <-recovered:
	case <-time.After(time.Second):
		t.Fatal("monitor did not recover on first successful check")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
	assert.GreaterOrEqual(t, len(checker.HealthCalls()), 1)
}
