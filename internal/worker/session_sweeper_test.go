package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/intern-dashboard/internal/session"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(context.Context) int {
	s.calls.Add(1)
	return 1
}

func TestSessionSweeperRunsUntilCancelled(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartSessionSweeper(ctx, sweeper, 5*time.Millisecond, nil)

	require.Eventually(t, func() bool { return sweeper.calls.Load() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
	stopped := sweeper.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, sweeper.calls.Load())
}

func TestSessionSweeperDisabled(t *testing.T) {
	done := StartSessionSweeper(context.Background(), &countingSweeper{}, 0, nil)
	_, open := <-done
	assert.False(t, open)
}

func TestSessionSweeperEvictsFromManager(t *testing.T) {
	manager := session.NewManager(session.ManagerConfig{StorageKey: "k", IdleTTL: time.Nanosecond}, nil, nil, nil, nil, nil)
	manager.Acquire("a")
	manager.Acquire("b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartSessionSweeper(ctx, manager, 5*time.Millisecond, nil)

	require.Eventually(t, func() bool { return manager.Len() == 0 }, time.Second, 5*time.Millisecond)
}
