package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/attendance-backend/internal/service"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) RefreshOverdueSnapshot(context.Context) *service.OverdueReport {
	r.calls.Add(1)
	return &service.OverdueReport{ThresholdDays: 14}
}

func TestOverdueWorkerScansOnStart(t *testing.T) {
	refresher := &countingRefresher{}
	w := NewOverdueWorker(refresher, "0 6 * * *", nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool { return refresher.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestOverdueWorkerRejectsBadSchedule(t *testing.T) {
	refresher := &countingRefresher{}
	w := NewOverdueWorker(refresher, "not a schedule", time.UTC, zerolog.Nop())

	err := w.Start(context.Background())
	assert.Error(t, err)
	assert.Zero(t, refresher.calls.Load())
}
