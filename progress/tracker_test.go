package progress

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker(t *testing.T) {
	tr := NewTracker(10)

	assert.Equal(t, uint64(0), tr.Epochs())
	assert.True(t, math.IsNaN(tr.Modify()))
	assert.False(t, tr.Finished())

	tr.ObserveEpoch(4)
	tr.ObserveModify(0.25)

	s := tr.Snapshot()
	assert.Equal(t, uint64(5), s.Epochs)
	assert.Equal(t, uint64(10), s.Limit)
	assert.Equal(t, 0.25, s.Modify)
	assert.InDelta(t, 0.5, s.Fraction(), 1e-12)
}

func TestFinishIsIdempotent(t *testing.T) {
	tr := NewTracker(1)
	boom := errors.New("boom")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Finish(boom)
		}()
	}
	wg.Wait()
	tr.Finish(nil)

	select {
	case <-tr.Done():
	default:
		t.Fatal("latch not closed")
	}
	assert.ErrorIs(t, tr.Err(), boom)
	assert.True(t, tr.Finished())
}

func TestPoll(t *testing.T) {
	t.Run("returns finish error", func(t *testing.T) {
		tr := NewTracker(3)
		boom := errors.New("boom")

		go func() {
			for e := uint64(0); e < 3; e++ {
				tr.ObserveModify(1 / float64(e+1))
				tr.ObserveEpoch(e)
				time.Sleep(time.Millisecond)
			}
			tr.Finish(boom)
		}()

		var last Snapshot
		err := Poll(context.Background(), tr, time.Millisecond, func(s Snapshot) { last = s })

		require.ErrorIs(t, err, boom)
		assert.True(t, last.Finished)
		assert.Equal(t, uint64(3), last.Epochs)
	})

	t.Run("stops on context", func(t *testing.T) {
		tr := NewTracker(3)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := Poll(ctx, tr, time.Hour, func(Snapshot) {})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBar(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want string
	}{
		{"empty", Snapshot{Limit: 10, Modify: math.NaN()}, "  0.0% |          | -"},
		{"half", Snapshot{Epochs: 5, Limit: 10, Modify: 0.5}, " 50.0% |*****     | 5.000e-01"},
		{"full", Snapshot{Epochs: 12, Limit: 10, Modify: 0}, "100.0% |**********| 0.000e+00"},
		{"no limit", Snapshot{Modify: 1}, "  0.0% |          | 1.000e+00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bar(tt.snap, 10))
		})
	}

	t.Run("negative width", func(t *testing.T) {
		assert.Equal(t, " 50.0% || 5.000e-01", Bar(Snapshot{Epochs: 5, Limit: 10, Modify: 0.5}, -3))
	})
}
