package progress

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Tracker records solver progress. The zero value is not usable; call
// NewTracker.
type Tracker struct {
	limit  uint64
	epochs atomic.Uint64
	modify atomic.Uint64

	mu       sync.Mutex
	done     chan struct{}
	finished bool
	err      error
}

// NewTracker returns a Tracker for a run of at most limit epochs.
func NewTracker(limit uint64) *Tracker {
	t := &Tracker{
		limit: limit,
		done:  make(chan struct{}),
	}
	t.modify.Store(math.Float64bits(math.NaN()))
	return t
}

// ObserveEpoch records that the epoch with the given zero-based index has
// completed. It matches the solver's epoch callback signature.
func (t *Tracker) ObserveEpoch(epoch uint64) {
	t.epochs.Store(epoch + 1)
}

// ObserveModify records the total modification of the last epoch. It matches
// the solver's modification callback signature.
func (t *Tracker) ObserveModify(modify float64) {
	t.modify.Store(math.Float64bits(modify))
}

// Epochs returns the number of completed epochs.
func (t *Tracker) Epochs() uint64 { return t.epochs.Load() }

// Modify returns the last reported modification, or NaN before the first
// epoch completes.
func (t *Tracker) Modify() float64 { return math.Float64frombits(t.modify.Load()) }

// Limit returns the epoch limit.
func (t *Tracker) Limit() uint64 { return t.limit }

// Finish closes the latch and records err. Calls after the first are ignored.
func (t *Tracker) Finish(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return
	}
	t.finished = true
	t.err = err
	close(t.done)
}

// Done returns a channel closed by Finish.
func (t *Tracker) Done() <-chan struct{} { return t.done }

// Err returns the error passed to Finish.
func (t *Tracker) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Finished reports whether Finish has been called.
func (t *Tracker) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Snapshot is a point-in-time view of a Tracker.
type Snapshot struct {
	Epochs   uint64
	Limit    uint64
	Modify   float64
	Finished bool
}

// Fraction returns completed epochs over the limit, capped at 1.
func (s Snapshot) Fraction() float64 {
	if s.Limit == 0 {
		return 0
	}
	return math.Min(1, float64(s.Epochs)/float64(s.Limit))
}

// Snapshot returns the current state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		Epochs:   t.Epochs(),
		Limit:    t.limit,
		Modify:   t.Modify(),
		Finished: t.Finished(),
	}
}

// Poll calls render every interval until the tracker finishes or ctx is done.
// render is called one last time after Finish. Poll returns the error passed
// to Finish, or ctx.Err().
func Poll(ctx context.Context, t *Tracker, interval time.Duration, render func(Snapshot)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Done():
			render(t.Snapshot())
			return t.Err()
		case <-ticker.C:
			render(t.Snapshot())
		}
	}
}

// Bar renders s as a fixed-width text bar. A negative width renders an empty
// bar.
//
//	42.0% |****************                      | 1.234e-03
func Bar(s Snapshot, width int) string {
	width = max(width, 0)
	filled := int(s.Fraction() * float64(width))

	var b strings.Builder
	fmt.Fprintf(&b, "%5.1f%% |", s.Fraction()*100)
	b.WriteString(strings.Repeat("*", filled))
	b.WriteString(strings.Repeat(" ", width-filled))
	b.WriteString("| ")
	if math.IsNaN(s.Modify) {
		b.WriteString("-")
	} else {
		fmt.Fprintf(&b, "%.3e", s.Modify)
	}
	return b.String()
}
