// Package progress shares training progress between the solver goroutine and
// an observer.
//
// A Tracker holds the last reported epoch and modification as atomics, so the
// solver never blocks on a reader. Completion is a one-shot latch: Finish
// closes the Done channel exactly once and records the final error.
//
//	tr := progress.NewTracker(epochLimit)
//	go func() { _, err := trainer.Fit(ctx, m); tr.Finish(err) }()
//	_ = progress.Poll(ctx, tr, 50*time.Millisecond, func(s progress.Snapshot) {
//	    fmt.Fprint(os.Stderr, "\r", progress.Bar(s, 40))
//	})
package progress
