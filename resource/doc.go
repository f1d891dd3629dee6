// Package resource bounds the memory and IO a training run may use.
//
// The Controller provides two resource types:
//
//   - Memory: the byte budget kernel caches are charged against (non-blocking,
//     fail-fast; a denied cache falls back to on-demand kernel evaluation)
//   - IO: a token bucket that throttles artifact and snapshot writes
//
// # Memory
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 256 << 20, // shared by every concurrent Fit
//	})
//	trainer := svmgo.NewTrainer(svmgo.WithResourceController(rc))
//
// # IO
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 8 << 20,
//	})
//	w := resource.NewRateLimitedWriter(ctx, file, rc)
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
