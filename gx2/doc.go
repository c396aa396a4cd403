// Package gx2 implements a GPU command-buffer pool and lease manager for a
// console-graphics compatibility layer.
//
// # Overview
//
// Guest software issues drawing commands that must be serialized into a
// contiguous stream of 32-bit words for an external GPU backend to consume
// asynchronously. A [Pool] owns a single ring of words carved out of a
// caller-supplied [Storage], hands out write leases ("command buffers") to
// the guest, reclaims them once the GPU backend retires them, and also
// supports guest-owned "display list" buffers that bypass the ring
// entirely.
//
// # Components
//
// The pool is built from a small number of cooperating pieces:
//
//   - the ring region (head/tail/skipped bookkeeping over [Storage])
//   - a lock-free free-list of [Descriptor] values
//   - the pool allocator (allocate/return/free, serialized by one mutex)
//   - the lease manager (at most one outstanding lease, blocks on GPU
//     retirement when the ring is full)
//   - the active-buffer registry (one descriptor per CPU core)
//   - display-list mode (caller-owned buffers with an overrun callback)
//
// # Concurrency
//
// [Pool] methods that are scoped to "the current core" (GetCommandBuffer,
// AllocateCommandBuffer, BeginUserCommandBuffer, EndUserCommandBuffer) take
// the core id as an explicit parameter rather than consulting thread-local
// state — callers already know which goroutine owns which core, since that
// ownership is how the single-writer-per-slot registry invariant holds.
// [Pool.FreeCommandBuffer] is the one entry point meant to be called from the
// asynchronous GPU-completion path; it is exposed narrowly through
// [CompletionSink] so that path cannot reach the main-core-only allocation
// APIs.
//
// # Failure model
//
// Precondition violations (an out-of-order free, a second outstanding
// lease, a display-list grower returning nil) are programming defects, not
// recoverable errors: they are reported through [CorruptionError] via a
// panic, after being logged at [slog.LevelError]. There is no recoverable
// error surface for those conditions — see the package's abort helpers.
package gx2
