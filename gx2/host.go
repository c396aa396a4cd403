package gx2

// This file declares the external collaborator contracts listed in
// spec.md section 6: the multi-core OS shim, the GPU driver queue, the
// retired-timestamp service, and the guest-supplied display-list grower.
// Implementations live outside this package (internal/coreinit provides a
// reference CoreProvider for tests and cmd/gx2ctl); gx2 only depends on
// these narrow interfaces.

// CoreProvider describes the pool's CPU-core topology: how many cores
// exist and which one is the main graphics core — the only core allowed
// to own a pool-backed command buffer.
type CoreProvider interface {
	// MainCoreID returns the core id permitted to own pool-backed buffers.
	MainCoreID() int

	// CoreCount returns the number of cores the active-buffer registry
	// must size itself for; valid core ids are [0, CoreCount).
	CoreCount() int
}

// CoreIdentifier resolves the calling goroutine's core id, mirroring the
// original implementation's thread-local coreinit::OSGetCoreId(). It is
// consulted only by the package-level singleton convenience wrappers
// (InitDefault/Default and friends); [Pool]'s own methods take the core id
// as an explicit parameter instead.
type CoreIdentifier func() int

// GPUQueue receives fully-written command buffers for asynchronous
// consumption by the GPU backend. Once the GPU retires a buffer, the
// backend is expected to call [Pool.FreeCommandBuffer] (exposed narrowly
// as [CompletionSink]) from its own completion path.
type GPUQueue interface {
	// QueueCommandBuffer enqueues d for GPU consumption. d is owned by the
	// queue until the backend frees it back through [CompletionSink].
	QueueCommandBuffer(d *Descriptor)
}

// RetirementWaiter is the blocking handshake the lease manager uses for
// backpressure: when the ring has no room, it blocks until the GPU has
// retired at least one more buffer than it had already retired.
type RetirementWaiter interface {
	// RetiredTimestamp returns the last GPU-retired timestamp.
	RetiredTimestamp() uint64

	// WaitForTimestamp blocks until RetiredTimestamp() >= t.
	WaitForTimestamp(t uint64)
}

// DisplayListGrower is the guest-supplied callback invoked when a
// display-list buffer overruns its current storage. It must return a new
// buffer and its size in bytes; returning a nil buffer or a zero size
// aborts the pool (spec.md section 7).
type DisplayListGrower func(oldBuffer []uint32, usedBytes, neededBytes uint32) (newBuffer []uint32, newSizeBytes uint32)

// CompletionSink is the narrow interface handed to the GPU backend's
// asynchronous completion path. It exposes only FreeCommandBuffer so code
// running on that path cannot reach the main-core-only allocation APIs
// ([Pool.AllocateCommandBuffer], [Pool.GetCommandBuffer], ...).
type CompletionSink interface {
	FreeCommandBuffer(d *Descriptor)
}
