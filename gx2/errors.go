package gx2

import "errors"

// Recoverable configuration/usage errors. Precondition violations detected
// once a pool is running are not in this list — those abort via
// [CorruptionError] instead, per spec.md section 7.
var (
	// ErrNilStorage is returned by New when no backing [Storage] is given.
	ErrNilStorage = errors.New("gx2: storage is nil")

	// ErrNilCoreProvider is returned by New when no [CoreProvider] is given.
	ErrNilCoreProvider = errors.New("gx2: core provider is nil")

	// ErrNilGPUQueue is returned by New when no [GPUQueue] is given.
	ErrNilGPUQueue = errors.New("gx2: GPU queue is nil")

	// ErrNilRetirementWaiter is returned by New when no [RetirementWaiter] is given.
	ErrNilRetirementWaiter = errors.New("gx2: retirement waiter is nil")

	// ErrNilDevice is returned by [NewDeviceBackedStorage] when device is nil.
	ErrNilDevice = errors.New("gx2: hal device is nil")

	// ErrWrongCore is returned by [Pool.Init] when called from a core other
	// than the configured main graphics core. spec.md marks this condition
	// as an abort ("initCommandBufferPool called from the wrong core"), but
	// Init runs before any ring state exists to log through, so it is
	// surfaced as a plain error instead of a [CorruptionError] panic —
	// there is no pool state yet to have corrupted.
	ErrWrongCore = errors.New("gx2: initCommandBufferPool called from a non-main core")

	// ErrAlreadyInitialized is returned by [Pool.Init] when called twice.
	ErrAlreadyInitialized = errors.New("gx2: pool already initialized")

	// ErrDefaultNotInitialized is returned by the package-level convenience
	// wrappers when no pool has been installed via [InitDefault].
	ErrDefaultNotInitialized = errors.New("gx2: no default pool initialized")
)
