package gx2

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a [Pool] during construction. Use functional options
// to wire in the external collaborators from spec.md section 6.
//
// Example:
//
//	pool, err := gx2.New(gx2.NewHostStorage(0x40000),
//	    gx2.WithCoreProvider(core),
//	    gx2.WithGPUQueue(queue),
//	    gx2.WithRetirementWaiter(retirement),
//	)
type Option func(*poolOptions)

type poolOptions struct {
	core              CoreProvider
	coreIdentifier    CoreIdentifier
	gpuQueue          GPUQueue
	retirement        RetirementWaiter
	grower            DisplayListGrower
	logger            *slog.Logger
	metricsRegisterer prometheus.Registerer
	bigEndianDevice   bool
}

func defaultPoolOptions() poolOptions {
	return poolOptions{
		bigEndianDevice: true, // matches the original console GPU's byte order
	}
}

// WithCoreProvider supplies the pool's CPU-core topology. Required.
func WithCoreProvider(c CoreProvider) Option {
	return func(o *poolOptions) { o.core = c }
}

// WithCoreIdentifier supplies the ambient "what core am I on" lookup used
// only by the package-level singleton convenience wrappers.
func WithCoreIdentifier(fn CoreIdentifier) Option {
	return func(o *poolOptions) { o.coreIdentifier = fn }
}

// WithGPUQueue supplies the queue completed buffers are submitted to.
// Required.
func WithGPUQueue(q GPUQueue) Option {
	return func(o *poolOptions) { o.gpuQueue = q }
}

// WithRetirementWaiter supplies the blocking retired-timestamp service
// used for backpressure when the ring is full. Required.
func WithRetirementWaiter(w RetirementWaiter) Option {
	return func(o *poolOptions) { o.retirement = w }
}

// WithDisplayListGrower supplies the guest callback invoked when a
// display-list buffer overruns its storage. Optional: pools that never use
// display lists can omit it.
func WithDisplayListGrower(g DisplayListGrower) Option {
	return func(o *poolOptions) { o.grower = g }
}

// WithLogger sets a pool-specific logger, overriding the package-wide
// default returned by [Logger].
func WithLogger(l *slog.Logger) Option {
	return func(o *poolOptions) { o.logger = l }
}

// WithMetricsRegisterer registers the pool's prometheus collectors
// (ring occupancy, outstanding lease, free-list depth, wrap and
// retirement-wait counters) against reg. If omitted, the collectors are
// still updated but never exposed.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *poolOptions) { o.metricsRegisterer = reg }
}

// WithDeviceByteOrder controls whether padding's filler word is stored
// byte-swapped to emulate a big-endian GPU target reading words written by
// a little-endian host — the behavior of the original console hardware
// this pool's algorithm is modeled on. Pass false for a host/device pair
// that already share byte order.
func WithDeviceByteOrder(bigEndian bool) Option {
	return func(o *poolOptions) { o.bigEndianDevice = bigEndian }
}
