package gx2

import (
	"fmt"
	"log/slog"
	"math/bits"
	"sync"
	"unsafe"
)

// FillerWord is the padding word written when aligning a buffer to a
// 4-word (16-byte) boundary.
const FillerWord uint32 = 0xBEEF2929

// Pool is the command-buffer pool and lease manager described by
// spec.md: a single ring of words, a free-list of descriptors, and one
// active-buffer slot per CPU core. Construct one with [New] and call
// [Pool.Init] once, from the main graphics core, before any other method.
//
// Design note: spec.md explicitly permits bundling the ring, its mutex,
// the descriptor free-list, and the per-core active-buffer array into a
// single context object passed through every entry point, which is what
// Pool does. The package-level InitDefault/Default wrappers recreate the
// original's parameterless API shape for callers that want a classic
// process-wide singleton.
type Pool struct {
	storage Storage
	ring    *ring
	descs   freeList

	core           CoreProvider
	coreIdentifier CoreIdentifier
	gpuQueue       GPUQueue
	retirement     RetirementWaiter
	grower         DisplayListGrower
	log            *slog.Logger
	metrics        *metrics

	fillerWord uint32

	mu          sync.Mutex // guards active and initialized
	active      []*Descriptor
	initialized bool
}

// New constructs a Pool over storage. The pool is not usable until
// [Pool.Init] is called.
func New(storage Storage, opts ...Option) (*Pool, error) {
	if storage == nil {
		return nil, ErrNilStorage
	}

	o := defaultPoolOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.core == nil {
		return nil, ErrNilCoreProvider
	}
	if o.gpuQueue == nil {
		return nil, ErrNilGPUQueue
	}
	if o.retirement == nil {
		return nil, ErrNilRetirementWaiter
	}

	log := o.logger
	if log == nil {
		log = Logger()
	}

	filler := FillerWord
	if o.bigEndianDevice {
		filler = bits.ReverseBytes32(FillerWord)
	}

	return &Pool{
		storage:        storage,
		core:           o.core,
		coreIdentifier: o.coreIdentifier,
		gpuQueue:       o.gpuQueue,
		retirement:     o.retirement,
		grower:         o.grower,
		log:            log,
		metrics:        newMetrics(o.metricsRegisterer),
		fillerWord:     filler,
	}, nil
}

func (p *Pool) logger() *slog.Logger {
	if p.log != nil {
		return p.log
	}
	return Logger()
}

// Init initializes the ring over storage's full capacity and requests the
// first 256-word lease to become the main core's initial active buffer.
// It must be called exactly once, from the main graphics core.
func (p *Pool) Init(callerCore int) error {
	p.mu.Lock()
	if p.initialized {
		p.mu.Unlock()
		return ErrAlreadyInitialized
	}
	if callerCore != p.core.MainCoreID() {
		p.mu.Unlock()
		return ErrWrongCore
	}

	p.ring = newRing(len(p.storage.Words()))
	p.active = make([]*Descriptor, p.core.CoreCount())
	p.initialized = true
	p.mu.Unlock()

	p.logger().Info("command buffer pool initialized", "words", len(p.storage.Words()), "mainCore", callerCore)

	d := p.AllocateCommandBuffer(callerCore, InitialLeaseWords)
	p.setActive(callerCore, d)
	return nil
}

// Close releases any device-backed storage. It does not reset the pool's
// bookkeeping; a Pool is not meant to be reused after Close.
func (p *Pool) Close() {
	if closer, ok := p.storage.(interface{ Close() }); ok {
		closer.Close()
	}
	p.logger().Info("command buffer pool closed")
}

func (p *Pool) activeAt(core int) *Descriptor {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active[core]
}

func (p *Pool) setActive(core int, d *Descriptor) {
	p.mu.Lock()
	p.active[core] = d
	p.mu.Unlock()
}

// padCommandBuffer pads d to a 4-word (16-byte) boundary with
// [FillerWord], stored in the configured device byte order. Exported as
// [Pool.PadCommandBuffer] because the original exposes this as a public,
// idempotent operation, not just an internal flush step.
func (p *Pool) padCommandBuffer(d *Descriptor) {
	aligned := alignUp4(d.CurSize)
	p.assertInvariant(aligned <= d.MaxSize, "padCommandBuffer: aligned size %d exceeds max size %d", aligned, d.MaxSize)
	for d.CurSize < aligned {
		d.Buffer[d.CurSize] = p.fillerWord
		d.CurSize++
	}
}

// PadCommandBuffer pads d to a 4-word alignment boundary. Safe to call
// even if d is already aligned.
func (p *Pool) PadCommandBuffer(d *Descriptor) {
	p.padCommandBuffer(d)
}

func alignUp4(v uint32) uint32 {
	return (v + 3) &^ 3
}

// sameUnderlying reports whether a and b are slices over the same backing
// array at the same offset, the Go analogue of the original's raw
// pointer-equality check in endUserCommandBuffer.
func sameUnderlying(a, b []uint32) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == 0 && len(b) == 0
	}
	return unsafe.SliceData(a) == unsafe.SliceData(b)
}

// String returns a short diagnostic summary of the pool's ring state, for
// logging and cmd/gx2ctl's inspect subcommand.
func (p *Pool) String() string {
	if p.ring == nil {
		return "gx2.Pool{uninitialized}"
	}
	head, tail, skipped, capacity, leased := p.ring.snapshot()
	return fmt.Sprintf("gx2.Pool{head=%#x tail=%#x skipped=%#x capacity=%#x leased=%t freelist=%d}",
		head, tail, skipped, capacity, leased, p.descs.Depth())
}
