package gx2

import "sync"

// fakeCores is a minimal CoreProvider for tests that never need
// internal/coreinit's goroutine-binding machinery.
type fakeCores struct {
	mainCore int
	count    int
}

func (f fakeCores) MainCoreID() int { return f.mainCore }
func (f fakeCores) CoreCount() int  { return f.count }

// fakeQueue is a GPUQueue + RetirementWaiter test double that never blocks:
// every queued buffer is considered retired immediately, but FreeCommandBuffer
// is left for the test to call explicitly so tests can control retirement
// order.
type fakeQueue struct {
	mu      sync.Mutex
	nextTS  uint64
	retired uint64
	queued  []*Descriptor
}

func (q *fakeQueue) QueueCommandBuffer(d *Descriptor) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextTS++
	d.SubmitTime = q.nextTS
	q.queued = append(q.queued, d)
}

func (q *fakeQueue) RetiredTimestamp() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.retired
}

func (q *fakeQueue) WaitForTimestamp(t uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.retired = t
}

func (q *fakeQueue) setRetired(t uint64) {
	q.mu.Lock()
	q.retired = t
	q.mu.Unlock()
}

// newTestPool builds a fully initialized Pool with a fakeQueue collaborator,
// ready for immediate use on the main core.
func newTestPool(t interface {
	Fatalf(format string, args ...any)
}, ringWords int, coreCount int) (*Pool, *fakeQueue) {
	q := &fakeQueue{}
	storage := NewHostStorage(ringWords)
	pool, err := New(storage,
		WithCoreProvider(fakeCores{mainCore: 0, count: coreCount}),
		WithGPUQueue(q),
		WithRetirementWaiter(q),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := pool.Init(0); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return pool, q
}

// mustRecoverCorruption runs fn and reports the recovered *CorruptionError,
// or nil if fn did not panic with one.
func mustRecoverCorruption(fn func()) (err *CorruptionError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ce, ok := r.(*CorruptionError); ok {
			err = ce
			return
		}
		panic(r)
	}()
	fn()
	return nil
}
