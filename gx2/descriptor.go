package gx2

import "sync/atomic"

// Descriptor is the metadata record for a command buffer, independent of
// its backing storage. It is obtained from the free-list (or freshly
// allocated when the list is empty), populated by the lease manager or
// display-list entry points, handed to the GPU queue, and eventually
// returned through [Pool.FreeCommandBuffer].
//
// A Descriptor is, at any instant, in exactly one of: the free-list, a
// single core's slot in the active-buffer registry, or in flight with the
// GPU queue. Higher-level rules in [Pool] serialize every transition
// between those places.
type Descriptor struct {
	// Buffer is the word range the guest writes into, Buffer[CurSize:].
	// For a pool-backed descriptor it is a slice over the ring's Storage;
	// for a display-list descriptor it is caller-owned memory.
	Buffer []uint32

	// CurSize is the number of words written so far.
	CurSize uint32

	// MaxSize is the number of words reserved.
	MaxSize uint32

	// DisplayList is true for caller-owned buffers that bypass the ring.
	DisplayList bool

	// SubmitTime is assigned by the GPU queue once the buffer is
	// submitted; this package only resets it to 0 when it populates a
	// descriptor.
	SubmitTime uint64

	// ringOffset is this descriptor's position in the ring's word space,
	// valid only when DisplayList is false. -1 means "not pool-backed".
	ringOffset int

	// next links free-list nodes. Only ever mutated by the goroutine that
	// currently owns the node (the one that just popped or is about to
	// push it), never concurrently with another mutator of the same node.
	next *Descriptor
}

// freeList is a lock-free LIFO of reusable [Descriptor] values, backed by
// a single atomic head pointer. Nodes are never destructively freed after
// creation, only ever returned to the list — an unbounded LIFO is
// acceptable here because descriptors are rarely, if ever, destroyed.
type freeList struct {
	head  atomic.Pointer[Descriptor]
	depth atomic.Int64 // approximate list length, for metrics only
}

// acquire pops the head of the list via compare-and-swap, retrying on
// contention. If the list is empty, it allocates a fresh descriptor.
func (l *freeList) acquire() *Descriptor {
	for {
		top := l.head.Load()
		if top == nil {
			return &Descriptor{ringOffset: -1}
		}
		next := top.next
		if l.head.CompareAndSwap(top, next) {
			top.next = nil
			l.depth.Add(-1)
			return top
		}
	}
}

// release pushes d onto the head of the list via compare-and-swap,
// retrying on contention. The caller must not touch d again afterward.
func (l *freeList) release(d *Descriptor) {
	for {
		top := l.head.Load()
		d.next = top
		if l.head.CompareAndSwap(top, d) {
			l.depth.Add(1)
			return
		}
	}
}

// Depth returns the free-list's approximate current length.
func (l *freeList) Depth() int64 {
	return l.depth.Load()
}
