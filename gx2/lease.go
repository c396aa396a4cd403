package gx2

// AllocateCommandBuffer requests a fresh pool-backed lease of at least
// wantedWords, blocking on GPU retirement if the ring has no room. It must
// be called only from the main graphics core and only when no lease is
// currently outstanding.
//
// Calling it from a non-main core is the one documented soft failure in
// spec.md: it logs a warning and returns nil rather than aborting, since
// correct guest usage never reaches this path.
func (p *Pool) AllocateCommandBuffer(core int, wantedWords uint32) *Descriptor {
	if core != p.core.MainCoreID() {
		p.logger().Warn("allocateCommandBuffer called from non-main core", "core", core, "mainCore", p.core.MainCoreID())
		return nil
	}

	p.assertInvariant(!p.ring.isLeased(), "allocateCommandBuffer called while a lease is already outstanding")

	for {
		offset, granted, ok := p.ring.allocateFromPool(p, int(wantedWords))
		if ok {
			d := p.descs.acquire()
			d.Buffer = p.storage.Words()[offset : offset+granted : offset+granted]
			d.ringOffset = offset
			d.CurSize = 0
			d.MaxSize = uint32(granted)
			d.DisplayList = false
			d.SubmitTime = 0

			p.ring.setLeased(true)
			p.observePool()
			return d
		}

		p.metrics.leaseWaited()
		last := p.retirement.RetiredTimestamp()
		p.retirement.WaitForTimestamp(last + 1)
	}
}

// FreeCommandBuffer is called by the GPU backend's completion path once it
// has retired d. It returns the underlying ring range to the pool (unless
// d is a display-list buffer, which was never pool-backed) and releases d
// to the free-list. Implements [CompletionSink].
func (p *Pool) FreeCommandBuffer(d *Descriptor) {
	p.assertInvariant(d.CurSize == d.MaxSize, "freeCommandBuffer: curSize (%d) != maxSize (%d)", d.CurSize, d.MaxSize)

	if !d.DisplayList {
		p.ring.freeToPool(p, d.ringOffset, d.MaxSize)
		p.observePool()
	}

	p.descs.release(d)
	p.metrics.observeFreeList(p.descs.Depth())
}

// observePool refreshes the ring/lease gauges after an allocator
// operation. Cheap enough to call unconditionally from the hot path.
func (p *Pool) observePool() {
	head, tail, _, capacity, leased := p.ring.snapshot()
	p.metrics.observeRing(head, tail, capacity)
	p.metrics.setLeaseOutstanding(leased)
}
