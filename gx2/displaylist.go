package gx2

// QueueDisplayList is a fire-and-forget submission of a preformed,
// caller-owned buffer: it acquires a descriptor, marks it as a display
// list of exactly size words, and queues it directly. It never touches
// the active-buffer registry.
func (p *Pool) QueueDisplayList(buffer []uint32, size uint32) {
	d := p.descs.acquire()
	d.Buffer = buffer
	d.CurSize = size
	d.MaxSize = size
	d.DisplayList = true
	d.SubmitTime = 0
	d.ringOffset = -1

	p.gpuQueue.QueueCommandBuffer(d)
}

// BeginUserCommandBuffer opens a build-it-yourself session over a
// caller-owned buffer. On the main graphics core it first drains any
// pending pool-backed work via flushActiveCommandBuffer. core's registry
// slot must be empty.
func (p *Pool) BeginUserCommandBuffer(core int, buffer []uint32, size uint32) {
	if core == p.core.MainCoreID() {
		p.flushActiveCommandBuffer(core)
	}

	d := p.descs.acquire()
	d.Buffer = buffer
	d.CurSize = 0
	d.MaxSize = size
	d.DisplayList = true
	d.SubmitTime = 0
	d.ringOffset = -1

	p.assertInvariant(p.activeAt(core) == nil, "beginUserCommandBuffer: a display list is already active on core %d", core)
	p.setActive(core, d)
}

// EndUserCommandBuffer closes the display-list session opened by
// [Pool.BeginUserCommandBuffer]. buffer must match the session's current
// buffer. It pads the buffer, releases the descriptor, and — on the main
// graphics core only — immediately opens a fresh 256-word pool-backed
// lease as the new active buffer. It returns the number of words actually
// written (after padding), so the caller can tell the GPU how much of the
// buffer is real.
func (p *Pool) EndUserCommandBuffer(core int, buffer []uint32) uint32 {
	cur := p.activeAt(core)
	p.assertInvariant(cur != nil, "endUserCommandBuffer: no active buffer on core %d", core)
	p.assertInvariant(cur.DisplayList, "endUserCommandBuffer: active buffer on core %d is not a display list", core)
	p.assertInvariant(sameUnderlying(cur.Buffer, buffer), "endUserCommandBuffer: buffer pointer mismatch on core %d", core)

	p.padCommandBuffer(cur)
	used := cur.CurSize

	p.descs.release(cur)
	p.metrics.observeFreeList(p.descs.Depth())
	p.setActive(core, nil)

	if core == p.core.MainCoreID() {
		p.setActive(core, p.AllocateCommandBuffer(core, InitialLeaseWords))
	}

	return used
}

// GetUserCommandBuffer returns core's active buffer and its capacity if
// it is currently a display list, or ok=false if it is pool-backed. It
// aborts if core has no active buffer at all.
func (p *Pool) GetUserCommandBuffer(core int) (buffer []uint32, maxSize uint32, ok bool) {
	cur := p.activeAt(core)
	p.assertInvariant(cur != nil, "getUserCommandBuffer: no active buffer on core %d", core)

	if !cur.DisplayList {
		return nil, 0, false
	}
	return cur.Buffer, cur.MaxSize, true
}
