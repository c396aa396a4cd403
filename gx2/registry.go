package gx2

// GetCommandBuffer returns core's active descriptor with at least size
// free words, flushing and replacing it first if there is not enough
// room. The caller writes into the returned descriptor's
// Buffer[CurSize:] and advances CurSize by the exact amount written.
func (p *Pool) GetCommandBuffer(core int, size uint32) *Descriptor {
	cur := p.activeAt(core)
	p.assertInvariant(cur != nil, "getCommandBuffer: no active buffer on core %d", core)

	if cur.CurSize+size <= cur.MaxSize {
		return cur
	}

	next := p.flushCommandBuffer(core, size)
	p.setActive(core, next)
	return next
}

// flushCommandBuffer closes out the current active descriptor on core and
// opens a new one with room for at least neededWords, branching on the
// current descriptor's mode.
func (p *Pool) flushCommandBuffer(core int, neededWords uint32) *Descriptor {
	cur := p.activeAt(core)

	if cur.DisplayList {
		p.padCommandBuffer(cur)

		p.assertInvariant(p.grower != nil, "display-list buffer overrun but no DisplayListGrower is configured")
		newBuffer, newSizeBytes := p.grower(cur.Buffer[:cur.CurSize], cur.CurSize*4, neededWords*4)
		if newBuffer == nil || newSizeBytes == 0 {
			p.abortf("unable to handle display list overrun")
		}

		cur.Buffer = newBuffer
		cur.CurSize = 0
		cur.MaxSize = newSizeBytes / 4
		return cur
	}

	p.flushActiveCommandBuffer(core)
	return p.AllocateCommandBuffer(core, neededWords)
}

// flushActiveCommandBuffer closes out core's pool-backed active buffer:
// it releases the outstanding lease, returns the unused tail of the
// buffer to the pool, and either frees the descriptor directly (if
// nothing was written) or hands it to the GPU queue.
func (p *Pool) flushActiveCommandBuffer(core int) {
	cur := p.activeAt(core)
	p.assertInvariant(cur != nil, "flushActiveCommandBuffer: no active buffer on core %d", core)
	p.assertInvariant(!cur.DisplayList, "flushActiveCommandBuffer: active buffer on core %d is a display list", core)
	p.assertInvariant(p.ring.isLeased(), "flushActiveCommandBuffer: no lease is outstanding")

	p.ring.setLeased(false)
	p.ring.returnToPool(p, cur.ringOffset, cur.CurSize, cur.MaxSize)
	cur.MaxSize = cur.CurSize
	p.observePool()

	if cur.CurSize == 0 {
		p.descs.release(cur)
		p.metrics.observeFreeList(p.descs.Depth())
	} else {
		p.gpuQueue.QueueCommandBuffer(cur)
	}

	p.setActive(core, nil)
}
