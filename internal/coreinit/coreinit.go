// Package coreinit provides a reference implementation of the multi-core
// OS shim gx2 treats as an external collaborator (spec.md section 1 lists
// it among the components referenced only via their contracts). It mirrors
// the original Espresso CPU's 3-core topology closely enough for tests and
// cmd/gx2ctl to exercise the pool, but it is not a production core-affinity
// scheduler.
package coreinit

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
)

// DefaultCoreCount matches the original console's 3-core topology.
const DefaultCoreCount = 3

// DefaultMainCore is core 0, the original's main graphics core.
const DefaultMainCore = 0

// Provider implements gx2.CoreProvider and gx2.CoreIdentifier by tracking
// which core each goroutine has bound itself to.
type Provider struct {
	mainCore  int
	coreCount int

	mu    sync.Mutex
	bound map[int64]int
}

// New creates a Provider with the given main core id and core count.
func New(mainCore, coreCount int) *Provider {
	return &Provider{
		mainCore:  mainCore,
		coreCount: coreCount,
		bound:     make(map[int64]int),
	}
}

// NewDefault creates a Provider matching the original 3-core topology.
func NewDefault() *Provider {
	return New(DefaultMainCore, DefaultCoreCount)
}

// MainCoreID implements gx2.CoreProvider.
func (p *Provider) MainCoreID() int { return p.mainCore }

// CoreCount implements gx2.CoreProvider.
func (p *Provider) CoreCount() int { return p.coreCount }

// BindCore associates the calling goroutine with core. Call it once at the
// top of each worker goroutine before it touches the pool.
func (p *Provider) BindCore(core int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bound[goroutineID()] = core
}

// UnbindCore releases the calling goroutine's core binding.
func (p *Provider) UnbindCore() {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.bound, goroutineID())
}

// CoreID implements gx2.CoreIdentifier. It returns -1 if the calling
// goroutine has not called BindCore.
func (p *Provider) CoreID() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id, ok := p.bound[goroutineID()]; ok {
		return id
	}
	return -1
}

// goroutineID extracts the runtime's internal goroutine id from the
// "goroutine N [...]" header of a stack trace. This is a well-known, if
// slightly hacky, substitute for goroutine-local storage, adequate for a
// reference/test shim; a production core-affinity scheduler should track
// binding explicitly (e.g. one dedicated goroutine per OS thread pinned
// with runtime.LockOSThread) rather than parsing the runtime stack.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}
