package gx2

import "sync"

// Package-level singleton convenience wrappers, recreating the original
// implementation's parameterless API shape (spec.md section 9's design
// note explicitly permits this) for callers that want classic
// process-wide global state instead of threading a *Pool through their
// own code. Pool itself never uses these; they are a thin layer on top.

var (
	defaultMu   sync.RWMutex
	defaultPool *Pool
)

// InitDefault constructs a pool exactly like [New], installs it as the
// package-wide default, and calls [Pool.Init] using callerCore. It must
// be called from the main graphics core.
func InitDefault(callerCore int, storage Storage, opts ...Option) (*Pool, error) {
	pool, err := New(storage, opts...)
	if err != nil {
		return nil, err
	}
	if err := pool.Init(callerCore); err != nil {
		return nil, err
	}

	defaultMu.Lock()
	defaultPool = pool
	defaultMu.Unlock()

	return pool, nil
}

// Default returns the pool installed by [InitDefault], or nil if none has
// been installed yet.
func Default() *Pool {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultPool
}

// currentCore resolves the calling goroutine's core id through the
// default pool's configured [CoreIdentifier].
func currentCore() (int, error) {
	p := Default()
	if p == nil {
		return 0, ErrDefaultNotInitialized
	}
	if p.coreIdentifier == nil {
		return 0, ErrDefaultNotInitialized
	}
	return p.coreIdentifier(), nil
}

// GetCommandBuffer is the parameterless convenience form of
// [Pool.GetCommandBuffer], resolving the current core through the default
// pool's [CoreIdentifier].
func GetCommandBuffer(size uint32) (*Descriptor, error) {
	p := Default()
	if p == nil {
		return nil, ErrDefaultNotInitialized
	}
	core, err := currentCore()
	if err != nil {
		return nil, err
	}
	return p.GetCommandBuffer(core, size), nil
}
