package gx2

import "testing"

func TestDefaultNilBeforeInitDefault(t *testing.T) {
	defaultMu.Lock()
	saved := defaultPool
	defaultPool = nil
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultPool = saved
		defaultMu.Unlock()
	})

	if Default() != nil {
		t.Error("Default() is non-nil before InitDefault has ever run")
	}
	if _, err := GetCommandBuffer(16); err != ErrDefaultNotInitialized {
		t.Errorf("GetCommandBuffer() = %v, want ErrDefaultNotInitialized", err)
	}
}

func TestInitDefaultInstallsAndGetCommandBufferResolvesCore(t *testing.T) {
	q := &fakeQueue{}
	storage := NewHostStorage(0x1000)

	defaultMu.Lock()
	saved := defaultPool
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultPool = saved
		defaultMu.Unlock()
	})

	pool, err := InitDefault(0, storage,
		WithCoreProvider(fakeCores{mainCore: 0, count: 1}),
		WithCoreIdentifier(func() int { return 0 }),
		WithGPUQueue(q),
		WithRetirementWaiter(q),
	)
	if err != nil {
		t.Fatalf("InitDefault: %v", err)
	}
	if Default() != pool {
		t.Fatal("Default() does not return the pool installed by InitDefault")
	}

	d, err := GetCommandBuffer(16)
	if err != nil {
		t.Fatalf("GetCommandBuffer: %v", err)
	}
	if d == nil {
		t.Fatal("GetCommandBuffer returned a nil descriptor with no error")
	}
}

func TestCurrentCoreWithoutIdentifierIsNotInitialized(t *testing.T) {
	q := &fakeQueue{}
	storage := NewHostStorage(0x1000)

	defaultMu.Lock()
	saved := defaultPool
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultPool = saved
		defaultMu.Unlock()
	})

	_, err := InitDefault(0, storage,
		WithCoreProvider(fakeCores{mainCore: 0, count: 1}),
		WithGPUQueue(q),
		WithRetirementWaiter(q),
	)
	if err != nil {
		t.Fatalf("InitDefault: %v", err)
	}

	if _, err := GetCommandBuffer(16); err != ErrDefaultNotInitialized {
		t.Errorf("GetCommandBuffer() with no CoreIdentifier configured = %v, want ErrDefaultNotInitialized", err)
	}
}
