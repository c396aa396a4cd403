package gx2

import (
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestDefaultPoolOptionsIsBigEndian(t *testing.T) {
	o := defaultPoolOptions()
	if !o.bigEndianDevice {
		t.Error("defaultPoolOptions().bigEndianDevice = false, want true (matches the original console GPU)")
	}
}

func TestOptionsApplyOverDefaults(t *testing.T) {
	core := fakeCores{mainCore: 2, count: 4}
	q := &fakeQueue{}
	grower := func(old []uint32, used, needed uint32) ([]uint32, uint32) { return nil, 0 }
	logger := slog.New(slog.NewTextHandler(discardWriter{}, nil))
	reg := prometheus.NewRegistry()

	o := defaultPoolOptions()
	for _, opt := range []Option{
		WithCoreProvider(core),
		WithCoreIdentifier(func() int { return 2 }),
		WithGPUQueue(q),
		WithRetirementWaiter(q),
		WithDisplayListGrower(grower),
		WithLogger(logger),
		WithMetricsRegisterer(reg),
		WithDeviceByteOrder(false),
	} {
		opt(&o)
	}

	if o.core != core {
		t.Error("WithCoreProvider did not apply")
	}
	if o.coreIdentifier == nil || o.coreIdentifier() != 2 {
		t.Error("WithCoreIdentifier did not apply")
	}
	if o.gpuQueue != q {
		t.Error("WithGPUQueue did not apply")
	}
	if o.retirement != q {
		t.Error("WithRetirementWaiter did not apply")
	}
	if o.grower == nil {
		t.Error("WithDisplayListGrower did not apply")
	}
	if o.logger != logger {
		t.Error("WithLogger did not apply")
	}
	if o.metricsRegisterer != reg {
		t.Error("WithMetricsRegisterer did not apply")
	}
	if o.bigEndianDevice {
		t.Error("WithDeviceByteOrder(false) did not apply")
	}
}
