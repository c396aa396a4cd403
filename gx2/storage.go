package gx2

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Storage is the backing word range the ring is carved out of. Implement
// it to back the pool with plain host memory ([HostStorage], the default)
// or a real GPU buffer ([DeviceStorage]).
type Storage interface {
	// Words returns the full backing slice. Its length is the ring's
	// capacity in 32-bit words and must not change after the pool is
	// initialized.
	Words() []uint32
}

// HostStorage is a plain host-memory ring backing.
type HostStorage struct {
	words []uint32
}

// NewHostStorage allocates a host-memory backing of the given word count.
func NewHostStorage(words int) *HostStorage {
	return &HostStorage{words: make([]uint32, words)}
}

// Words implements [Storage].
func (s *HostStorage) Words() []uint32 { return s.words }

// DeviceStorage pairs the ring's words with a GPU buffer of the same size,
// created with MapWrite | CopyDst usage and mapped at creation.
//
// Mirrors gg/internal/gpu/buffer.go's CreateBufferSimple/CreateStagingBuffer:
// the hal.Buffer handle is retained for device-side binding and lifecycle
// (Close/DestroyBuffer). The CPU-visible words returned by Words live in an
// ordinary Go slice, separate from the GPU buffer; nothing in this package
// copies them into it.
type DeviceStorage struct {
	words  []uint32
	device hal.Device
	buf    hal.Buffer
}

// NewDeviceBackedStorage creates a device-backed ring storage of the given
// word count on device.
func NewDeviceBackedStorage(device hal.Device, words int) (*DeviceStorage, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if words <= 0 {
		return nil, fmt.Errorf("gx2: words must be positive, got %d", words)
	}

	desc := &hal.BufferDescriptor{
		Label:            "gx2-command-ring",
		Size:             uint64(words) * 4,
		Usage:            gputypes.BufferUsageMapWrite | gputypes.BufferUsageCopyDst,
		MappedAtCreation: true,
	}

	buf, err := device.CreateBuffer(desc)
	if err != nil {
		return nil, fmt.Errorf("gx2: create device-backed ring storage: %w", err)
	}

	return &DeviceStorage{
		words:  make([]uint32, words),
		device: device,
		buf:    buf,
	}, nil
}

// Words implements [Storage].
func (s *DeviceStorage) Words() []uint32 { return s.words }

// Close releases the underlying GPU buffer. The storage must not be used
// by a live pool afterward.
func (s *DeviceStorage) Close() {
	if s.buf != nil {
		s.device.DestroyBuffer(s.buf)
		s.buf = nil
	}
}
