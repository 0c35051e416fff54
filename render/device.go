package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import the Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/pane"
)

// Device bundles the hal device and queue the renderer draws with, plus the
// instance when this package created it. There is exactly one Device per
// process in normal operation; it is owned by whoever created it and passed
// by reference to the renderer and window.
type Device struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	owned    bool
}

// Open brings up a GPU device from scratch: backend, instance, adapter,
// device, queue. Discrete GPUs are preferred, then integrated, then whatever
// the backend enumerates first.
//
// Open failing means the machine cannot present anything; callers should
// treat the error as fatal and abort before opening a window.
func Open() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("%w: create instance: %w", ErrInit, err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: open device: %w", ErrInit, err)
	}

	pane.Logger().Info("GPU device selected", "adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		owned:    true,
	}, nil
}

// FromProvider wraps a GPU device shared by an external owner, typically the
// window's GPU context provider. The provider must expose the hal handles via
// HalDevice() any and HalQueue() any. The returned Device does not own the
// underlying resources and Close leaves them alive.
func FromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider does not expose HAL types", ErrInit)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrInit)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrInit)
	}
	return &Device{device: device, queue: queue}, nil
}

// HAL returns the raw device and queue handles.
func (d *Device) HAL() (hal.Device, hal.Queue) {
	return d.device, d.queue
}

// Close releases the device and instance if this Device created them.
// Shared devices (FromProvider) are left untouched. Safe to call twice.
func (d *Device) Close() {
	if d.owned {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
	d.owned = false
}
