// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package wgpu provides a GPU renderer backend on the gogpu/wgpu HAL.
//
// The backend registers itself at import time:
//
//	import _ "github.com/novage/novage/backend/wgpu"
//
// Rendering is offscreen: batches are tessellated into triangles, drawn
// into a BGRA8 color texture, and read back into the renderer's CPU
// pixel target after each flush. The display layer presents the pixels
// through its window.
//
// The backend can either open its own Vulkan device or share one from
// an external provider (SetDeviceProvider), so an application that
// already holds a device does not end up with two.
package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan backend with the HAL.
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/novage/novage"
	"github.com/novage/novage/backend"
	"github.com/novage/novage/render"
)

// Name is the backend identifier in the registry.
const Name = "wgpu"

// ErrNoAdapter is returned when no usable GPU adapter is found.
var ErrNoAdapter = errors.New("wgpu: no GPU adapter available")

func init() {
	backend.Register(Name, backend.PriorityGPU, func() backend.RenderBackend {
		return NewBackend()
	}, Available)
}

// Available reports whether the Vulkan HAL backend is compiled in.
// Adapter enumeration is deferred to Init; probing devices at registry
// time would pay GPU startup cost on every lookup.
func Available() bool {
	_, ok := hal.GetBackend(gputypes.BackendVulkan)
	return ok
}

// Backend is a GPU rendering backend. It owns (or borrows) the device
// and queue shared by all renderers it creates.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	// externalDevice is true when the device came from a provider;
	// borrowed resources are not destroyed on Close.
	externalDevice bool
	initialized    bool
}

// NewBackend creates an uninitialized GPU backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return Name }

// Init opens a GPU device unless one was already supplied via
// SetDeviceProvider. Init is idempotent.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if b.device != nil {
		b.initialized = true
		return nil
	}

	halBackend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("%w: vulkan backend not compiled in", ErrNoAdapter)
	}
	instance, err := halBackend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return ErrNoAdapter
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
		return fmt.Errorf("wgpu: open device: %w", err)
	}

	b.instance = instance
	b.device = openDev.Device
	b.queue = openDev.Queue
	b.initialized = true
	novage.Logger().Info("wgpu: backend initialized", "adapter", selected.Info.Name)
	return nil
}

// SetDeviceProvider switches the backend to a shared GPU device from an
// external provider. The provider must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue; gpucontext's
// DeviceProvider satisfies this. Must be called before Init.
func (b *Backend) SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("wgpu: provider HalQueue is not hal.Queue")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.externalDevice && b.device != nil {
		b.device.Destroy()
	}
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
	b.device = device
	b.queue = queue
	b.externalDevice = true
	novage.Logger().Debug("wgpu: using shared GPU device")
	return nil
}

// Close releases the device and instance if the backend owns them.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.externalDevice {
		if b.device != nil {
			b.device.Destroy()
		}
		if b.instance != nil {
			b.instance.Destroy()
		}
	}
	b.device = nil
	b.queue = nil
	b.instance = nil
	b.externalDevice = false
	b.initialized = false
}

// NewRenderer creates a GPU renderer with an offscreen target of the
// given pixel dimensions.
func (b *Backend) NewRenderer(width, height int) (render.Renderer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid dimensions %dx%d", width, height)
	}
	return newRenderer(b.device, b.queue, width, height)
}

var _ backend.RenderBackend = (*Backend)(nil)
