// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"errors"
	"testing"

	"github.com/novage/novage/render"
)

// fakeBackend is a minimal RenderBackend for registry tests.
type fakeBackend struct {
	name        string
	initialized bool
}

func (f *fakeBackend) Name() string { return f.name }
func (f *fakeBackend) Init() error  { f.initialized = true; return nil }
func (f *fakeBackend) Close()       { f.initialized = false }
func (f *fakeBackend) NewRenderer(w, h int) (render.Renderer, error) {
	return render.NewSoftwareRenderer(w, h), nil
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", 50, func() RenderBackend { return &fakeBackend{name: "fake"} }, nil)

	b, err := r.Get("fake")
	if err != nil {
		t.Fatalf("Get(fake) = %v", err)
	}
	if b.Name() != "fake" {
		t.Errorf("Name() = %q, want %q", b.Name(), "fake")
	}
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Get("missing")
	if !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Get(missing) = %v, want ErrNotRegistered", err)
	}
}

func TestRegistryGetUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("gpu", PriorityGPU, func() RenderBackend { return &fakeBackend{name: "gpu"} },
		func() bool { return false })

	_, err := r.Get("gpu")
	if !errors.Is(err, ErrNoneAvailable) {
		t.Errorf("Get(unavailable) = %v, want ErrNoneAvailable", err)
	}
}

func TestRegistryDefaultPriority(t *testing.T) {
	r := NewRegistry()
	r.Register("low", 10, func() RenderBackend { return &fakeBackend{name: "low"} }, nil)
	r.Register("high", 100, func() RenderBackend { return &fakeBackend{name: "high"} }, nil)

	b, err := r.Default()
	if err != nil {
		t.Fatalf("Default() = %v", err)
	}
	if b.Name() != "high" {
		t.Errorf("Default() picked %q, want %q", b.Name(), "high")
	}
}

func TestRegistryDefaultSkipsUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("gpu", PriorityGPU, func() RenderBackend { return &fakeBackend{name: "gpu"} },
		func() bool { return false })
	r.Register("cpu", PrioritySoftware, func() RenderBackend { return &fakeBackend{name: "cpu"} }, nil)

	b, err := r.Default()
	if err != nil {
		t.Fatalf("Default() = %v", err)
	}
	if b.Name() != "cpu" {
		t.Errorf("Default() picked %q, want %q", b.Name(), "cpu")
	}
}

func TestRegistryDefaultEmpty(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Default(); !errors.Is(err, ErrNoneAvailable) {
		t.Errorf("Default() on empty registry = %v, want ErrNoneAvailable", err)
	}
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Register("b", 10, func() RenderBackend { return &fakeBackend{name: "b"} }, nil)
	r.Register("a", 10, func() RenderBackend { return &fakeBackend{name: "a"} }, nil)
	r.Register("top", 100, func() RenderBackend { return &fakeBackend{name: "top"} }, nil)

	got := r.List()
	want := []string{"top", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register("fake", 10, func() RenderBackend { return &fakeBackend{name: "fake"} }, nil)
	r.Unregister("fake")
	if _, err := r.Get("fake"); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Get after Unregister = %v, want ErrNotRegistered", err)
	}
}

func TestSoftwareRegistered(t *testing.T) {
	b, err := Get("software")
	if err != nil {
		t.Fatalf("Get(software) = %v", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	defer b.Close()

	r, err := b.NewRenderer(8, 8)
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	if r.Target().Width() != 8 {
		t.Errorf("target width = %d, want 8", r.Target().Width())
	}
}

func TestSoftwareRequiresInit(t *testing.T) {
	b, err := Get("software")
	if err != nil {
		t.Fatalf("Get(software) = %v", err)
	}
	if _, err := b.NewRenderer(8, 8); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NewRenderer before Init = %v, want ErrNotInitialized", err)
	}
}
