// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/novage/novage/render"
)

func init() {
	Register("software", PrioritySoftware, func() RenderBackend {
		return &softwareBackend{}
	}, nil)
}

// softwareBackend creates CPU renderers. It is always available and
// serves as the fallback when no GPU backend is registered or usable.
type softwareBackend struct {
	initialized bool
}

func (b *softwareBackend) Name() string { return "software" }

func (b *softwareBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *softwareBackend) Close() {
	b.initialized = false
}

func (b *softwareBackend) NewRenderer(width, height int) (render.Renderer, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}
	return render.NewSoftwareRenderer(width, height), nil
}
