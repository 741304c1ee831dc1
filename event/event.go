// Copyright 2026 The NovaGE Authors
// SPDX-License-Identifier: MIT

// Package event pumps window events and surfaces them pygame-style.
//
// The pump is poll-based: each Poll drains the platform event queue and
// reports what arrived. Window-close requests become Quit events; the
// main loop decides when to actually shut the context down.
package event

import "github.com/novage/novage/window"

// Type identifies an event kind.
type Type uint8

const (
	// None is the zero Type; it never appears in returned events.
	None Type = iota

	// Quit is delivered when the window requests close.
	Quit
)

// Event is a single pumped event.
type Event struct {
	Type Type
}

// Poll drains the window's event queue and returns the events that
// arrived. A close request yields one Quit event per call until the
// flag is cleared or the window is destroyed.
func Poll(w window.Window) []Event {
	w.PollEvents()
	if w.ShouldClose() {
		return []Event{{Type: Quit}}
	}
	return nil
}

// Pump drains the event queue without returning events. Use it on
// frames that only need the queue serviced.
func Pump(w window.Window) {
	w.PollEvents()
}

// Post requests that Poll deliver a Quit event, like pygame's
// event.post(QUIT). Only Quit can be posted.
func Post(w window.Window, t Type) {
	if t == Quit {
		w.SetShouldClose(true)
	}
}
