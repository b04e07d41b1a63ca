// Package testsupport provides fake controls, event recorders and golden
// file helpers shared by package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-uicontrol/pkg/control"
	"github.com/goliatone/go-uicontrol/pkg/event"
	"github.com/goliatone/go-uicontrol/pkg/helper"
)

// LifecycleEvents lists every event the helper fires.
var LifecycleEvents = []string{
	event.Init,
	event.BeforeRender,
	event.AfterRender,
	event.BeforeDispose,
	event.AfterDispose,
	event.BeforeValidate,
	event.Invalid,
	event.AfterValidate,
}

// Recorder collects the event types fired on one or more controls.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Record attaches a Recorder to c for the given types, or for every
// lifecycle event when none are given. Attach after Init: Init replaces the
// event registry.
func Record(c control.Control, types ...string) *Recorder {
	r := &Recorder{}
	r.Attach(c, types...)
	return r
}

// Attach adds handlers on c.
func (r *Recorder) Attach(c control.Control, types ...string) {
	if len(types) == 0 {
		types = LifecycleEvents
	}
	core := c.Core()
	for _, typ := range types {
		typ := typ
		core.On(typ, func(evt *event.Event) {
			r.mu.Lock()
			defer r.mu.Unlock()
			id := ""
			if target, ok := evt.Target.(control.Control); ok {
				id = target.Core().ID
			}
			if id != "" {
				r.events = append(r.events, id+":"+typ)
				return
			}
			r.events = append(r.events, typ)
		})
	}
}

// Events returns the recorded "<id>:<type>" entries in firing order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// DisposeLog records the order in which fake controls were disposed.
type DisposeLog struct {
	IDs []string
}

// Widget is a valued, composite fake control whose Dispose follows the
// helper's BeforeDispose, Dispose, AfterDispose sequence.
type Widget struct {
	control.Base

	Helper *helper.Helper
	Val    any
	Log    *DisposeLog
}

var (
	_ control.Valued    = (*Widget)(nil)
	_ control.Composite = (*Widget)(nil)
)

// NewWidget returns an uninitialized fake control of the given type.
func NewWidget(h *helper.Helper, typ string) *Widget {
	w := &Widget{Helper: h}
	w.Type = typ
	return w
}

// InitWidget runs Init and AfterInit on a new fake control.
func InitWidget(t testing.TB, h *helper.Helper, typ string, props control.Properties) *Widget {
	t.Helper()
	w := NewWidget(h, typ)
	if err := h.Init(w, props); err != nil {
		t.Fatalf("init %s: %v", typ, err)
	}
	h.AfterInit(w)
	return w
}

// Value returns Val.
func (w *Widget) Value() any {
	return w.Val
}

// Dispose sequences the helper's disposal operations and logs the id.
func (w *Widget) Dispose() {
	if w.Disposing() {
		w.Helper.Dispose(w)
		return
	}
	w.Helper.BeforeDispose(w)
	w.Helper.Dispose(w)
	w.Helper.AfterDispose(w)
	if w.Log != nil {
		w.Log.IDs = append(w.Log.IDs, w.ID)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGoldenString reads a golden file.
func MustReadGoldenString(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return string(data)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set and
// reports whether it did.
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
