// Package event implements the synchronous event registry every control
// owns. Handlers run to completion inside Fire, in registration order, and
// may mutate whatever the event carries.
package event

import (
	"strings"
	"sync"

	"github.com/goliatone/go-uicontrol/pkg/validity"
)

// Lifecycle and validation event names fired by the control core.
const (
	Init           = "init"
	BeforeRender   = "beforerender"
	AfterRender    = "afterrender"
	BeforeDispose  = "beforedispose"
	AfterDispose   = "afterdispose"
	BeforeValidate = "beforevalidate"
	Invalid        = "invalid"
	AfterValidate  = "aftervalidate"
)

// Event is passed by reference to every handler. Validity is set for the
// validation events and is shared, so handlers observe each other's edits.
type Event struct {
	Type     string
	Target   any
	Validity *validity.Validity
	Data     map[string]any

	stopped bool
}

// StopPropagation prevents handlers registered after the current one from
// running for this fire.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether a handler stopped propagation.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Handler reacts to an event.
type Handler func(evt *Event)

type binding struct {
	id      uint64
	handler Handler
	once    bool
}

// Emitter stores handlers keyed by event type.
type Emitter struct {
	mu       sync.Mutex
	handlers map[string][]binding
	nextID   uint64
}

// NewEmitter constructs an empty registry.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]binding)}
}

// On registers handler for eventType and returns a function removing it.
func (e *Emitter) On(eventType string, handler Handler) func() {
	return e.add(eventType, handler, false)
}

// Once registers a handler that is removed after its first invocation.
func (e *Emitter) Once(eventType string, handler Handler) func() {
	return e.add(eventType, handler, true)
}

func (e *Emitter) add(eventType string, handler Handler, once bool) func() {
	eventType = normalize(eventType)
	if e == nil || handler == nil || eventType == "" {
		return func() {}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.handlers == nil {
		e.handlers = make(map[string][]binding)
	}
	e.nextID++
	id := e.nextID
	e.handlers[eventType] = append(e.handlers[eventType], binding{id: id, handler: handler, once: once})

	return func() { e.remove(eventType, id) }
}

func (e *Emitter) remove(eventType string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	list := e.handlers[eventType]
	for idx, entry := range list {
		if entry.id == id {
			e.handlers[eventType] = append(list[:idx:idx], list[idx+1:]...)
			break
		}
	}
	if len(e.handlers[eventType]) == 0 {
		delete(e.handlers, eventType)
	}
}

// Off removes every handler for eventType. An empty type clears the whole
// registry.
func (e *Emitter) Off(eventType string) {
	if e == nil {
		return
	}
	eventType = normalize(eventType)
	e.mu.Lock()
	defer e.mu.Unlock()
	if eventType == "" {
		e.handlers = make(map[string][]binding)
		return
	}
	delete(e.handlers, eventType)
}

// Count returns the number of handlers registered for eventType.
func (e *Emitter) Count(eventType string) int {
	if e == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers[normalize(eventType)])
}

// Fire invokes the handlers registered for eventType. A nil evt is replaced
// by an empty event. The handler list is snapshotted before the first call,
// so handlers added during a fire only see the next one.
func (e *Emitter) Fire(eventType string, evt *Event) *Event {
	eventType = normalize(eventType)
	if evt == nil {
		evt = &Event{}
	}
	evt.Type = eventType
	if e == nil || eventType == "" {
		return evt
	}

	e.mu.Lock()
	snapshot := append([]binding(nil), e.handlers[eventType]...)
	e.mu.Unlock()

	for _, entry := range snapshot {
		if entry.once {
			e.remove(eventType, entry.id)
		}
		entry.handler(evt)
		if evt.stopped {
			break
		}
	}
	return evt
}

func normalize(eventType string) string {
	return strings.ToLower(strings.TrimSpace(eventType))
}
