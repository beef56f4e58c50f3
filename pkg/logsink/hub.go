// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package logsink

import (
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"

	"github.com/telekom/logmail/pkg/logevent"
	"github.com/telekom/logmail/pkg/metrics"
)

// Handler receives events from the hub.
type Handler interface {
	Handle(ev logevent.Event)
	Flush() error
	Close() error
}

// Option configures a Hub.
type Option func(*Hub)

// WithLevel sets the lowest zap level the hub accepts.
func WithLevel(l zapcore.LevelEnabler) Option {
	return func(h *Hub) {
		h.level = l
	}
}

// Hub fans log events out to subscribed handlers. Dispatch is synchronous and
// runs on the goroutine that logged.
type Hub struct {
	*registry
	level  zapcore.LevelEnabler
	fields []zapcore.Field
}

type registry struct {
	mu       sync.RWMutex
	handlers []Handler
}

var _ zapcore.Core = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		registry: &registry{},
		level:    zapcore.DebugLevel,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Subscribe attaches a handler. Subscribing the same handler twice delivers
// each event to it twice.
func (h *Hub) Subscribe(handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
	metrics.HandlersSubscribed.Set(float64(len(h.handlers)))
}

// Unsubscribe detaches the first registration of handler and reports
// whether it was subscribed.
func (h *Hub) Unsubscribe(handler Handler) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, existing := range h.handlers {
		if existing == handler {
			// copy so snapshots taken by Publish stay intact
			next := make([]Handler, 0, len(h.handlers)-1)
			next = append(next, h.handlers[:i]...)
			next = append(next, h.handlers[i+1:]...)
			h.handlers = next
			metrics.HandlersSubscribed.Set(float64(len(h.handlers)))
			return true
		}
	}
	return false
}

// Len returns the number of subscribed handlers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers)
}

func (r *registry) snapshot() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handlers
}

// Publish dispatches ev to every handler subscribed at the time of the call.
func (h *Hub) Publish(ev logevent.Event) {
	metrics.EventsPublished.Inc()
	for _, handler := range h.snapshot() {
		handler.Handle(ev)
	}
}

// Enabled implements zapcore.Core.
func (h *Hub) Enabled(l zapcore.Level) bool {
	return h.level.Enabled(l) && h.Len() > 0
}

// With implements zapcore.Core. Children share the subscriber registry.
func (h *Hub) With(fields []zapcore.Field) zapcore.Core {
	child := &Hub{registry: h.registry, level: h.level}
	child.fields = make([]zapcore.Field, 0, len(h.fields)+len(fields))
	child.fields = append(child.fields, h.fields...)
	child.fields = append(child.fields, fields...)
	return child
}

// Check implements zapcore.Core.
func (h *Hub) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if h.Enabled(ent.Level) {
		return ce.AddCore(ent, h)
	}
	return ce
}

// Write implements zapcore.Core.
func (h *Hub) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	all := fields
	if len(h.fields) > 0 {
		all = make([]zapcore.Field, 0, len(h.fields)+len(fields))
		all = append(all, h.fields...)
		all = append(all, fields...)
	}
	h.Publish(EventFromEntry(ent, all))
	return nil
}

// Sync flushes every subscribed handler.
func (h *Hub) Sync() error {
	var err error
	for _, handler := range h.snapshot() {
		err = multierr.Append(err, handler.Flush())
	}
	return err
}

// EventFromEntry converts a zap entry and its fields into an event. Later
// fields win over earlier ones with the same key.
func EventFromEntry(ent zapcore.Entry, fields []zapcore.Field) logevent.Event {
	ev := logevent.Event{
		Severity:   logevent.FromZapLevel(ent.Level),
		Message:    ent.Message,
		Stack:      ent.Stack,
		LoggerName: ent.LoggerName,
		Time:       ent.Time,
	}
	for _, f := range fields {
		switch {
		case f.Key == ErrorKey && f.Type == zapcore.ErrorType:
			if err, ok := f.Interface.(error); ok {
				ev.Err = err
			}
		case f.Key == OriginClassKey && f.Type == zapcore.StringType:
			ev.OriginClass = f.String
		case f.Key == ArgsKey:
			if args, ok := f.Interface.([]any); ok {
				ev.Args = args
			}
		}
	}
	if ev.OriginClass == "" && ent.Caller.Defined {
		ev.OriginClass = ent.Caller.Function
	}
	return ev
}
