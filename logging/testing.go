// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Entry is a captured log record.
type Entry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// TestHandler captures records in memory. Attributes of nested groups are
// stored under dotted keys.
type TestHandler struct {
	mu      *sync.Mutex
	entries *[]Entry
	attrs   []slog.Attr
	prefix  string
}

// NewTestLogger returns a debug-level logger and the handler capturing its
// records.
func NewTestLogger() (*slog.Logger, *TestHandler) {
	h := &TestHandler{mu: &sync.Mutex{}, entries: &[]Entry{}}
	return slog.New(h), h
}

func (h *TestHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *TestHandler) Handle(_ context.Context, r slog.Record) error {
	e := Entry{Level: r.Level, Message: r.Message, Attrs: make(map[string]any)}
	for _, a := range h.attrs {
		flatten(e.Attrs, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		flatten(e.Attrs, h.prefix, a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.entries = append(*h.entries, e)
	return nil
}

func (h *TestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.attrs = slices.Clone(h.attrs)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		out.attrs = append(out.attrs, a)
	}
	return &out
}

func (h *TestHandler) WithGroup(name string) slog.Handler {
	out := *h
	out.prefix = h.prefix + name + "."
	return &out
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			flatten(dst, prefix+a.Key+".", ga)
		}
		return
	}
	dst[prefix+a.Key] = v.Any()
}

// Entries returns a copy of the captured entries.
func (h *TestHandler) Entries() []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(*h.entries)
}

// Find returns the first entry whose message contains msg.
func (h *TestHandler) Find(msg string) (Entry, bool) {
	for _, e := range h.Entries() {
		if strings.Contains(e.Message, msg) {
			return e, true
		}
	}
	return Entry{}, false
}

// Count returns the number of entries at level.
func (h *TestHandler) Count(level slog.Level) int {
	n := 0
	for _, e := range h.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Reset drops the captured entries.
func (h *TestHandler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.entries = nil
}
