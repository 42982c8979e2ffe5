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

//go:build !integration

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := New(WithOutput(nil))
	require.Error(t, err)

	_, err = New(WithHandlerType("xml"))
	require.ErrorIs(t, err, ErrInvalidHandler)

	assert.Panics(t, func() { MustNew(WithHandlerType("xml")) })
}

func TestLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(
		WithJSONHandler(),
		WithOutput(&buf),
		WithServiceName("shop"),
		WithServiceVersion("1.2.3"),
		WithComponent("routing"),
	)
	l.Logger().Info("route connected", "template", "/posts/:id")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "route connected", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "shop", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "routing", entry["component"])
	assert.Equal(t, "/posts/:id", entry["template"])
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := MustNew(WithTextHandler(), WithOutput(&buf), WithLevel(LevelWarn))
	derived := l.With("component", "routing")

	derived.Info("hidden")
	assert.Empty(t, buf.String())

	l.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, l.Level())
	derived.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "component=routing")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "verbose", want: LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLevel)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHandlerType(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]HandlerType{"json": JSONHandler, "Text": TextHandler, "CONSOLE": ConsoleHandler} {
		got, err := ParseHandlerType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseHandlerType("xml")
	require.ErrorIs(t, err, ErrInvalidHandler)
}

func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	h := newConsoleHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := slog.New(h).With("component", "routing").WithGroup("url")
	log.Debug("fallback composed", "controller", "posts", slog.Group("named", "page", 2))

	line := buf.String()
	assert.True(t, strings.HasSuffix(line, "\n"))
	assert.Contains(t, line, "DEBUG")
	assert.Contains(t, line, "fallback composed")
	assert.Contains(t, line, " component=routing")
	assert.Contains(t, line, " url.controller=posts")
	assert.Contains(t, line, " url.named.page=2")
}

func TestConsoleHandler_Enabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     *slog.HandlerOptions
		level    slog.Level
		expected bool
	}{
		{name: "default level INFO allows INFO", level: slog.LevelInfo, expected: true},
		{name: "default level INFO rejects DEBUG", level: slog.LevelDebug, expected: false},
		{name: "custom level WARN rejects INFO", opts: &slog.HandlerOptions{Level: slog.LevelWarn}, level: slog.LevelInfo},
		{name: "custom level DEBUG allows DEBUG", opts: &slog.HandlerOptions{Level: slog.LevelDebug}, level: slog.LevelDebug, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newConsoleHandler(&bytes.Buffer{}, tt.opts)
			assert.Equal(t, tt.expected, h.Enabled(t.Context(), tt.level))
		})
	}
}

func TestTestLogger(t *testing.T) {
	t.Parallel()

	log, captured := NewTestLogger()
	log.With("component", "routing").WithGroup("route").Info("route connected", "template", "/")
	log.Debug("no route matched", "path", "/missing")

	entries := captured.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, map[string]any{"component": "routing", "route.template": "/"}, entries[0].Attrs)

	e, ok := captured.Find("no route")
	require.True(t, ok)
	assert.Equal(t, "/missing", e.Attrs["path"])
	assert.Equal(t, 1, captured.Count(slog.LevelDebug))

	captured.Reset()
	assert.Empty(t, captured.Entries())
}
