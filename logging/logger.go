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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// HandlerType selects the output format.
type HandlerType string

const (
	// JSONHandler writes one JSON object per line.
	JSONHandler HandlerType = "json"
	// TextHandler writes logfmt-style key=value lines.
	TextHandler HandlerType = "text"
	// ConsoleHandler writes colored lines for terminals.
	ConsoleHandler HandlerType = "console"
)

// Level is a slog level.
type Level = slog.Level

const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// Logger builds and owns a *slog.Logger. Its level can be changed at
// runtime.
type Logger struct {
	handlerType HandlerType
	output      io.Writer
	level       slog.LevelVar

	serviceName    string
	serviceVersion string
	component      string

	addSource   bool
	replaceAttr func(groups []string, a slog.Attr) slog.Attr

	slogger *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// New returns a Logger writing JSON at info level to stdout unless
// configured otherwise.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{handlerType: JSONHandler, output: os.Stdout}
	l.level.Set(LevelInfo)
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	handlerOpts := &slog.HandlerOptions{Level: &l.level, AddSource: l.addSource, ReplaceAttr: l.replaceAttr}
	var handler slog.Handler
	switch l.handlerType {
	case JSONHandler:
		handler = slog.NewJSONHandler(l.output, handlerOpts)
	case TextHandler:
		handler = slog.NewTextHandler(l.output, handlerOpts)
	case ConsoleHandler:
		handler = newConsoleHandler(l.output, handlerOpts)
	}

	var attrs []any
	if l.serviceName != "" {
		attrs = append(attrs, "service", l.serviceName)
	}
	if l.serviceVersion != "" {
		attrs = append(attrs, "version", l.serviceVersion)
	}
	if l.component != "" {
		attrs = append(attrs, "component", l.component)
	}
	l.slogger = slog.New(handler).With(attrs...)
	return l, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Logger {
	l, err := New(opts...)
	if err != nil {
		panic("logging initialization failed: " + err.Error())
	}
	return l
}

// Validate checks the configuration.
func (l *Logger) Validate() error {
	if l.output == nil {
		return errors.New("output writer cannot be nil")
	}
	switch l.handlerType {
	case JSONHandler, TextHandler, ConsoleHandler:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidHandler, l.handlerType)
	}
}

// Logger returns the underlying slog logger.
func (l *Logger) Logger() *slog.Logger {
	return l.slogger
}

// With returns a slog logger with args attached.
func (l *Logger) With(args ...any) *slog.Logger {
	return l.slogger.With(args...)
}

// SetLevel changes the minimum level of every logger derived from l.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level)
}

// Level returns the minimum level.
func (l *Logger) Level() Level {
	return l.level.Level()
}

// ParseLevel parses debug, info, warn or error, case-insensitively.
func ParseLevel(s string) (Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// ParseHandlerType parses json, text or console.
func ParseHandlerType(s string) (HandlerType, error) {
	switch t := HandlerType(strings.ToLower(s)); t {
	case JSONHandler, TextHandler, ConsoleHandler:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidHandler, s)
	}
}
