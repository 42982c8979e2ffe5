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

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/cast"

	"rivaas.dev/routing/config/codec"
	"rivaas.dev/routing/config/source"
)

// Option configures a Config.
type Option func(c *Config) error

// Config merges configuration sources into a single case-insensitive tree.
type Config struct {
	mu         sync.RWMutex
	values     map[string]any
	sources    []Source
	schema     *jsonschema.Schema
	validators []func(map[string]any) error
}

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(c *Config) error {
		if src == nil {
			return errors.New("source cannot be nil")
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

// WithFile adds a file source. The format is detected from the extension;
// environment variables in path are expanded.
func WithFile(path string) Option {
	return func(c *Config) error {
		path = os.ExpandEnv(path)
		format, err := detectFormat(path)
		if err != nil {
			return NewError("file-source", "detect-format", err)
		}
		return WithFileAs(path, format)(c)
	}
}

// WithFileAs adds a file source decoded with the given codec.
func WithFileAs(path string, format codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Lookup(format)
		if err != nil {
			return NewError("file-source", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewFile(os.ExpandEnv(path), dec))
		return nil
	}
}

// WithContent adds raw content decoded with the given codec.
func WithContent(data []byte, format codec.Type) Option {
	return func(c *Config) error {
		dec, err := codec.Lookup(format)
		if err != nil {
			return NewError("content-source", "get-decoder", err)
		}
		c.sources = append(c.sources, source.NewContent(data, dec))
		return nil
	}
}

// WithEnv adds the environment variables starting with prefix:
// APP_ROUTING_ADMIN with prefix "APP_" is routing.admin.
func WithEnv(prefix string) Option {
	return func(c *Config) error {
		c.sources = append(c.sources, source.NewEnv(prefix))
		return nil
	}
}

// WithConsul adds the Consul key at path, decoded by its extension. It is
// skipped when CONSUL_HTTP_ADDR is not set.
func WithConsul(path string) Option {
	return func(c *Config) error {
		if os.Getenv("CONSUL_HTTP_ADDR") == "" {
			return nil
		}
		path = os.ExpandEnv(path)
		format, err := detectFormat(path)
		if err != nil {
			return NewError("consul-source", "detect-format", err)
		}
		dec, err := codec.Lookup(format)
		if err != nil {
			return NewError("consul-source", "get-decoder", err)
		}
		src, err := source.NewConsul(path, dec, nil)
		if err != nil {
			return NewError("consul-source", "create-client", err)
		}
		c.sources = append(c.sources, src)
		return nil
	}
}

var schemaSeq atomic.Uint64

// WithJSONSchema validates the merged values against schema on Load.
func WithJSONSchema(schema []byte) Option {
	return func(c *Config) error {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
		if err != nil {
			return NewError("json-schema", "parse", err)
		}
		name := fmt.Sprintf("inline_%d.json", schemaSeq.Add(1))
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(name, doc); err != nil {
			return NewError("json-schema", "compile", err)
		}
		s, err := compiler.Compile(name)
		if err != nil {
			return NewError("json-schema", "compile", err)
		}
		c.schema = s
		return nil
	}
}

// WithValidator adds a validation function run on the merged values.
func WithValidator(fn func(map[string]any) error) Option {
	return func(c *Config) error {
		if fn == nil {
			return errors.New("validator cannot be nil")
		}
		c.validators = append(c.validators, fn)
		return nil
	}
}

// New returns a Config. Loading happens in Load.
func New(opts ...Option) (*Config, error) {
	c := &Config{values: map[string]any{}}
	var errs []error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is New that panics on error.
func MustNew(opts ...Option) *Config {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("config: failed to create config: %v", err))
	}
	return c
}

// Load reads every source in order and merges them, later sources winning.
// The values are replaced only when validation succeeds.
func (c *Config) Load(ctx context.Context) error {
	values := make(map[string]any)
	for i, src := range c.sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		conf, err := src.Load(ctx)
		if err != nil {
			return NewError(fmt.Sprintf("source[%d]", i), "load", err)
		}
		if err = mergo.Map(&values, lowerKeys(conf), mergo.WithOverride); err != nil {
			return NewError(fmt.Sprintf("source[%d]", i), "merge", err)
		}
	}

	if c.schema != nil {
		if err := c.schema.Validate(values); err != nil {
			return NewError("json-schema", "validate", err)
		}
	}
	for i, fn := range c.validators {
		if err := fn(values); err != nil {
			return NewError(fmt.Sprintf("custom-validator[%d]", i), "validate", err)
		}
	}

	c.mu.Lock()
	c.values = values
	c.mu.Unlock()
	return nil
}

// MustLoad is Load that panics on error.
func (c *Config) MustLoad(ctx context.Context) {
	if err := c.Load(ctx); err != nil {
		panic(err)
	}
}

// lowerKeys lower-cases map keys recursively. Maps inside lists keep their
// keys.
func lowerKeys(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = lowerKeys(nested)
		}
		out[strings.ToLower(k)] = v
	}
	return out
}

// Values returns a shallow copy of the loaded values.
func (c *Config) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// Get returns the value at a dotted, case-insensitive key, or nil.
func (c *Config) Get(key string) any {
	if c == nil || key == "" {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var current any = c.values
	for segment := range strings.SplitSeq(strings.ToLower(key), ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		if current, ok = m[segment]; !ok {
			return nil
		}
	}
	return current
}

// String returns the value at key as a string.
func (c *Config) String(key string) string {
	return cast.ToString(c.Get(key))
}

// StringOr returns the value at key as a string, or def when unset.
func (c *Config) StringOr(key, def string) string {
	if v := c.Get(key); v != nil {
		return cast.ToString(v)
	}
	return def
}

func (c *Config) Bool(key string) bool {
	return cast.ToBool(c.Get(key))
}

func (c *Config) Int(key string) int {
	return cast.ToInt(c.Get(key))
}

// StringSlice returns the value at key as a list. A string value is split
// on commas.
func (c *Config) StringSlice(key string) []string {
	v := c.Get(key)
	if s, ok := v.(string); ok {
		var out []string
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return cast.ToStringSlice(v)
}

// StringMapString returns the value at key as a map of strings.
func (c *Config) StringMapString(key string) map[string]string {
	return cast.ToStringMapString(c.Get(key))
}

// Decode binds the subtree at key into target, a pointer to a struct, using
// "config" struct tags. An empty key decodes the whole tree.
func (c *Config) Decode(key string, target any) error {
	var input any
	if key == "" {
		input = c.Values()
	} else {
		input = c.Get(key)
	}
	if input == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "config",
		WeaklyTypedInput: true,
		Result:           target,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return NewFieldError("binding", key, "bind", err)
	}
	if err = dec.Decode(input); err != nil {
		return NewFieldError("binding", key, "bind", err)
	}
	return nil
}
