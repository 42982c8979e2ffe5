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
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routing/config/codec"
)

type mockSource struct {
	conf map[string]any
	err  error
}

func (m *mockSource) Load(context.Context) (map[string]any, error) {
	return m.conf, m.err
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{name: "no options succeeds"},
		{name: "nil option is skipped", opts: []Option{nil}},
		{name: "nil source fails", opts: []Option{WithSource(nil)}, wantErr: "source cannot be nil"},
		{name: "nil validator fails", opts: []Option{WithValidator(nil)}, wantErr: "validator cannot be nil"},
		{name: "unknown extension fails", opts: []Option{WithFile("routes.ini")}, wantErr: "cannot detect format"},
		{name: "unknown codec fails", opts: []Option{WithContent(nil, "xml")}, wantErr: "codec not found"},
		{name: "invalid schema fails", opts: []Option{WithJSONSchema([]byte("{"))}, wantErr: "json-schema"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := New(tt.opts...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNew(WithSource(nil)) })
}

func TestLoad_MergesSourcesInOrder(t *testing.T) {
	t.Parallel()

	base := []byte(`
routing:
  admin: admin
  prefixes: [api]
app:
  base: /shop
`)
	override := []byte(`{"ROUTING": {"Admin": "manage"}}`)

	c := MustNew(WithContent(base, codec.TypeYAML), WithContent(override, codec.TypeJSON))
	require.NoError(t, c.Load(context.Background()))

	assert.Equal(t, "manage", c.String("routing.admin"))
	assert.Equal(t, "manage", c.String("Routing.Admin"))
	assert.Equal(t, []string{"api"}, c.StringSlice("routing.prefixes"))
	assert.Equal(t, "/shop", c.String("app.base"))
	assert.Nil(t, c.Get("app.missing"))
	assert.Nil(t, c.Get("app.base.deeper"))
	assert.Equal(t, "fallback", c.StringOr("app.missing", "fallback"))
}

func TestLoad_SourceError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	c := MustNew(WithSource(&mockSource{conf: map[string]any{}}), WithSource(&mockSource{err: boom}))

	err := c.Load(context.Background())
	require.ErrorIs(t, err, boom)

	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "source[1]", cfgErr.Source)
	assert.Equal(t, "load", cfgErr.Operation)
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := MustNew(WithSource(&mockSource{conf: map[string]any{"a": "b"}}))
	require.ErrorIs(t, c.Load(ctx), context.Canceled)
}

func TestLoad_Validators(t *testing.T) {
	t.Parallel()

	invalid := errors.New("admin must not be empty")
	c := MustNew(
		WithSource(&mockSource{conf: map[string]any{"routing": map[string]any{"admin": ""}}}),
		WithValidator(func(m map[string]any) error {
			if routing, ok := m["routing"].(map[string]any); ok && routing["admin"] == "" {
				return invalid
			}
			return nil
		}),
	)

	err := c.Load(context.Background())
	require.ErrorIs(t, err, invalid)
	assert.Empty(t, c.Values(), "values are kept when validation fails")
}

func TestLoad_JSONSchema(t *testing.T) {
	t.Parallel()

	schema := []byte(`{"type": "object", "properties": {"port": {"type": "number"}}}`)

	ok := MustNew(WithContent([]byte(`{"port": 8080}`), codec.TypeJSON), WithJSONSchema(schema))
	require.NoError(t, ok.Load(context.Background()))
	assert.Equal(t, 8080, ok.Int("port"))

	bad := MustNew(WithContent([]byte(`{"port": "http"}`), codec.TypeJSON), WithJSONSchema(schema))
	err := bad.Load(context.Background())
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "json-schema", cfgErr.Source)
}

func TestWithFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte("[routing]\nadmin = \"admin\"\nextensions = [\"json\"]\n"), 0o600))

	c := MustNew(WithFile(path))
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, "admin", c.String("routing.admin"))
	assert.Equal(t, []string{"json"}, c.StringSlice("routing.extensions"))
}

func TestStringSlice_CommaSeparated(t *testing.T) {
	t.Parallel()

	c := MustNew(WithSource(&mockSource{conf: map[string]any{"prefixes": "admin, api,,"}}))
	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"admin", "api"}, c.StringSlice("prefixes"))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	type server struct {
		Host  string   `config:"host"`
		Port  int      `config:"port"`
		Hosts []string `config:"hosts"`
	}

	c := MustNew(WithSource(&mockSource{conf: map[string]any{
		"server": map[string]any{"host": "localhost", "port": "8080", "hosts": "a,b"},
	}}))
	require.NoError(t, c.Load(context.Background()))

	var s server
	require.NoError(t, c.Decode("server", &s))
	assert.Equal(t, server{Host: "localhost", Port: 8080, Hosts: []string{"a", "b"}}, s)

	var missing server
	require.NoError(t, c.Decode("absent", &missing))
	assert.Zero(t, missing)

	var wrong struct {
		Port []map[string]int `config:"port"`
	}
	err := c.Decode("server", &wrong)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "server", cfgErr.Field)
}

func TestError(t *testing.T) {
	t.Parallel()

	inner := errors.New("inner")
	assert.Equal(t, "config error in source[0] during load: inner", NewError("source[0]", "load", inner).Error())
	assert.Equal(t, "config error in routes.routes[1] during validate: inner",
		NewFieldError("routes", "routes[1]", "validate", inner).Error())
	assert.ErrorIs(t, NewError("x", "y", inner), inner)
}
