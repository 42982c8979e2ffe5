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

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, typ := range []Type{TypeJSON, TypeYAML, TypeTOML, TypeEnvVar} {
		c, err := Lookup(typ)
		require.NoError(t, err, typ)
		assert.NotNil(t, c)
	}

	_, err := Lookup("xml")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		codec Codec
		data  string
	}{
		{name: "json", codec: JSON{}, data: `{"routing": {"admin": "admin"}}`},
		{name: "yaml", codec: YAML{}, data: "routing:\n  admin: admin\n"},
		{name: "toml", codec: TOML{}, data: "[routing]\nadmin = \"admin\"\n"},
		{name: "env", codec: EnvVar{}, data: "ROUTING_ADMIN=admin\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m map[string]any
			require.NoError(t, tt.codec.Decode([]byte(tt.data), &m))
			routing, ok := m["routing"].(map[string]any)
			require.True(t, ok, "routing should be a map, got %T", m["routing"])
			assert.Equal(t, "admin", routing["admin"])
		})
	}
}

func TestEnvVar_Decode(t *testing.T) {
	t.Parallel()

	data := "APP__PLUGINS = blog\nAPP_BASE=/shop\nINVALID\n=empty\nROUTING_ADMIN=admin"
	var m map[string]any
	require.NoError(t, EnvVar{}.Decode([]byte(data), &m))

	assert.Equal(t, map[string]any{
		"app":     map[string]any{"plugins": "blog", "base": "/shop"},
		"routing": map[string]any{"admin": "admin"},
	}, m)
}

func TestEnvVar_RejectsNonMapTarget(t *testing.T) {
	t.Parallel()

	var s string
	require.Error(t, EnvVar{}.Decode([]byte("A=b"), &s))

	_, err := EnvVar{}.Encode(map[string]any{})
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	Register("json-alias", JSON{})
	c, err := Lookup("json-alias")
	require.NoError(t, err)

	out, err := c.Encode(map[string]string{"a": "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"b"}`, string(out))
}
