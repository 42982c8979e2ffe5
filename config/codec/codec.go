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

// Package codec decodes configuration documents into generic maps.
//
// Codecs are looked up by Type. JSON, YAML, TOML and environment-variable
// codecs are registered by default:
//
//	dec, err := codec.Decoder(codec.TypeYAML)
//	var m map[string]any
//	err = dec.Decode(data, &m)
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Type names a codec.
type Type string

// Registered codec types.
const (
	TypeJSON   Type = "json"
	TypeYAML   Type = "yaml"
	TypeTOML   Type = "toml"
	TypeEnvVar Type = "env_var"
)

// ErrNotFound is returned for unregistered codec types.
var ErrNotFound = errors.New("codec not found")

// Encoder encodes a value.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder decodes data into the value pointed to by v.
type Decoder interface {
	Decode(data []byte, v any) error
}

// Codec is both an Encoder and a Decoder.
type Codec interface {
	Encoder
	Decoder
}

var registry = struct {
	sync.RWMutex
	codecs map[Type]Codec
}{codecs: map[Type]Codec{
	TypeJSON:   JSON{},
	TypeYAML:   YAML{},
	TypeTOML:   TOML{},
	TypeEnvVar: EnvVar{},
}}

// Register makes a codec available under name, replacing any codec
// registered under the same name.
func Register(name Type, c Codec) {
	registry.Lock()
	defer registry.Unlock()
	registry.codecs[name] = c
}

// Lookup returns the codec registered under name.
func Lookup(name Type) (Codec, error) {
	registry.RLock()
	defer registry.RUnlock()
	c, ok := registry.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c, nil
}

// JSON is the encoding/json codec.
type JSON struct{}

func (JSON) Encode(v any) ([]byte, error) { return json.Marshal(v) }

func (JSON) Decode(data []byte, v any) error { return json.Unmarshal(data, v) }

// YAML is the goccy/go-yaml codec.
type YAML struct{}

func (YAML) Encode(v any) ([]byte, error) { return yaml.Marshal(v) }

func (YAML) Decode(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// TOML is the BurntSushi/toml codec.
type TOML struct{}

func (TOML) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (TOML) Decode(data []byte, v any) error { return toml.Unmarshal(data, v) }

// EnvVar decodes KEY=value lines into a nested map: ROUTING_ADMIN=admin
// becomes {"routing": {"admin": "admin"}}. Keys are lower-cased and split
// on underscores. Encoding is not supported.
type EnvVar struct{}

func (EnvVar) Encode(any) ([]byte, error) {
	return nil, errors.New("encoding environment variables is not supported")
}

func (EnvVar) Decode(data []byte, v any) error {
	ptr, ok := v.(*map[string]any)
	if !ok {
		return fmt.Errorf("env var codec: expected *map[string]any, got %T", v)
	}

	out := make(map[string]any)
	for line := range strings.SplitSeq(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		var parts []string
		for part := range strings.SplitSeq(strings.ToLower(strings.TrimSpace(key)), "_") {
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) == 0 {
			continue
		}

		current := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := current[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[part] = next
			}
			current = next
		}
		current[parts[len(parts)-1]] = strings.TrimSpace(value)
	}
	*ptr = out
	return nil
}
