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

package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/suite"

	"rivaas.dev/routing/config/codec"
)

type FileSourceTestSuite struct {
	suite.Suite
	dir string
}

func (s *FileSourceTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func TestFileSourceTestSuite(t *testing.T) {
	suite.Run(t, new(FileSourceTestSuite))
}

func (s *FileSourceTestSuite) TestLoad_YAMLFile() {
	path := filepath.Join(s.dir, "routes.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("routing:\n  admin: admin\n"), 0o600))

	conf, err := NewFile(path, codec.YAML{}).Load(context.Background())
	s.Require().NoError(err)
	s.Equal(map[string]any{"admin": "admin"}, conf["routing"])
}

func (s *FileSourceTestSuite) TestLoad_MissingFile() {
	_, err := NewFile(filepath.Join(s.dir, "missing.yaml"), codec.YAML{}).Load(context.Background())
	s.Require().Error(err)
	s.ErrorIs(err, os.ErrNotExist)
}

func (s *FileSourceTestSuite) TestLoad_Content() {
	conf, err := NewContent([]byte(`{"app": {"base": "/shop"}}`), codec.JSON{}).Load(context.Background())
	s.Require().NoError(err)
	s.Equal(map[string]any{"base": "/shop"}, conf["app"])
}

func (s *FileSourceTestSuite) TestLoad_DecodeError() {
	_, err := NewContent([]byte(`{"app":`), codec.JSON{}).Load(context.Background())
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to decode file")
}

type EnvSourceTestSuite struct {
	suite.Suite
}

func TestEnvSourceTestSuite(t *testing.T) {
	suite.Run(t, new(EnvSourceTestSuite))
}

func (s *EnvSourceTestSuite) TestLoad_StripsPrefix() {
	env := &Env{prefix: "APP_", environ: func() []string {
		return []string{"APP_ROUTING_ADMIN=manage", "APP_APP_BASE=/shop", "HOME=/root"}
	}}

	conf, err := env.Load(context.Background())
	s.Require().NoError(err)
	s.Equal(map[string]any{
		"routing": map[string]any{"admin": "manage"},
		"app":     map[string]any{"base": "/shop"},
	}, conf)
}

func (s *EnvSourceTestSuite) TestLoad_NoMatches() {
	env := &Env{prefix: "APP_", environ: func() []string { return []string{"HOME=/root"} }}

	conf, err := env.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(conf)
}

type fakeKV struct {
	pairs map[string]*api.KVPair
	err   error
}

func (f *fakeKV) Get(key string, _ *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	pair, ok := f.pairs[key]
	if !ok {
		return nil, &api.QueryMeta{}, nil
	}
	return pair, &api.QueryMeta{LastIndex: pair.ModifyIndex}, nil
}

type ConsulSourceTestSuite struct {
	suite.Suite
	kv *fakeKV
}

func (s *ConsulSourceTestSuite) SetupTest() {
	s.kv = &fakeKV{pairs: map[string]*api.KVPair{
		"routing/routes.yaml": {Key: "routing/routes.yaml", Value: []byte("routing:\n  prefixes: [api]\n"), ModifyIndex: 7},
		"routing/broken.json": {Key: "routing/broken.json", Value: []byte(`{"routing":`)},
	}}
}

func TestConsulSourceTestSuite(t *testing.T) {
	suite.Run(t, new(ConsulSourceTestSuite))
}

func (s *ConsulSourceTestSuite) TestLoad_ValuePresent() {
	c, err := NewConsul("routing/routes.yaml", codec.YAML{}, s.kv)
	s.Require().NoError(err)

	conf, err := c.Load(context.Background())
	s.Require().NoError(err)
	routing, ok := conf["routing"].(map[string]any)
	s.Require().True(ok)
	s.Equal([]any{"api"}, routing["prefixes"])
	s.Equal(uint64(7), c.LastIndex())
}

func (s *ConsulSourceTestSuite) TestLoad_ValueAbsent() {
	c, err := NewConsul("routing/absent.yaml", codec.YAML{}, s.kv)
	s.Require().NoError(err)

	conf, err := c.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(conf)
}

func (s *ConsulSourceTestSuite) TestLoad_DecodeError() {
	c, err := NewConsul("routing/broken.json", codec.JSON{}, s.kv)
	s.Require().NoError(err)

	_, err = c.Load(context.Background())
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to decode consul value")
}

func (s *ConsulSourceTestSuite) TestLoad_KVError() {
	s.kv.err = errors.New("connection refused")
	c, err := NewConsul("routing/routes.yaml", codec.YAML{}, s.kv)
	s.Require().NoError(err)

	_, err = c.Load(context.Background())
	s.Require().ErrorIs(err, s.kv.err)
}
