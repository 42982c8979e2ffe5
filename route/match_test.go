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

package route

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_Match_NonGreedy(t *testing.T) {
	t.Parallel()

	r := MustNew("/posts/:id", Params{KeyController: "posts", KeyAction: "view"}, WithConstraint("id", "[0-9]+"))

	tests := []struct {
		name   string
		target Target
		want   string
		ok     bool
	}{
		{
			name:   "keys and defaults",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5"}},
			want:   "/posts/5",
			ok:     true,
		},
		{
			name:   "explicit empty extra is ignored",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5", "foo": ""}},
			want:   "/posts/5",
			ok:     true,
		},
		{
			name:   "missing key",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view"}},
		},
		{
			name:   "empty key",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": ""}},
		},
		{
			name:   "fixed default differs",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "edit", "id": "5"}},
		},
		{
			name:   "fixed default missing",
			target: Target{Params: Params{KeyController: "posts", "id": "5"}},
		},
		{
			name:   "extra key",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5", "foo": "bar"}},
		},
		{
			name:   "extra positional",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5"}, Pass: []string{"x"}},
		},
		{
			name:   "constraint fails",
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "abc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := r.Match(tt.target)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoute_Match_Greedy(t *testing.T) {
	t.Parallel()

	named := DefaultNamedConfig().ConnectDefaults(true)
	r := MustNew("/:controller/:action/*", Params{KeyPlugin: "", KeyAction: "index"}, WithNamedConfig(named))

	got, ok := r.Match(Target{
		Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "view"},
		Pass:   []string{"5", "title"},
	})
	require.True(t, ok)
	assert.Equal(t, "/posts/view/5/title", got)

	got, ok = r.Match(Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index"}})
	require.True(t, ok)
	assert.Equal(t, "/posts/index", got)

	got, ok = r.Match(Target{
		Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index", "sort": "title", "page": "2"},
		Pass:   []string{"all"},
	})
	require.True(t, ok)
	assert.Equal(t, "/posts/index/all/page:2/sort:title", got, "named parameters follow rule order")

	_, ok = r.Match(Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index", "foo": "bar"}})
	assert.False(t, ok, "keys without a rule are not named")

	_, ok = r.Match(Target{Params: Params{KeyPlugin: "forum", KeyController: "posts", KeyAction: "index"}})
	assert.False(t, ok, "plugin is not a key of the route")
}

func TestRoute_Match_OptionalPlaceholder(t *testing.T) {
	t.Parallel()

	r := MustNew("/:extra/page/:slug", Params{"extra": "", KeyController: "pages", KeyAction: "view"},
		WithConstraint("extra", "[a-z1-9_]*"))

	got, ok := r.Match(Target{Params: Params{KeyController: "pages", KeyAction: "view", "slug": "this_is_the_slug"}})
	require.True(t, ok)
	assert.Equal(t, "/page/this_is_the_slug", got)

	got, ok = r.Match(Target{Params: Params{KeyController: "pages", KeyAction: "view", "slug": "s", "extra": "some_extra"}})
	require.True(t, ok)
	assert.Equal(t, "/some_extra/page/s", got)

	lang := MustNew("/:lang/pages/:page", Params{"lang": "en", KeyController: "pages", KeyAction: "display"},
		WithConstraint("lang", "en|fr"))

	got, ok = lang.Match(Target{Params: Params{KeyController: "pages", KeyAction: "display", "page": "about"}})
	require.True(t, ok)
	assert.Equal(t, "/en/pages/about", got)

	_, ok = lang.Match(Target{Params: Params{KeyController: "pages", KeyAction: "display", "page": "about", "lang": "de"}})
	assert.False(t, ok)
}

func TestRoute_Match_Prefix(t *testing.T) {
	t.Parallel()

	r := MustNew("/admin/:controller/:action/*", Params{
		KeyPrefix: "admin",
		"admin":   True,
		KeyPlugin: "",
		KeyAction: "index",
	})

	for _, action := range []string{"edit", "admin_edit"} {
		got, ok := r.Match(Target{
			Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: action, "admin": True},
			Pass:   []string{"5"},
		})
		require.True(t, ok, action)
		assert.Equal(t, "/admin/posts/edit/5", got)
	}

	_, ok := r.Match(Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "edit"}})
	assert.False(t, ok, "prefix flag is required")

	plain := MustNew("/:controller/:action/*", Params{KeyPlugin: "", KeyAction: "index"})
	_, ok = plain.Match(Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "edit", "admin": True}})
	assert.False(t, ok, "unprefixed route refuses a prefix flag")
}

func TestRoute_Match_PassDefaults(t *testing.T) {
	t.Parallel()

	r := MustNew("/", Params{KeyController: "pages", KeyAction: "display"}, WithPassDefaults("home"))

	got, ok := r.Match(Target{Params: Params{KeyController: "pages", KeyAction: "display"}, Pass: []string{"home"}})
	require.True(t, ok)
	assert.Equal(t, "/", got)

	_, ok = r.Match(Target{Params: Params{KeyController: "pages", KeyAction: "display"}, Pass: []string{"about"}})
	assert.False(t, ok)

	_, ok = r.Match(Target{Params: Params{KeyController: "pages", KeyAction: "display"}})
	assert.False(t, ok)

	_, ok = r.Match(Target{Params: Params{KeyController: "pages", KeyAction: "display"}, Pass: []string{"home", "x"}})
	assert.False(t, ok)
}

func TestRoute_Match_PassKeys(t *testing.T) {
	t.Parallel()

	r := MustNew("/posts/:id", Params{KeyController: "posts", KeyAction: "view"}, WithPass("id"))

	got, ok := r.Match(Target{Params: Params{KeyController: "posts", KeyAction: "view"}, Pass: []string{"7"}})
	require.True(t, ok)
	assert.Equal(t, "/posts/7", got, "missing key is taken from the positional arguments")

	got, ok = r.Match(Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "7"}, Pass: []string{"7"}})
	require.True(t, ok)
	assert.Equal(t, "/posts/7", got, "repeated value is consumed")

	_, ok = r.Match(Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "7"}, Pass: []string{"8"}})
	assert.False(t, ok)
}

func TestRoute_Match_Delimited(t *testing.T) {
	t.Parallel()

	r := MustNew("/view/:id::url_title", Params{KeyController: "posts", KeyAction: "view"}, WithConstraint("id", "[0-9]+"))

	got, ok := r.Match(Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "12", "url_title": "hello"}})
	require.True(t, ok)
	assert.Equal(t, "/view/12:hello", got)
}

func TestRoute_RoundTrip(t *testing.T) {
	t.Parallel()

	named := DefaultNamedConfig().ConnectDefaults(true)

	tests := []struct {
		name   string
		route  *Route
		target Target
	}{
		{
			name:   "plain keys",
			route:  MustNew("/posts/:id/:slug", Params{KeyController: "posts", KeyAction: "view"}),
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5", "slug": "hello"}},
		},
		{
			name:  "greedy with named",
			route: MustNew("/:controller/:action/*", Params{KeyPlugin: "", KeyAction: "index"}, WithNamedConfig(named)),
			target: Target{
				Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index", "page": "3"},
				Pass:   []string{"a", "b"},
			},
		},
		{
			name: "constrained date",
			route: MustNew("/:year/:month/:day/*", Params{KeyController: "archive", KeyAction: "view"},
				WithConstraintKind("year", ConstraintYear),
				WithConstraintKind("month", ConstraintMonth),
				WithConstraintKind("day", ConstraintDay)),
			target: Target{
				Params: Params{KeyController: "archive", KeyAction: "view", "year": "2007", "month": "08", "day": "01"},
				Pass:   []string{"title"},
			},
		},
		{
			name: "prefix",
			route: MustNew("/admin/:controller/:action/*", Params{
				KeyPrefix: "admin", "admin": True, KeyPlugin: "", KeyAction: "index",
			}),
			target: Target{Params: Params{KeyPlugin: "", KeyController: "users", KeyAction: "delete", "admin": True}, Pass: []string{"9"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path, ok := tt.route.Match(tt.target)
			require.True(t, ok)

			p, ok := tt.route.Parse("", path)
			require.True(t, ok, path)

			prefix := p.Params[KeyPrefix]
			for _, key := range tt.route.Keys() {
				got := p.Params[key]
				if key == KeyAction && prefix != "" {
					got = strings.TrimPrefix(got, prefix+"_")
				}
				assert.Equal(t, tt.target.Params[key], got, key)
			}
			for key, value := range tt.route.Defaults() {
				if key == KeyAction && prefix != "" {
					continue
				}
				if _, isKey := tt.target.Params[key]; !isKey {
					assert.Equal(t, value, p.Params[key], key)
				}
			}
			assert.Equal(t, len(tt.target.Pass), len(p.Pass))

			params := p.Params.Clone()
			for k, v := range p.Named {
				params[k] = v
			}
			again, ok := tt.route.Match(Target{Params: params, Pass: p.Pass})
			require.True(t, ok)
			assert.Equal(t, path, again)
		})
	}
}

func TestRoute_Match_RejectsUnwritableValues(t *testing.T) {
	t.Parallel()

	slug := MustNew("/posts/:slug", Params{KeyController: "posts", KeyAction: "view"})
	search := MustNew("/:controller/:action/*", Params{KeyPlugin: "", KeyAction: "index"},
		WithNamed(NamedRule{Name: "q"}), WithGreedy(true))
	delimited := MustNew("/view/:id::url_title", Params{KeyController: "posts", KeyAction: "view"})

	tests := []struct {
		name   string
		route  *Route
		target Target
	}{
		{
			name:   "placeholder value with a slash",
			route:  slug,
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "slug": "a/b"}},
		},
		{
			name:   "named value with a slash",
			route:  search,
			target: Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index", "q": "x/y"}},
		},
		{
			name:   "positional value with a slash",
			route:  search,
			target: Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index"}, Pass: []string{"a/b"}},
		},
		{
			name:   "positional value that reads as named",
			route:  search,
			target: Target{Params: Params{KeyPlugin: "", KeyController: "posts", KeyAction: "index"}, Pass: []string{"q:x"}},
		},
		{
			name:   "placeholder value with its delimiter",
			route:  delimited,
			target: Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "1:2", "url_title": "hello"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tt.route.Match(tt.target)
			assert.False(t, ok, got)
			assert.Empty(t, got)
		})
	}
}

func TestRoute_Match_EmptyPassIgnored(t *testing.T) {
	t.Parallel()

	r := MustNew("/posts/:id", Params{KeyController: "posts", KeyAction: "view"})

	got, ok := r.Match(Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5"}, Pass: []string{""}})
	require.True(t, ok)
	assert.Equal(t, "/posts/5", got)

	got, ok = r.Match(Target{Params: Params{KeyController: "posts", KeyAction: "view", "id": "5"}, Pass: []string{"", ""}})
	require.True(t, ok)
	assert.Equal(t, "/posts/5", got)
}

func TestRoute_RoundTrip_Delimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		path     string
		want     Params
	}{
		{
			name:     "dash",
			template: "/files/:name-:ext",
			path:     "/files/my-file-txt",
			want:     Params{"name": "my", "ext": "file-txt"},
		},
		{
			name:     "date",
			template: "/archive/:year-:month-:day",
			path:     "/archive/2024-01-15",
			want:     Params{"year": "2024", "month": "01", "day": "15"},
		},
		{
			name:     "colon",
			template: "/view/:id::url_title",
			path:     "/view/12:hello:world",
			want:     Params{"id": "12", "url_title": "hello:world"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := MustNew(tt.template, Params{KeyController: "pages", KeyAction: "view"})
			p, ok := r.Parse("", tt.path)
			require.True(t, ok)
			for k, v := range tt.want {
				assert.Equal(t, v, p.Params[k], k)
			}

			path, ok := r.Match(Target{Params: p.Params})
			require.True(t, ok)
			assert.Equal(t, tt.path, path)
		})
	}
}
