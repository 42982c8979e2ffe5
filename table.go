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

package routing

import (
	"strings"

	"rivaas.dev/routing/route"
)

// minRoutesForIndexing is the minimum number of routes before the
// leading-segment index is used to filter parse candidates.
const minRoutesForIndexing = 10

// table is an ordered list of routes with an index on the leading literal
// segment of their template. Candidates are always yielded in table order.
type table struct {
	routes  []route.Matcher
	index   map[string][]int // leading segment -> positions
	generic []int            // positions of routes without a literal leading segment
}

func newTable() *table {
	return &table{index: make(map[string][]int)}
}

// leadingSegmenter is implemented by routes that can report their leading
// literal segment.
type leadingSegmenter interface {
	LeadingSegment() (string, bool)
}

func (t *table) add(m route.Matcher) {
	i := len(t.routes)
	t.routes = append(t.routes, m)
	if ls, ok := m.(leadingSegmenter); ok {
		if seg, ok := ls.LeadingSegment(); ok {
			t.index[seg] = append(t.index[seg], i)
			return
		}
	}
	t.generic = append(t.generic, i)
}

func (t *table) len() int { return len(t.routes) }

// each calls fn for every route in order until fn returns false.
func (t *table) each(fn func(route.Matcher) bool) {
	for _, m := range t.routes {
		if !fn(m) {
			return
		}
	}
}

// candidates calls fn, in table order, for every route that may parse
// path, until fn returns false.
func (t *table) candidates(path string, fn func(route.Matcher) bool) {
	if len(t.routes) < minRoutesForIndexing {
		t.each(fn)
		return
	}

	indexed, generic := t.index[leadingSegment(path)], t.generic
	for len(indexed) > 0 || len(generic) > 0 {
		var next int
		switch {
		case len(generic) == 0 || len(indexed) > 0 && indexed[0] < generic[0]:
			next, indexed = indexed[0], indexed[1:]
		default:
			next, generic = generic[0], generic[1:]
		}
		if !fn(t.routes[next]) {
			return
		}
	}
}

// leadingSegment returns the first segment of path.
func leadingSegment(path string) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	return seg
}
