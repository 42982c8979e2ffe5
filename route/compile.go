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
	"fmt"
	"regexp"
	"regexp/syntax"
	"strings"
)

// rootPattern matches the root path, with any number of slashes.
var rootPattern = regexp.MustCompile(`^/*$`)

// compiled is the derived state of a Route. It is rebuilt whenever a
// constraint changes.
type compiled struct {
	re     *regexp.Regexp
	nodes  []Node
	keys   []string
	keySet map[string]struct{}
	greedy bool

	// checks holds the fully anchored constraint of every constrained key,
	// placeholder or not.
	checks map[string]*regexp.Regexp

	// forbid holds the characters an unconstrained placeholder may not
	// contain: the slash, and the delimiter joining it to the next one.
	forbid map[string]string
}

func (c *compiled) isKey(name string) bool {
	_, ok := c.keySet[name]
	return ok
}

// compileRoute builds the match regex of a template. The regex has one
// capture group per placeholder, in template order, and one more for the
// wildcard when the template ends with "/*".
func compileRoute(template string, defaults Params, constraints map[string]string) (*compiled, error) {
	nodes, err := ParseTemplate(template)
	if err != nil {
		return nil, err
	}

	c := &compiled{
		nodes:  nodes,
		keys:   Placeholders(nodes),
		keySet: make(map[string]struct{}),
		checks: make(map[string]*regexp.Regexp, len(constraints)),
		forbid: make(map[string]string),
	}
	for _, k := range c.keys {
		c.keySet[k] = struct{}{}
	}

	inner := make(map[string]string, len(constraints))
	for param, pattern := range constraints {
		check, err := regexp.Compile(`^(?:` + pattern + `)$`)
		if err != nil {
			return nil, constraintError(template, param, pattern, err)
		}
		c.checks[param] = check
		if inner[param], err = nonCapturing(pattern); err != nil {
			return nil, constraintError(template, param, pattern, err)
		}
	}

	if len(nodes) == 0 {
		c.re = rootPattern
		return c, nil
	}

	optional := func(n Node) bool {
		if n.Kind != NodePlaceholder || n.Value == KeyPlugin {
			return false
		}
		_, constrained := inner[n.Value]
		return constrained && defaults.Has(n.Value)
	}

	var b strings.Builder
	b.WriteByte('^')
	for i, n := range nodes {
		switch n.Kind {
		case NodeLiteral:
			text := n.Value
			// An optional placeholder owns the slash in front of it.
			if i+1 < len(nodes) && nodes[i+1].Slashed && optional(nodes[i+1]) {
				text = strings.TrimSuffix(text, "/")
			}
			b.WriteString(regexp.QuoteMeta(text))
		case NodePlaceholder:
			pattern, constrained := inner[n.Value]
			switch {
			case !constrained:
				forbid := "/"
				if d := delimiterAfter(nodes, i); d != 0 {
					forbid += string(d)
				}
				c.forbid[n.Value] = forbid
				b.WriteString(`([^` + forbid + `]+)`)
			case optional(n) && n.Slashed:
				b.WriteString(`(?:/(` + pattern + `)?)?`)
			case optional(n):
				b.WriteString(`(` + pattern + `)?`)
			default:
				b.WriteString(`(` + pattern + `)`)
			}
		case NodeWildcard:
			c.greedy = true
			b.WriteString(`(?:/(.*))?`)
		}
	}
	b.WriteString(`[/]*$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, &ConfigError{Template: template, Err: fmt.Errorf("%w: %w", ErrInvalidTemplate, err)}
	}
	c.re = re
	return c, nil
}

// delimiterAfter returns the delimiter joining the placeholder at i to the
// placeholder after it, or zero.
func delimiterAfter(nodes []Node, i int) byte {
	if i+2 < len(nodes) && nodes[i+1].Kind == NodeLiteral && nodes[i+2].Kind == NodePlaceholder {
		return nodes[i+2].Delimiter
	}
	return 0
}

func constraintError(template, param, pattern string, err error) error {
	return &ConfigError{
		Template: template,
		Param:    param,
		Pattern:  pattern,
		Err:      fmt.Errorf("%w: %w", ErrInvalidConstraint, err),
	}
}

// nonCapturing rewrites every capture group of pattern into a plain group,
// so a constraint never shifts the capture indexes of the route.
func nonCapturing(pattern string) (string, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return "", err
	}
	return stripCaptures(re).String(), nil
}

func stripCaptures(re *syntax.Regexp) *syntax.Regexp {
	for re.Op == syntax.OpCapture {
		re = re.Sub[0]
	}
	for i := range re.Sub {
		re.Sub[i] = stripCaptures(re.Sub[i])
	}
	return re
}

// group returns capture group i of the match m in s, or "" when it did not
// participate.
func group(s string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}
