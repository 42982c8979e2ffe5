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
	"strings"
)

// NodeKind identifies the kind of a template node.
type NodeKind uint8

const (
	NodeLiteral     NodeKind = iota // literal text, matched verbatim
	NodePlaceholder                 // :name
	NodeWildcard                    // trailing /*
)

// String returns the name of k.
func (k NodeKind) String() string {
	switch k {
	case NodeLiteral:
		return "literal"
	case NodePlaceholder:
		return "placeholder"
	case NodeWildcard:
		return "wildcard"
	default:
		return fmt.Sprintf("NodeKind(%d)", k)
	}
}

// Node is an element of a parsed template.
type Node struct {
	Kind  NodeKind
	Value string // literal text or placeholder name

	// Slashed is set on a placeholder that directly follows a '/'.
	Slashed bool

	// Delimiter is the character joining a placeholder to the placeholder
	// before it in the same segment, as in ":year-:month". Zero otherwise.
	Delimiter byte
}

// Delimiters may join two placeholders within one path segment.
const Delimiters = ":@;$-"

// ParseTemplate splits a template into literal, placeholder and wildcard
// nodes. The empty template and "/" yield no nodes.
func ParseTemplate(template string) ([]Node, error) {
	if template == "" || template == "/" {
		return nil, nil
	}

	body := template
	wildcard := false
	if strings.HasSuffix(body, "/*") {
		body = body[:len(body)-2]
		wildcard = true
	}

	var (
		nodes []Node
		lit   strings.Builder
		seen  = make(map[string]struct{})
	)
	flush := func() {
		if lit.Len() > 0 {
			nodes = append(nodes, Node{Kind: NodeLiteral, Value: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(body); {
		if body[i] != ':' {
			lit.WriteByte(body[i])
			i++
			continue
		}
		n := scanName(body[i+1:])
		if n == 0 {
			lit.WriteByte(':')
			i++
			continue
		}
		name := body[i+1 : i+1+n]
		if _, dup := seen[name]; dup {
			return nil, &ConfigError{Template: template, Param: name, Err: fmt.Errorf("%w: duplicate placeholder", ErrInvalidTemplate)}
		}
		seen[name] = struct{}{}

		node := Node{Kind: NodePlaceholder, Value: name, Slashed: i > 0 && body[i-1] == '/'}
		if text := lit.String(); len(text) == 1 && strings.IndexByte(Delimiters, text[0]) >= 0 &&
			len(nodes) > 0 && nodes[len(nodes)-1].Kind == NodePlaceholder {
			node.Delimiter = text[0]
		}
		flush()
		nodes = append(nodes, node)
		i += 1 + n
	}
	flush()

	if wildcard {
		nodes = append(nodes, Node{Kind: NodeWildcard, Slashed: true})
	}
	return nodes, nil
}

// FormatTemplate renders nodes back into template syntax.
func FormatTemplate(nodes []Node) string {
	if len(nodes) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case NodeLiteral:
			b.WriteString(n.Value)
		case NodePlaceholder:
			b.WriteByte(':')
			b.WriteString(n.Value)
		case NodeWildcard:
			b.WriteString("/*")
		}
	}
	return b.String()
}

// Placeholders returns the placeholder names of nodes in template order.
func Placeholders(nodes []Node) []string {
	var keys []string
	for _, n := range nodes {
		if n.Kind == NodePlaceholder {
			keys = append(keys, n.Value)
		}
	}
	return keys
}

// scanName returns the length of the placeholder name at the start of s.
// A name starts with a letter or underscore, continues with letters,
// digits, '_' or '-', and ends with a letter or digit.
func scanName(s string) int {
	if s == "" || !(isAlpha(s[0]) || s[0] == '_') {
		return 0
	}
	n := 1
	for n < len(s) && (isAlnum(s[n]) || s[n] == '_' || s[n] == '-') {
		n++
	}
	for n > 0 && !isAlnum(s[n-1]) {
		n--
	}
	return n
}

func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isAlnum(c byte) bool { return isAlpha(c) || c >= '0' && c <= '9' }
