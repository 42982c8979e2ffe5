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
	"slices"
	"strings"
	"sync"
)

// NamedMode decides which key:value segments of a wildcard become named
// parameters.
type NamedMode uint8

const (
	// NamedDisabled passes every segment positionally.
	NamedDisabled NamedMode = iota
	// NamedGreedy names every key:value segment unless a rule for the key
	// rejects the value.
	NamedGreedy
	// NamedRuleFiltered names only segments accepted by a rule.
	NamedRuleFiltered
)

// String returns the name of m.
func (m NamedMode) String() string {
	switch m {
	case NamedDisabled:
		return "disabled"
	case NamedGreedy:
		return "greedy"
	case NamedRuleFiltered:
		return "rule_filtered"
	default:
		return fmt.Sprintf("NamedMode(%d)", m)
	}
}

// DefaultSeparator separates the key and value of a named parameter.
const DefaultSeparator = ":"

// DefaultNamedKeys are the names accepted by ConnectOptions.Default.
var DefaultNamedKeys = []string{"page", "fields", "order", "limit", "recursive", "sort", "direction", "step"}

// NamedRule accepts a named parameter.
type NamedRule struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Match is an unanchored regular expression the value must match.
	// Empty accepts any value.
	Match string `json:"match,omitempty" yaml:"match,omitempty" mapstructure:"match"`

	// Controller and Action restrict the rule to requests for these
	// controllers and actions.
	Controller []string `json:"controller,omitempty" yaml:"controller,omitempty" mapstructure:"controller"`
	Action     []string `json:"action,omitempty" yaml:"action,omitempty" mapstructure:"action"`
}

// Validate checks the rule name and pattern.
func (nr NamedRule) Validate() error {
	if nr.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidNamedRule)
	}
	if nr.Match != "" {
		if _, err := rulePattern(nr.Match); err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidNamedRule, nr.Name, err)
		}
	}
	return nil
}

// Accepts reports whether the rule accepts value in the given request
// context. A restriction applies only when the context names a controller
// or action.
func (nr NamedRule) Accepts(value, controller, action string) bool {
	if len(nr.Controller) > 0 && controller != "" && !slices.Contains(nr.Controller, controller) {
		return false
	}
	if len(nr.Action) > 0 && action != "" && !slices.Contains(nr.Action, action) {
		return false
	}
	if nr.Match == "" {
		return true
	}
	re, err := rulePattern(nr.Match)
	return err == nil && re.MatchString(value)
}

var rulePatterns sync.Map // string -> *regexp.Regexp

func rulePattern(pattern string) (*regexp.Regexp, error) {
	if re, ok := rulePatterns.Load(pattern); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	rulePatterns.Store(pattern, re)
	return re, nil
}

// NamedConfig is the router-wide named parameter configuration.
type NamedConfig struct {
	Mode      NamedMode
	Rules     []NamedRule // in emission order
	Defaults  []string    // names added by ConnectOptions.Default
	Separator string

	// Configured is set once rules have been connected explicitly.
	Configured bool
}

// DefaultNamedConfig returns the unconfigured, greedy configuration.
func DefaultNamedConfig() NamedConfig {
	return NamedConfig{
		Mode:      NamedGreedy,
		Defaults:  slices.Clone(DefaultNamedKeys),
		Separator: DefaultSeparator,
	}
}

// Clone returns a deep copy of c.
func (c NamedConfig) Clone() NamedConfig {
	out := c
	out.Rules = make([]NamedRule, len(c.Rules))
	for i, rule := range c.Rules {
		rule.Controller = slices.Clone(rule.Controller)
		rule.Action = slices.Clone(rule.Action)
		out.Rules[i] = rule
	}
	out.Defaults = slices.Clone(c.Defaults)
	return out
}

// Rule returns the rule for name.
func (c NamedConfig) Rule(name string) (NamedRule, bool) {
	for _, rule := range c.Rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return NamedRule{}, false
}

// Validate checks every rule.
func (c NamedConfig) Validate() error {
	for _, rule := range c.Rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c NamedConfig) separator() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}

// ConnectOptions controls NamedConfig.Connect.
type ConnectOptions struct {
	Default   bool   // also accept every name of Defaults
	Reset     bool   // drop the existing rules first
	Greedy    bool   // name keys without a rule as well
	Separator string // replaces the separator when set
}

// Connect returns c with rules added. A rule replaces an existing rule of
// the same name in place. Unconfigured rules are always reset.
func (c NamedConfig) Connect(rules []NamedRule, o ConnectOptions) (NamedConfig, error) {
	for _, rule := range rules {
		if err := rule.Validate(); err != nil {
			return c, err
		}
	}

	out := c.Clone()
	if o.Separator != "" {
		out.Separator = o.Separator
	}
	if o.Reset || !c.Configured {
		out.Rules = nil
	}
	add := slices.Clone(rules)
	if o.Default {
		for _, name := range out.Defaults {
			if !slices.ContainsFunc(add, func(r NamedRule) bool { return r.Name == name }) {
				add = append(add, NamedRule{Name: name})
			}
		}
	}
	for _, rule := range add {
		if i := slices.IndexFunc(out.Rules, func(r NamedRule) bool { return r.Name == rule.Name }); i >= 0 {
			out.Rules[i] = rule
			continue
		}
		out.Rules = append(out.Rules, rule)
	}

	out.Mode = NamedRuleFiltered
	if o.Greedy {
		out.Mode = NamedGreedy
	}
	out.Configured = true
	return out, nil
}

// ConnectDefaults is Connect with the boolean shorthand: true accepts the
// default names greedily, false disables named parameters.
func (c NamedConfig) ConnectDefaults(enabled bool) NamedConfig {
	out, _ := c.Connect(nil, ConnectOptions{Default: enabled, Reset: true, Greedy: enabled})
	if !enabled {
		out.Mode = NamedDisabled
	}
	return out
}

// namedScope is the effective named configuration of one route.
type namedScope struct {
	mode  NamedMode
	rules []NamedRule
	sep   string
}

func (s namedScope) rule(name string) (NamedRule, bool) {
	for _, rule := range s.rules {
		if rule.Name == name {
			return rule, true
		}
	}
	return NamedRule{}, false
}

// scope resolves the route options against the router-wide config. Route
// rules replace the router-wide rules.
func (r *Route) scope(cfg NamedConfig) namedScope {
	s := namedScope{mode: cfg.Mode, rules: cfg.Rules, sep: cfg.separator()}
	switch {
	case r.set.namedOff:
		s.mode = NamedDisabled
	case r.set.namedSet:
		s.rules = r.set.named
		s.mode = NamedRuleFiltered
		if r.set.greedy != nil && *r.set.greedy {
			s.mode = NamedGreedy
		}
	case r.set.greedy != nil:
		s.mode = NamedRuleFiltered
		if *r.set.greedy {
			s.mode = NamedGreedy
		}
	}
	return s
}

// split separates the segments of a wildcard region into positional and
// named arguments. Empty segments are skipped.
func (s namedScope) split(args, controller, action string) ([]string, map[string]string) {
	pass := []string{}
	named := make(map[string]string)
	for _, seg := range strings.Split(args, "/") {
		if seg == "" {
			continue
		}
		if s.mode == NamedDisabled {
			pass = append(pass, seg)
			continue
		}
		key, value, ok := strings.Cut(seg, s.sep)
		if !ok || key == "" {
			pass = append(pass, seg)
			continue
		}
		rule, hasRule := s.rule(key)
		switch {
		case hasRule && rule.Accepts(value, controller, action):
			named[key] = value
		case !hasRule && s.mode == NamedGreedy:
			named[key] = value
		default:
			pass = append(pass, seg)
		}
	}
	return pass, named
}

// elements picks the named parameters among extras in rule order and
// returns what no rule accepted.
func (s namedScope) elements(extras Params, controller, action string) ([]NamedPair, Params) {
	if s.mode == NamedDisabled || len(extras) == 0 {
		return nil, extras
	}
	leftover := extras.Clone()
	var named []NamedPair
	for _, rule := range s.rules {
		v, ok := leftover[rule.Name]
		if !ok || !rule.Accepts(v, controller, action) {
			continue
		}
		named = append(named, NamedPair{Key: rule.Name, Value: v})
		delete(leftover, rule.Name)
	}
	return named, leftover
}

// writable reports whether pass and named survive a trip through split
// unchanged: no value may contain a slash, a named key may not contain the
// separator, and no positional argument may read as a named one.
func (s namedScope) writable(pass []string, named []NamedPair, controller, action string) bool {
	for _, v := range pass {
		if strings.Contains(v, "/") {
			return false
		}
		if s.mode == NamedDisabled {
			continue
		}
		key, value, ok := strings.Cut(v, s.sep)
		if !ok || key == "" {
			continue
		}
		rule, hasRule := s.rule(key)
		if hasRule && rule.Accepts(value, controller, action) || !hasRule && s.mode == NamedGreedy {
			return false
		}
	}
	for _, p := range named {
		if p.Key == "" || strings.Contains(p.Key, "/") || strings.Contains(p.Key, s.sep) || strings.Contains(p.Value, "/") {
			return false
		}
	}
	return true
}
