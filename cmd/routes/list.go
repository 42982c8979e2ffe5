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

package main

import (
	"github.com/spf13/cobra"

	"rivaas.dev/routing/route"
)

type routeOutput struct {
	Template string            `yaml:"template"`
	Class    string            `yaml:"class"`
	Defaults map[string]string `yaml:"defaults,omitempty"`
	Methods  []string          `yaml:"methods,omitempty"`
	Persist  []string          `yaml:"persist,omitempty"`
	Pattern  string            `yaml:"pattern,omitempty"`
}

func listCmd(a *app) *cobra.Command {
	var patterns bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the routes in the order they are tried",
		Long: `List prints the connected routes followed by the implicit default routes
derived from the plugins and prefixes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []routeOutput
			for _, m := range a.router.Routes() {
				ro := routeOutput{
					Template: m.Template(),
					Class:    route.ClassDefault,
					Persist:  m.Persist(),
				}
				if rt, ok := m.(*route.Route); ok {
					ro.Class = rt.Kind().String()
					ro.Defaults = rt.Defaults()
					ro.Methods = rt.Methods()
					if patterns {
						ro.Pattern = rt.Pattern()
					}
				}
				out = append(out, ro)
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&patterns, "patterns", false, "include the compiled regular expressions")
	return cmd
}
