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

	"rivaas.dev/routing"
)

type parsedOutput struct {
	Route  string            `yaml:"route"`
	Params map[string]string `yaml:"params"`
	Pass   []string          `yaml:"pass,omitempty"`
	Named  map[string]string `yaml:"named,omitempty"`
	Ext    string            `yaml:"ext,omitempty"`
	URL    string            `yaml:"url"`
}

func parseCmd(a *app) *cobra.Command {
	var (
		method string
		exts   []string
	)

	cmd := &cobra.Command{
		Use:   "parse PATH",
		Short: "Parse a path into routing parameters",
		Long: `Parse runs PATH through the connected routes and prints the parameters of
the first route that accepts it, together with the URL they reverse to.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("ext") {
				a.router.ParseExtensions(exts...)
			}

			p, err := a.router.ParseMethod(method, args[0])
			if err != nil {
				return err
			}
			rq := a.router.ForRequest(p, a.paths)
			return writeYAML(cmd.OutOrStdout(), parsedOutput{
				Route:  p.Route,
				Params: p.Params,
				Pass:   p.Pass,
				Named:  p.Named,
				Ext:    p.Ext,
				URL:    rq.URL(routing.ReverseURL(p)),
			})
		},
	}

	cmd.Flags().StringVarP(&method, "method", "X", "", "request method for verb-bound routes")
	cmd.Flags().StringSliceVar(&exts, "ext", nil, "extensions to parse; empty accepts any")
	return cmd
}
