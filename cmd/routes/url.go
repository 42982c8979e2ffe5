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
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/routing"
	"rivaas.dev/routing/route"
)

func urlCmd(a *app) *cobra.Command {
	var (
		query    []string
		fragment string
		ext      string
		request  string
		full     bool
		escape   bool
		noBase   bool
	)

	cmd := &cobra.Command{
		Use:   "url [key=value...] [pass...]",
		Short: "Generate a URL from routing parameters",
		Long: `Url generates the URL for a set of parameters. Arguments of the form
key=value are parameters, the others are positional arguments. A key with
no value ("admin=") is an explicit null.

With --request the URL is generated in the context of the parameters the
given path parses to, so the controller, action, plugin and active prefix
are inherited.`,
		Example: `  routes url controller=posts action=view 5
  routes url --request /admin/posts action=edit 5
  routes url --query page=2 --fragment top controller=posts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			u := routing.URL{
				Params:   route.Params{},
				Fragment: fragment,
				Ext:      ext,
				NoBase:   noBase,
			}
			for _, arg := range args {
				if k, v, ok := strings.Cut(arg, "="); ok {
					u.Params[k] = v
					continue
				}
				u.Pass = append(u.Pass, arg)
			}
			if len(query) > 0 {
				u.Query = url.Values{}
				for _, q := range query {
					k, v, ok := strings.Cut(q, "=")
					if !ok {
						return fmt.Errorf("invalid query %q: want key=value", q)
					}
					u.Query.Add(k, v)
				}
			}

			var current *route.Parsed
			if request != "" {
				p, err := a.router.Parse(request)
				if err != nil {
					return fmt.Errorf("parsing request path: %w", err)
				}
				current = p
			}

			var opts []routing.URLOption
			if full {
				opts = append(opts, routing.Full())
			}
			if escape {
				opts = append(opts, routing.Escape())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), a.router.ForRequest(current, a.paths).URL(u, opts...))
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&query, "query", "q", nil, "query parameter key=value (repeatable)")
	flags.StringVar(&fragment, "fragment", "", "fragment appended after #")
	flags.StringVar(&ext, "ext", "", "extension appended to the path")
	flags.StringVar(&request, "request", "", "path of the current request")
	flags.BoolVar(&full, "full", false, "prepend the full base URL")
	flags.BoolVar(&escape, "escape", false, "join query parameters with &amp;")
	flags.BoolVar(&noBase, "no-base", false, "omit the base path")
	return cmd
}
