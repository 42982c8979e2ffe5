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

// Command routes inspects a route table: it parses paths, generates URLs and
// lists the connected routes.
//
//	routes --routes routes.yaml parse /posts/view/5
//	routes --routes routes.yaml url controller=posts action=view 5
//	routes --routes routes.yaml list
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"rivaas.dev/routing"
	"rivaas.dev/routing/config"
	"rivaas.dev/routing/logging"
	"rivaas.dev/routing/metrics"
)

type options struct {
	routes    string
	config    string
	base      string
	logLevel  string
	logFormat string
	metrics   bool
	otlp      string
}

// app is the state shared by the subcommands.
type app struct {
	router   *routing.Router
	paths    routing.Paths
	recorder *metrics.Recorder
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		opts options
		a    = &app{}
	)

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect a route table",
		Long: `Routes loads a route table and the routing settings of an application
and answers routing questions: which route parses a path, which URL a set
of parameters produces, and which routes are connected.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context(), opts, cmd.ErrOrStderr())
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.routes, "routes", "", "route table file (yaml, json or toml)")
	flags.StringVar(&opts.config, "config", "", "application config file with routing and app keys")
	flags.StringVar(&opts.base, "base", "", "base path the application is mounted under")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log format: console, text or json")
	flags.BoolVar(&opts.metrics, "metrics", false, "print routing metrics to stderr on exit")
	flags.StringVar(&opts.otlp, "otlp-endpoint", "", "push routing metrics to this OTLP/HTTP collector instead")

	cmd.AddCommand(
		parseCmd(a),
		urlCmd(a),
		listCmd(a),
	)
	return cmd
}

func (a *app) setup(ctx context.Context, opts options, stderr io.Writer) error {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseHandlerType(opts.logFormat)
	if err != nil {
		return err
	}
	logger, err := logging.New(
		logging.WithHandlerType(format),
		logging.WithOutput(stderr),
		logging.WithLevel(level),
		logging.WithComponent("routing"),
	)
	if err != nil {
		return err
	}

	routerOpts := []routing.Option{routing.WithLogger(logger.Logger())}
	if opts.metrics || opts.otlp != "" {
		exporter := metrics.WithStdout(stderr)
		if opts.otlp != "" {
			exporter = metrics.WithOTLP(opts.otlp)
		}
		a.recorder, err = metrics.New(
			exporter,
			metrics.WithServiceName("routes"),
			metrics.WithLogger(logger.Logger()),
		)
		if err != nil {
			return err
		}
		routerOpts = append(routerOpts, routing.WithObserver(a.recorder))
	}

	var settings *config.Routing
	if opts.config != "" {
		settings, err = config.LoadRouting(ctx, config.WithFile(opts.config), config.WithEnv("APP_"))
		if err != nil {
			return err
		}
		routerOpts = append(routerOpts,
			routing.WithSettings(settings),
			routing.WithFullBaseURL(settings.FullBaseURL()),
		)
		a.paths.Base = settings.Base()
	}
	if opts.base != "" {
		a.paths.Base = opts.base
	}

	if a.router, err = routing.New(routerOpts...); err != nil {
		return err
	}
	if settings != nil && len(settings.Extensions()) > 0 {
		a.router.ParseExtensions(settings.Extensions()...)
	}
	if opts.routes != "" {
		if err = routing.LoadRoutes(ctx, a.router, config.WithFile(opts.routes)); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.recorder == nil {
		return nil
	}
	return a.recorder.Shutdown(ctx)
}

func writeYAML(w io.Writer, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}
