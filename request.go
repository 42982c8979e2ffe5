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
	"rivaas.dev/routing/route"
)

// Paths describes where the current request lives.
type Paths struct {
	// Base is the path the application is mounted under, e.g. "/shop".
	Base string
	// Here is the full path of the current request.
	Here string
	// Webroot is the public asset root.
	Webroot string
}

// requestState is the context URL generation resolves relative parameters
// against.
type requestState struct {
	params  *route.Parsed
	paths   Paths
	current route.Matcher
}

// SetRequestInfo stores the parameters and paths of the current request on
// the router. Concurrent requests should use ForRequest instead.
func (r *Router) SetRequestInfo(p *route.Parsed, paths Paths) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.req.params = p.Clone()
	r.req.paths = paths
}

// RequestParams returns a copy of the stored request parameters, or nil.
func (r *Router) RequestParams() *route.Parsed {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.req.params.Clone()
}

// RequestPaths returns the stored request paths.
func (r *Router) RequestPaths() Paths {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.req.paths
}

func (r *Router) snapshot() requestState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.req
}

// Request generates URLs relative to a single request. It shares the route
// table of its router and is safe to use alongside other requests.
type Request struct {
	router *Router
	state  requestState
}

// ForRequest returns a request scope for p and paths.
//
// Example:
//
//	p, err := r.Parse(req.URL.Path)
//	if err != nil {
//	    return err
//	}
//	rq := r.ForRequest(p, routing.Paths{Base: "/shop", Here: req.URL.Path})
//	link := rq.URL(routing.URL{Params: route.Params{"action": "view"}, Pass: []string{"1"}})
func (r *Router) ForRequest(p *route.Parsed, paths Paths) *Request {
	return &Request{
		router: r,
		state:  requestState{params: p.Clone(), paths: paths},
	}
}

// URL generates a URL in the context of the request.
func (q *Request) URL(u URL, opts ...URLOption) string {
	return q.router.buildURL(q.state, u, opts)
}

// URLString resolves a string link in the context of the request.
func (q *Request) URLString(link string, opts ...URLOption) string {
	return q.router.buildURLString(q.state, link, opts)
}

// Params returns a copy of the request parameters, or nil.
func (q *Request) Params() *route.Parsed {
	return q.state.params.Clone()
}

// Paths returns the request paths.
func (q *Request) Paths() Paths {
	return q.state.paths
}
