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

import "time"

// Observer is notified of routing operations. Implementations typically
// record metrics; see the metrics package.
//
// Thread safety: All methods must be safe for concurrent use.
type Observer interface {
	// OnParse is called after every parse. template is the template of the
	// matching route, or "" when no route matched.
	OnParse(template string, matched bool, elapsed time.Duration)

	// OnURL is called after every URL generation. template is the template
	// of the matching route, or "" when the URL was composed by the fallback.
	OnURL(template string, fallback bool)
}
