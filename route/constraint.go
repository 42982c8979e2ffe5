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

// ConstraintKind names a predefined placeholder constraint.
type ConstraintKind uint8

const (
	ConstraintNone ConstraintKind = iota
	ConstraintID                  // numeric id or UUID
	ConstraintUUID
	ConstraintYear
	ConstraintMonth
	ConstraintDay
	ConstraintAction // index|show|add|create|edit|update|remove|del|delete|view|item
)

// Predefined constraint patterns.
const (
	PatternUUID   = `[A-Fa-f0-9]{8}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{4}-[A-Fa-f0-9]{12}`
	PatternID     = `[0-9]+|` + PatternUUID
	PatternYear   = `[12][0-9]{3}`
	PatternMonth  = `0[1-9]|1[012]`
	PatternDay    = `0[1-9]|[12][0-9]|3[01]`
	PatternAction = `index|show|add|create|edit|update|remove|del|delete|view|item`
)

// Pattern returns the regular expression for k, or "" for ConstraintNone.
func (k ConstraintKind) Pattern() string {
	switch k {
	case ConstraintID:
		return PatternID
	case ConstraintUUID:
		return PatternUUID
	case ConstraintYear:
		return PatternYear
	case ConstraintMonth:
		return PatternMonth
	case ConstraintDay:
		return PatternDay
	case ConstraintAction:
		return PatternAction
	default:
		return ""
	}
}

// String returns the lower-case name of k.
func (k ConstraintKind) String() string {
	switch k {
	case ConstraintID:
		return "id"
	case ConstraintUUID:
		return "uuid"
	case ConstraintYear:
		return "year"
	case ConstraintMonth:
		return "month"
	case ConstraintDay:
		return "day"
	case ConstraintAction:
		return "action"
	default:
		return "none"
	}
}

// ParseConstraintKind returns the kind named s. Unknown names return ConstraintNone.
func ParseConstraintKind(s string) ConstraintKind {
	for k := ConstraintID; k <= ConstraintAction; k++ {
		if k.String() == s {
			return k
		}
	}
	return ConstraintNone
}
