// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
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
//
// SPDX-License-Identifier: Apache-2.0

// Package config holds the bitmask-backed configuration of the panicflow
// checks and behavior.
package config

// Checks selects the individual panicflow checks.
type Checks uint8

const (
	// PanicEscape reports panic values that can escape exported functions.
	PanicEscape Checks = 1 << iota

	// FireAndForget reports unobserved future-like results and panics lost
	// in detached closures.
	FireAndForget

	// GuardedYield reports values produced inside defer-guarded cleanup
	// regions of iterators.
	GuardedYield
)

// DefaultChecks returns the checks enabled by default.
func DefaultChecks() Checks {
	return PanicEscape | FireAndForget | GuardedYield
}

// Set enables or disables the given check.
func (c *Checks) Set(flag Checks, value bool) {
	if value {
		*c |= flag
	} else {
		*c &^= flag
	}
}

// Enabled reports whether the given check is enabled.
func (c Checks) Enabled(flag Checks) bool {
	return c&flag != 0
}

// Behavior holds behavioral options.
type Behavior uint8

const (
	// IncludeGenerated specifies whether generated files are analyzed.
	IncludeGenerated Behavior = 1 << iota
)

// DefaultBehavior returns the default behavioral options.
func DefaultBehavior() Behavior {
	return 0
}

// Set enables or disables the given behavior.
func (b *Behavior) Set(flag Behavior, value bool) {
	if value {
		*b |= flag
	} else {
		*b &^= flag
	}
}

// Enabled reports whether the given behavior is enabled.
func (b Behavior) Enabled(flag Behavior) bool {
	return b&flag != 0
}
