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

package gclplugin

import panicflow "fillmore-labs.com/panicflow/analyzer"

// Settings represents the configuration options for an instance of the [Plugin].
type Settings struct {
	// PanicEscape enables reporting of panics escaping exported functions.
	PanicEscape *bool `json:"panic-escape,omitzero"`
	// FireAndForget enables reporting of unobserved futures and detached closures.
	FireAndForget *bool `json:"fire-and-forget,omitzero"`
	// GuardedYield enables reporting of values produced under pending defers.
	GuardedYield *bool `json:"guarded-yield,omitzero"`
	// MaxDepth bounds transitive call-graph traversals in edge hops.
	MaxDepth *int `json:"max-depth,omitzero"`
}

// Options converts [Settings] into a list of [panicflow.Option] for the panicflow analyzer.
// It processes settings and applies them only when explicitly set (non-nil).
func (s Settings) Options() []panicflow.Option {
	var opts []panicflow.Option

	opts = appendOption(opts, s.PanicEscape, panicflow.WithPanicEscape)
	opts = appendOption(opts, s.FireAndForget, panicflow.WithFireAndForget)
	opts = appendOption(opts, s.GuardedYield, panicflow.WithGuardedYield)
	opts = appendOption(opts, s.MaxDepth, panicflow.WithMaxDepth)

	return opts
}

// appendOption appends a non-nil setting to a [panicflow.Option] list.
func appendOption[T any](opts []panicflow.Option, value *T, constructor func(T) panicflow.Option) []panicflow.Option {
	if value == nil {
		return opts
	}

	return append(opts, constructor(*value))
}
