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

package analyzer

import (
	"flag"

	"fillmore-labs.com/panicflow/internal/config"
	"fillmore-labs.com/panicflow/internal/run"
)

// registerFlags binds the run options to command line flag values.
// A nil flag set value defaults to the program's command line.
func registerFlags(flags *flag.FlagSet, r *run.Options) {
	if flags == nil {
		flags = flag.CommandLine
	}

	flags.Var(NewCheckValue(&r.Checks, config.PanicEscape), "panic-escape",
		"report panics escaping exported functions")
	flags.Var(NewCheckValue(&r.Checks, config.FireAndForget), "fire-and-forget",
		"report unobserved futures and panics lost in detached closures")
	flags.Var(NewCheckValue(&r.Checks, config.GuardedYield), "guarded-yield",
		"report values produced while a defer is pending in iterators")
	flags.Var(NewBehaviorValue(&r.Behavior, config.IncludeGenerated), "generated",
		"check generated files")
	flags.IntVar(&r.MaxDepth, "max-depth", r.MaxDepth,
		"maximum call depth for transitive panic propagation")
}

// NewCheckValue returns a boolean [flag.Getter] toggling one check.
func NewCheckValue(flags *config.Checks, value config.Checks) flag.Getter {
	return boolValue[config.Checks, *config.Checks]{flags: flags, value: value}
}

// NewBehaviorValue returns a boolean [flag.Getter] toggling one behavior.
func NewBehaviorValue(flags *config.Behavior, value config.Behavior) flag.Getter {
	return boolValue[config.Behavior, *config.Behavior]{flags: flags, value: value}
}
