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

// Package analyzer implements the panicflow static analysis pass.
//
// # Overview
//
// PanicFlow tracks panic values through the package call graph and reports
// three classes of problems:
//
//   - panic-escape: a panic raised in an exported function, or in one of its
//     transitive callees, that no recovering defer contains
//   - fire-and-forget: a future-like result that is never observed, or a
//     panic inside a detached goroutine or background task where it
//     terminates the program instead of unwinding into a caller
//   - guarded-yield: a value produced by a range-over-func iterator while a
//     defer is pending, where the consumer can observe torn-down state
//
// # Example
//
//	func Parse(data []byte) Config {
//	    if len(data) == 0 {
//	        panic("empty input") // escapes the exported API
//	    }
//	    // ...
//	}
//
// PanicFlow reports Parse because the panic unwinds into every caller.
// Recovering in Parse, or in a documented wrapper, resolves the diagnostic.
//
// # Suppression
//
// Individual diagnostics are suppressed with a trailing
// //nolint:panicflow comment on the reported line, on the enclosing
// declaration or on the file.
package analyzer
