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

package unit

// Kind discriminates the declaration forms an analyzable unit can take.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// KindFunc is a package-level function declaration.
	KindFunc Kind = iota // func
	// KindMethod is a function declaration with a receiver.
	KindMethod // method
	// KindLocalFunc is a function literal bound to a local variable.
	KindLocalFunc // local func
	// KindClosure is an anonymous function literal.
	KindClosure // closure
)
