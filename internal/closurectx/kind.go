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

package closurectx

// Kind classifies the context a closure appears in. The order is the
// classification priority: when several contexts apply, the most
// semantically significant one wins.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// KindUnclassified is a closure in no recognized context.
	KindUnclassified Kind = iota // unclassified
	// KindEventHandler is a closure registered as an event callback.
	KindEventHandler // event handler
	// KindQueryCombinator is a closure passed to a recognized sequence
	// combinator.
	KindQueryCombinator // query combinator
	// KindFireAndForget is a closure run as a detached unit of work.
	KindFireAndForget // fire and forget
	// KindGenericCallback is a closure bound to a callback-named parameter.
	KindGenericCallback // generic callback
)
