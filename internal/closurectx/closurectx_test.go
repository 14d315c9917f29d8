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

package closurectx_test

import (
	"go/ast"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/go/ast/inspector"

	. "fillmore-labs.com/panicflow/internal/closurectx"
	"fillmore-labs.com/panicflow/internal/testsource"
)

const src = `
type EventHandler func(int)

func Subscribe(h EventHandler) {}

func Map(xs []int, f func(int) int) []int { return nil }

type pool struct{}

func (pool) Go(f func()) {}

func apply(n int, callback func(int)) {}

func use() {
	Subscribe(func(int) {})

	_ = Map(nil, func(x int) int { return x })

	var p pool
	p.Go(func() {})

	apply(1, func(int) {})

	var clickHandler func()
	clickHandler = func() {}
	_ = clickHandler

	func() {}()
}
`

func TestClassify(t *testing.T) {
	t.Parallel()

	s := testsource.Snapshot(t, src)

	root := inspector.New(s.Files).Root()

	var got []Kind

	for c := range root.Preorder((*ast.FuncDecl)(nil)) {
		if c.Node().(*ast.FuncDecl).Name.Name != "use" {
			continue
		}

		for lc := range c.Preorder((*ast.FuncLit)(nil)) {
			ctx := Context{
				Lit:    lc.Node().(*ast.FuncLit),
				Parent: lc.Parent().Node(),
			}

			got = append(got, Classify(s.Info, ctx))
		}
	}

	want := []Kind{
		KindEventHandler,    // Subscribe registration
		KindQueryCombinator, // Map argument
		KindFireAndForget,   // pool.Go spawn
		KindGenericCallback, // callback-named parameter
		KindEventHandler,    // assignment to a Handler-suffixed variable
		KindUnclassified,    // directly invoked literal
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlerParameterWins(t *testing.T) {
	t.Parallel()

	// A handler-typed parameter outranks the surrounding combinator name.
	s := testsource.Snapshot(t, `
type ClickHandler func(int) int

func Map(xs []int, f ClickHandler) []int { return nil }

func use() {
	_ = Map(nil, func(x int) int { return x })
}
`)

	root := inspector.New(s.Files).Root()

	for lc := range root.Preorder((*ast.FuncLit)(nil)) {
		ctx := Context{
			Lit:    lc.Node().(*ast.FuncLit),
			Parent: lc.Parent().Node(),
		}

		if got := Classify(s.Info, ctx); got != KindEventHandler {
			t.Errorf("Classify = %v, want %v", got, KindEventHandler)
		}
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := map[Kind]string{
		KindUnclassified:    "unclassified",
		KindEventHandler:    "event handler",
		KindQueryCombinator: "query combinator",
		KindFireAndForget:   "fire and forget",
		KindGenericCallback: "generic callback",
	}

	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
