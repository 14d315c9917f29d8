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

package callgraph_test

import (
	"go/ast"
	"go/token"
	"testing"

	. "fillmore-labs.com/panicflow/internal/callgraph"
	"fillmore-labs.com/panicflow/internal/unit"
)

// anonymous units carry identity through their literal, convenient for
// model-only tests.
func twoUnits() (*unit.Unit, *unit.Unit) {
	return unit.Closure(&ast.FuncLit{}), unit.Closure(&ast.FuncLit{})
}

func TestAddEdge(t *testing.T) {
	t.Parallel()

	caller, callee := twoUnits()

	g := New()
	g.AddEdge(caller, callee, token.Pos(10))

	if got, want := g.NodeCount(), 2; got != want {
		t.Errorf("NodeCount() = %d, want %d", got, want)
	}

	if got, want := g.EdgeCount(), 1; got != want {
		t.Errorf("EdgeCount() = %d, want %d", got, want)
	}

	from, ok := g.TryGetNode(caller)
	if !ok {
		t.Fatal("caller node missing")
	}

	to, ok := g.TryGetNode(callee)
	if !ok {
		t.Fatal("callee node missing")
	}

	// Edges are paired: the callee edge and the caller edge reference the
	// same call site.
	if len(from.Callees()) != 1 || from.Callees()[0].Peer() != to {
		t.Error("callee edge missing or wrong peer")
	}

	if len(to.Callers()) != 1 || to.Callers()[0].Peer() != from {
		t.Error("caller edge missing or wrong peer")
	}

	if from.Callees()[0].Site() != to.Callers()[0].Site() {
		t.Error("paired edges disagree on the call site")
	}
}

func TestDuplicateCallSites(t *testing.T) {
	t.Parallel()

	caller, callee := twoUnits()

	g := New()
	g.AddEdge(caller, callee, token.Pos(10))
	g.AddEdge(caller, callee, token.Pos(20))

	if got, want := g.EdgeCount(), 2; got != want {
		t.Errorf("EdgeCount() = %d, want %d", got, want)
	}

	from, _ := g.TryGetNode(caller)
	if len(from.Callees()) != 2 {
		t.Fatalf("got %d callee edges, want 2", len(from.Callees()))
	}

	if from.Callees()[0].Site() == from.Callees()[1].Site() {
		t.Error("duplicate call sites collapsed")
	}
}

func TestGetOrCreateNode(t *testing.T) {
	t.Parallel()

	u, _ := twoUnits()

	g := New()
	if g.GetOrCreateNode(u) != g.GetOrCreateNode(u) {
		t.Error("same unit resolves to different nodes")
	}

	if got, want := g.NodeCount(), 1; got != want {
		t.Errorf("NodeCount() = %d, want %d", got, want)
	}
}

func TestEmptyGraph(t *testing.T) {
	t.Parallel()

	u, _ := twoUnits()

	g := New()

	if _, ok := g.TryGetNode(u); ok {
		t.Error("empty graph resolves a node")
	}

	if g.Incomplete() {
		t.Error("empty graph is incomplete")
	}
}
