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

	"github.com/google/go-cmp/cmp"

	. "fillmore-labs.com/panicflow/internal/callgraph"
	"fillmore-labs.com/panicflow/internal/testsource"
	"fillmore-labs.com/panicflow/internal/unit"
)

func TestTransitiveCallees(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, chain)

	g, err := NewBuilder(snap).BuildForProgram(t.Context())
	if err != nil {
		t.Fatalf("BuildForProgram failed: %v", err)
	}

	a := testsource.Unit(t, snap, "a")

	tests := []struct {
		name  string
		depth int
		want  []string
	}{
		{name: "Zero", depth: 0, want: nil},
		{name: "One", depth: 1, want: []string{"b"}},
		{name: "Two", depth: 2, want: []string{"b", "c"}},
		{name: "Default", depth: DefaultMaxDepth, want: []string{"b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := calleeNames(g, a, tt.depth)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("TransitiveCallees mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTransitiveCallers(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, chain)

	g, err := NewBuilder(snap).BuildForProgram(t.Context())
	if err != nil {
		t.Fatalf("BuildForProgram failed: %v", err)
	}

	c := testsource.Unit(t, snap, "c")

	var names []string
	for _, caller := range TransitiveCallers(g, c, DefaultMaxDepth) {
		names = append(names, caller.Name())
	}

	if diff := cmp.Diff([]string{"b", "a"}, names); diff != "" {
		t.Errorf("TransitiveCallers mismatch (-want +got):\n%s", diff)
	}

	// The entry point has no callers.
	a := testsource.Unit(t, snap, "a")
	if callers := TransitiveCallers(g, a, DefaultMaxDepth); len(callers) != 0 {
		t.Errorf("got %d callers for the entry point, want 0", len(callers))
	}
}

func TestTraverseCycle(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, `
func a() { b() }

func b() { a() }
`)

	g, err := NewBuilder(snap).BuildForProgram(t.Context())
	if err != nil {
		t.Fatalf("BuildForProgram failed: %v", err)
	}

	a := testsource.Unit(t, snap, "a")

	// The start unit appears exactly once, reached through the cycle.
	got := calleeNames(g, a, DefaultMaxDepth)
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("cycle traversal mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseMonotonic(t *testing.T) {
	t.Parallel()

	// Two routes reach x: a short one through c and a long one through b, d
	// and e. Nodes behind x must stay reachable at every bound covering the
	// short route, regardless of which route is walked first.
	units := make(map[string]*unit.Unit, 7)
	for _, name := range []string{"a", "b", "c", "d", "e", "x", "y"} {
		units[name] = unit.Closure(&ast.FuncLit{})
	}

	g := New()

	for _, edge := range [][2]string{
		{"a", "c"}, {"a", "b"},
		{"b", "d"}, {"d", "e"}, {"e", "x"},
		{"c", "x"}, {"x", "y"},
	} {
		g.AddEdge(units[edge[0]], units[edge[1]], token.NoPos)
	}

	var sizes []int

	prev := map[*unit.Unit]struct{}{}
	for depth := range 6 {
		got := TransitiveCallees(g, units["a"], depth)
		sizes = append(sizes, len(got))

		seen := make(map[*unit.Unit]struct{}, len(got))
		for _, u := range got {
			seen[u] = struct{}{}
		}

		for u := range prev {
			if _, ok := seen[u]; !ok {
				t.Errorf("unit reachable at depth %d missing at depth %d", depth-1, depth)
			}
		}

		prev = seen
	}

	if diff := cmp.Diff([]int{0, 2, 4, 6, 6, 6}, sizes); diff != "" {
		t.Errorf("result sizes by depth mismatch (-want +got):\n%s", diff)
	}
}

func TestTraverseUnknownUnit(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, chain)

	g, err := NewBuilder(snap).BuildForProgram(t.Context())
	if err != nil {
		t.Fatalf("BuildForProgram failed: %v", err)
	}

	stranger := unit.Closure(&ast.FuncLit{})
	if got := TransitiveCallees(g, stranger, DefaultMaxDepth); got != nil {
		t.Errorf("traversal from unknown unit = %v, want nil", got)
	}
}
