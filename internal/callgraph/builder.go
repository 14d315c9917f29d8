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

package callgraph

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"
	"runtime/trace"

	"fillmore-labs.com/panicflow/internal/snapshot"
	"fillmore-labs.com/panicflow/internal/unit"
)

// Builder resolves invocation expressions to their callees and populates a
// [Graph]. One builder serves one snapshot; create a fresh builder when the
// snapshot changes.
type Builder struct {
	snap  *snapshot.Snapshot
	units map[types.Object]*unit.Unit // declared units and local functions by symbol
	bound map[*ast.FuncLit]*unit.Unit // local-function literals, scanned under their own unit
}

// NewBuilder creates a builder for the given snapshot and indexes its units.
func NewBuilder(snap *snapshot.Snapshot) *Builder {
	b := &Builder{
		snap:  snap,
		units: make(map[types.Object]*unit.Unit),
		bound: make(map[*ast.FuncLit]*unit.Unit),
	}

	for u := range snap.Units() {
		if obj := u.Object(); obj != nil {
			b.units[obj] = u
		}

		if u.Kind() == unit.KindLocalFunc {
			b.bound[u.Lit()] = u
		}
	}

	return b
}

// BuildForProgram builds the call graph for every unit of the snapshot.
// A partially populated graph is never returned: cancellation surfaces as an
// error wrapping the context's cause.
func (b *Builder) BuildForProgram(ctx context.Context) (*Graph, error) {
	defer trace.StartRegion(ctx, "BuildForProgram").End()

	g := New()

	for u := range b.snap.Units() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("building call graph: %w", err)
		}

		g.GetOrCreateNode(u)

		if err := b.scanUnit(ctx, g, u); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// BuildForUnit builds a call graph restricted to the direct and nested
// callees of one unit's declared bodies.
func (b *Builder) BuildForUnit(ctx context.Context, u *unit.Unit) (*Graph, error) {
	defer trace.StartRegion(ctx, "BuildForUnit").End()

	g := New()
	g.GetOrCreateNode(u)

	if err := b.scanUnit(ctx, g, u); err != nil {
		return nil, err
	}

	return g, nil
}

// scanUnit records an edge for every invocation in u's executable regions.
// Function literals nested in the body are attributed to their own closure
// or local-function unit, not to u.
func (b *Builder) scanUnit(ctx context.Context, g *Graph, u *unit.Unit) error {
	for _, body := range u.Bodies() {
		if err := b.scanBody(ctx, g, u, body); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) scanBody(ctx context.Context, g *Graph, u *unit.Unit, body *ast.BlockStmt) error {
	var abort error

	ast.Inspect(body, func(n ast.Node) bool {
		if abort != nil {
			return false
		}

		switch n := n.(type) {
		case *ast.FuncLit:
			// A nested literal's calls belong to the literal's unit.
			if _, isLocal := b.bound[n]; isLocal {
				return false // scanned under its own enumerated unit
			}

			closure := unit.Closure(n)
			g.GetOrCreateNode(closure)
			abort = b.scanBody(ctx, g, closure, n.Body)

			return false

		case *ast.CallExpr:
			if err := ctx.Err(); err != nil {
				abort = fmt.Errorf("building call graph: %w", err)

				return false
			}

			b.recordCall(g, u, n)
		}

		return true
	})

	return abort
}

// recordCall resolves one invocation and records the edge. Unresolvable
// targets are silently skipped, the graph stays an under-approximation.
func (b *Builder) recordCall(g *Graph, caller *unit.Unit, call *ast.CallExpr) {
	callee, res := b.resolveCallee(call)
	switch res {
	case resolved:
		g.AddEdge(caller, callee, call.Lparen)

	case unresolvable:
		g.markIncomplete()

	case notACall:
		// conversion or builtin, nothing to record
	}
}
