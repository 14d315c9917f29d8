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

package run

import (
	"context"
	"fmt"
	"go/ast"
	"go/types"

	"fillmore-labs.com/panicflow/internal/callgraph"
	"fillmore-labs.com/panicflow/internal/flow"
	"fillmore-labs.com/panicflow/internal/snapshot"
	"fillmore-labs.com/panicflow/internal/unit"
)

// newEscapeAnalyzer creates the flow analyzer computing the panic types
// that can escape each unit. The per-unit hook combines locally raised
// panic types with the raises of transitive callees, bounded by maxDepth,
// and clears the outgoing set when the unit installs a recovering defer.
//
// Facts inherit the graph's under-approximation: a panic raised behind an
// unresolvable call is missed, never invented.
func newEscapeAnalyzer(snap *snapshot.Snapshot, g *callgraph.Graph, maxDepth int) *flow.Analyzer[string] {
	hook := func(ctx context.Context, snap *snapshot.Snapshot, u *unit.Unit) (flow.Fact[string], error) {
		if err := ctx.Err(); err != nil {
			return flow.Fact[string]{}, fmt.Errorf("panic-escape analysis: %w", err)
		}

		incoming := make(flow.Set[string])

		for _, callee := range callgraph.TransitiveCallees(g, u, maxDepth) {
			if hasRecover(snap.Info, callee) {
				continue // the callee contains its own panics
			}

			for t := range raisedPanics(snap.Info, callee) {
				incoming.Add(t)
			}
		}

		outgoing := flow.Union(raisedPanics(snap.Info, u), incoming)
		if hasRecover(snap.Info, u) {
			outgoing = make(flow.Set[string])
		}

		return flow.Fact[string]{
			Unit:       u,
			Incoming:   incoming,
			Outgoing:   outgoing,
			Escapes:    outgoing.Len() > 0,
			Incomplete: g.Incomplete(),
		}, nil
	}

	return flow.New(snap, hook)
}

// raisedPanics returns the types of all panic values raised directly in
// u's own body, nested literals excluded.
func raisedPanics(info *types.Info, u *unit.Unit) flow.Set[string] {
	raised := make(flow.Set[string])

	for _, body := range u.Bodies() {
		ast.Inspect(body, func(n ast.Node) bool {
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok || !isBuiltin(info, call.Fun, "panic") || len(call.Args) != 1 {
				return true
			}

			if t := info.TypeOf(call.Args[0]); t != nil {
				raised.Add(types.Default(t).String())
			}

			return true
		})
	}

	return raised
}

// hasRecover reports whether u installs a deferred recover, directly or
// through a deferred literal.
func hasRecover(info *types.Info, u *unit.Unit) bool {
	recovers := false

	for _, body := range u.Bodies() {
		ast.Inspect(body, func(n ast.Node) bool {
			if recovers {
				return false
			}

			if _, ok := n.(*ast.FuncLit); ok {
				return false // a literal's defer recovers the literal, not u
			}

			d, ok := n.(*ast.DeferStmt)
			if !ok {
				return true
			}

			switch fun := ast.Unparen(d.Call.Fun).(type) {
			case *ast.Ident:
				recovers = isBuiltin(info, fun, "recover")

			case *ast.FuncLit:
				recovers = callsRecover(info, fun.Body)
			}

			return !recovers
		})

		if recovers {
			return true
		}
	}

	return false
}

// callsRecover reports whether body invokes the recover builtin, at any
// nesting depth.
func callsRecover(info *types.Info, body *ast.BlockStmt) bool {
	found := false

	ast.Inspect(body, func(n ast.Node) bool {
		if found {
			return false
		}

		if call, ok := n.(*ast.CallExpr); ok {
			found = isBuiltin(info, call.Fun, "recover")
		}

		return !found
	})

	return found
}

func isBuiltin(info *types.Info, fun ast.Expr, name string) bool {
	id, ok := ast.Unparen(fun).(*ast.Ident)
	if !ok {
		return false
	}

	b, ok := info.Uses[id].(*types.Builtin)

	return ok && b.Name() == name
}
