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

// Package asyncctx classifies the asynchronous structure of a unit: spawned
// goroutines, future-like results and suspension points.
//
// Code before the first suspension point executes synchronously at call
// time; code after it executes on resumption. All queries are cheap, local
// computations over syntax and binding, recomputed per call and uniform
// over functions, methods, local functions and closures.
package asyncctx

import (
	"go/ast"
	"go/token"
	"go/types"

	"fillmore-labs.com/panicflow/internal/unit"
)

// Info describes the asynchronous shape of one unit.
type Info struct {
	// Spawns reports whether the unit starts goroutines.
	Spawns bool
	// ReturnsFuture reports whether the unit returns a receive-capable
	// channel.
	ReturnsFuture bool
	// FireAndForget reports whether the unit spawns goroutines without any
	// observable result.
	FireAndForget bool
	// FirstSuspension is the position of the first suspension point,
	// [token.NoPos] when the unit never suspends.
	FirstSuspension token.Pos
	// SuspensionCount is the number of suspension points in the unit's own
	// body, nested literals excluded.
	SuspensionCount int
}

// Classify computes the asynchronous shape of u.
func Classify(info *types.Info, u *unit.Unit) Info {
	var inf Info

	if sig, ok := u.Signature(info); ok {
		inf.ReturnsFuture = resultsContainFuture(sig)
		inf.FireAndForget = sig.Results().Len() == 0
	}

	for _, body := range u.Bodies() {
		inspectShallow(body, func(n ast.Node) {
			switch n := n.(type) {
			case *ast.GoStmt:
				inf.Spawns = true

			case *ast.UnaryExpr:
				if n.Op == token.ARROW {
					inf.suspendAt(n.OpPos)
				}

			case *ast.SelectStmt:
				inf.suspendAt(n.Select)

			case *ast.CallExpr:
				if isWaitCall(info, n) {
					inf.suspendAt(n.Pos())
				}

			case *ast.RangeStmt:
				if isFutureLike(info.TypeOf(n.X)) {
					inf.suspendAt(n.Range)
				}
			}
		})
	}

	inf.FireAndForget = inf.FireAndForget && inf.Spawns

	return inf
}

// BeforeFirstSuspension reports whether pos executes synchronously at call
// time. A unit without suspension points is synchronous throughout, so
// every position is before the first suspension.
func BeforeFirstSuspension(inf Info, pos token.Pos) bool {
	return !inf.FirstSuspension.IsValid() || pos < inf.FirstSuspension
}

// UnobservedFutures returns the calls in u whose future-like result is
// never consumed: not assigned, not received from, not returned and not
// passed on. These are fire-and-forget preconditions for upstream rules.
func UnobservedFutures(info *types.Info, u *unit.Unit) []*ast.CallExpr {
	var unobserved []*ast.CallExpr

	for _, body := range u.Bodies() {
		inspectShallow(body, func(n ast.Node) {
			switch n := n.(type) {
			case *ast.ExprStmt:
				if call, ok := n.X.(*ast.CallExpr); ok && callReturnsFuture(info, call) {
					unobserved = append(unobserved, call)
				}

			case *ast.GoStmt:
				if callReturnsFuture(info, n.Call) {
					unobserved = append(unobserved, n.Call)
				}
			}
		})
	}

	return unobserved
}

func (inf *Info) suspendAt(pos token.Pos) {
	if !inf.FirstSuspension.IsValid() {
		inf.FirstSuspension = pos
	}

	inf.SuspensionCount++
}

// inspectShallow walks body in source order without descending into nested
// function literals, whose statements execute under a different unit.
func inspectShallow(body *ast.BlockStmt, visit func(ast.Node)) {
	ast.Inspect(body, func(n ast.Node) bool {
		if _, ok := n.(*ast.FuncLit); ok {
			return false
		}

		if n != nil {
			visit(n)
		}

		return true
	})
}

func callReturnsFuture(info *types.Info, call *ast.CallExpr) bool {
	tv, ok := info.Types[call]
	if !ok || tv.IsType() {
		return false
	}

	if tuple, ok := tv.Type.(*types.Tuple); ok {
		for v := range tuple.Variables() {
			if isFutureLike(v.Type()) {
				return true
			}
		}

		return false
	}

	return isFutureLike(tv.Type)
}

func resultsContainFuture(sig *types.Signature) bool {
	results := sig.Results()
	for i := range results.Len() {
		if isFutureLike(results.At(i).Type()) {
			return true
		}
	}

	return false
}

// isWaitCall reports whether call is a blocking wait, a parameterless
// method named Wait, the shape of sync.WaitGroup and errgroup.
func isWaitCall(info *types.Info, call *ast.CallExpr) bool {
	sel, ok := ast.Unparen(call.Fun).(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Wait" {
		return false
	}

	fn, ok := info.Uses[sel.Sel].(*types.Func)
	if !ok {
		return false
	}

	sig := fn.Signature()

	return sig.Recv() != nil && sig.Params().Len() == 0
}

// isFutureLike reports whether t is a receive-capable channel.
func isFutureLike(t types.Type) bool {
	if t == nil {
		return false
	}

	ch, ok := t.Underlying().(*types.Chan)

	return ok && ch.Dir() != types.SendOnly
}
