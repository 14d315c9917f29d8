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

// Package iterctx classifies lazy, pull-based value production in a unit:
// range-over-func iterators and their yield calls.
//
// Code before the first production point runs eagerly at call time; code
// after it runs only on each subsequent pull. Production points inside a
// defer-guarded region are detected separately, since that cleanup runs
// only when the consumer finishes or abandons iteration.
package iterctx

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"

	"fillmore-labs.com/panicflow/internal/unit"
)

// Info describes the lazy-production shape of one unit.
type Info struct {
	// IteratorShaped reports whether the unit is a yield-taking function or
	// returns one.
	IteratorShaped bool
	// ProductionPoints are the positions of all yield calls, in source
	// order, including calls in nested literals (which run on pull).
	ProductionPoints []token.Pos
	// GuardedProductions are the production points occurring while a defer
	// is pending in any enclosing function scope of the unit, at any
	// nesting depth.
	GuardedProductions []token.Pos
}

// FirstProduction returns the position of the first production point,
// [token.NoPos] when the unit produces nothing.
func (inf Info) FirstProduction() token.Pos {
	if len(inf.ProductionPoints) == 0 {
		return token.NoPos
	}

	return inf.ProductionPoints[0]
}

// BeforeFirstProduction reports whether pos runs eagerly at call time.
// A unit with zero production points defers nothing, so every position is
// vacuously before the first production.
func BeforeFirstProduction(inf Info, pos token.Pos) bool {
	first := inf.FirstProduction()

	return !first.IsValid() || pos < first
}

// Classify computes the lazy-production shape of u.
func Classify(info *types.Info, u *unit.Unit) Info {
	var inf Info

	sig, ok := u.Signature(info)
	if !ok {
		return inf
	}

	rootYield := yieldParam(sig)
	inf.IteratorShaped = rootYield != nil || returnsSequence(sig)

	s := scanner{
		info:   info,
		out:    &inf,
		frames: []*frame{{yield: rootYield}},
	}

	for _, body := range u.Bodies() {
		ast.Walk(s, body)
	}

	return inf
}

// frame tracks one function scope during the walk. Frames are shared by
// pointer so a defer statement is visible to later siblings.
type frame struct {
	yield    *types.Var // the scope's yield parameter, may be nil
	deferred bool       // a defer is pending in this scope
}

type scanner struct {
	info   *types.Info
	out    *Info
	frames []*frame // innermost last
}

// Visit implements [ast.Visitor]. Nested literals get their own frame; the
// child visitor shares the parent frames by pointer.
func (s scanner) Visit(n ast.Node) ast.Visitor {
	switch n := n.(type) {
	case *ast.FuncLit:
		f := &frame{}
		if sig, ok := s.info.TypeOf(n).(*types.Signature); ok {
			f.yield = yieldParam(sig)
		}

		return scanner{
			info:   s.info,
			out:    s.out,
			frames: append(slices.Clip(s.frames), f),
		}

	case *ast.DeferStmt:
		s.frames[len(s.frames)-1].deferred = true

	case *ast.CallExpr:
		if id, ok := ast.Unparen(n.Fun).(*ast.Ident); ok && s.isYield(id) {
			s.record(n.Lparen)
		}
	}

	return s
}

func (s scanner) isYield(id *ast.Ident) bool {
	obj, ok := s.info.Uses[id].(*types.Var)
	if !ok {
		return false
	}

	for _, f := range s.frames {
		if f.yield == obj {
			return true
		}
	}

	return false
}

func (s scanner) record(pos token.Pos) {
	s.out.ProductionPoints = append(s.out.ProductionPoints, pos)

	for _, f := range s.frames {
		if f.deferred {
			s.out.GuardedProductions = append(s.out.GuardedProductions, pos)

			return
		}
	}
}

// yieldParam returns the yield parameter of a sequence-shaped signature:
// exactly one parameter of form func(...) bool and no results, the shape of
// [iter.Seq] and [iter.Seq2].
func yieldParam(sig *types.Signature) *types.Var {
	if sig.Params().Len() != 1 || sig.Results().Len() != 0 {
		return nil
	}

	param := sig.Params().At(0)

	inner, ok := param.Type().Underlying().(*types.Signature)
	if !ok || inner.Results().Len() != 1 {
		return nil
	}

	basic, ok := inner.Results().At(0).Type().Underlying().(*types.Basic)
	if !ok || basic.Kind() != types.Bool {
		return nil
	}

	return param
}

// returnsSequence reports whether any result of sig is sequence-shaped.
func returnsSequence(sig *types.Signature) bool {
	results := sig.Results()
	for i := range results.Len() {
		if rsig, ok := results.At(i).Type().Underlying().(*types.Signature); ok && yieldParam(rsig) != nil {
			return true
		}
	}

	return false
}
