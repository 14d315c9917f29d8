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
	"go/ast"
	"go/types"

	"fillmore-labs.com/panicflow/internal/unit"
)

// resolution is the outcome of binding an invocation to its target.
type resolution uint8

const (
	// resolved means the target unit is statically known.
	resolved resolution = iota
	// notACall means the expression is a conversion or builtin invocation.
	notACall
	// unresolvable means the target cannot be determined statically:
	// dynamic dispatch through an interface, or an opaque function value.
	unresolvable
)

// resolveCallee attempts semantic resolution of one invocation expression.
func (b *Builder) resolveCallee(call *ast.CallExpr) (*unit.Unit, resolution) {
	info := b.snap.Info

	if tv, ok := info.Types[call.Fun]; ok && tv.IsType() {
		return nil, notACall // conversion, not an invocation
	}

	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		return b.unitForObject(info.Uses[fun])

	case *ast.SelectorExpr:
		if sel, ok := info.Selections[fun]; ok {
			fn, ok := sel.Obj().(*types.Func)
			if !ok {
				return nil, unresolvable // func-typed field, opaque value
			}

			return b.unitForFunc(fn)
		}

		// qualified identifier pkg.F
		return b.unitForObject(info.Uses[fun.Sel])

	case *ast.FuncLit:
		// direct invocation of a literal
		return unit.Closure(fun), resolved

	default:
		return nil, unresolvable // computed function value
	}
}

// unitForObject maps a resolved symbol to a callee unit.
func (b *Builder) unitForObject(obj types.Object) (*unit.Unit, resolution) {
	switch obj := obj.(type) {
	case *types.Func:
		return b.unitForFunc(obj)

	case *types.Var:
		// A function value is only resolvable when it is a local function
		// with a single known binding.
		if u, ok := b.units[obj]; ok {
			return u, resolved
		}

		return nil, unresolvable

	case *types.Builtin:
		return nil, notACall

	default:
		return nil, unresolvable
	}
}

// unitForFunc maps a function symbol to its in-snapshot unit when declared
// here, or to a syntaxless external unit otherwise.
func (b *Builder) unitForFunc(fn *types.Func) (*unit.Unit, resolution) {
	if sig, ok := fn.Type().(*types.Signature); ok {
		if recv := sig.Recv(); recv != nil && types.IsInterface(recv.Type()) {
			return nil, unresolvable // dynamic dispatch
		}
	}

	if u, ok := b.units[fn]; ok {
		return u, resolved
	}

	return unit.ForObject(fn), resolved
}
