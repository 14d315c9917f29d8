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

// Package unit models the analyzable units of a program snapshot: functions,
// methods, local functions and closures.
//
// A unit resolved for one snapshot is immutable. Identity is the declaring
// types object for named units and the function literal for anonymous ones,
// so two textually identical declarations are always distinct units.
package unit

import (
	"go/ast"
	"go/token"
	"go/types"
)

// Unit is one analyzable unit of a program snapshot.
type Unit struct {
	kind Kind
	obj  types.Object  // *types.Func for declared units, the bound *types.Var for local functions, nil for closures
	decl *ast.FuncDecl // declaration syntax, nil for anonymous and external units
	lit  *ast.FuncLit  // literal syntax for local functions and closures
}

// Declared creates a unit from a function or method declaration.
// It reports false when the declaration has no resolved symbol.
func Declared(info *types.Info, decl *ast.FuncDecl) (*Unit, bool) {
	obj, ok := info.Defs[decl.Name].(*types.Func)
	if !ok {
		return nil, false
	}

	kind := KindFunc
	if decl.Recv != nil {
		kind = KindMethod
	}

	return &Unit{kind: kind, obj: obj, decl: decl}, true
}

// ForObject creates a unit for a resolved function symbol without syntax,
// typically a callee declared outside the snapshot.
func ForObject(obj *types.Func) *Unit {
	kind := KindFunc
	if sig, ok := obj.Type().(*types.Signature); ok && sig.Recv() != nil {
		kind = KindMethod
	}

	return &Unit{kind: kind, obj: obj}
}

// Local creates a unit for a function literal bound to a local variable.
func Local(obj types.Object, lit *ast.FuncLit) *Unit {
	return &Unit{kind: KindLocalFunc, obj: obj, lit: lit}
}

// Closure creates a unit for an anonymous function literal.
func Closure(lit *ast.FuncLit) *Unit {
	return &Unit{kind: KindClosure, lit: lit}
}

// Kind returns the declaration form of the unit.
func (u *Unit) Kind() Kind {
	return u.kind
}

// Object returns the declaring symbol, nil for closures.
func (u *Unit) Object() types.Object {
	return u.obj
}

// Decl returns the function declaration, nil for anonymous and external units.
func (u *Unit) Decl() *ast.FuncDecl {
	return u.decl
}

// Lit returns the function literal, nil for declared units.
func (u *Unit) Lit() *ast.FuncLit {
	return u.lit
}

// Name returns the declared name of the unit.
func (u *Unit) Name() string {
	if u.obj != nil {
		return u.obj.Name()
	}

	return "(closure)"
}

// Pos returns the source position of the unit's declaration.
func (u *Unit) Pos() token.Pos {
	switch {
	case u.decl != nil:
		return u.decl.Pos()

	case u.lit != nil:
		return u.lit.Pos()

	case u.obj != nil:
		return u.obj.Pos()

	default:
		return token.NoPos
	}
}

// Exported reports whether the unit is part of the package's exported API.
func (u *Unit) Exported() bool {
	return u.obj != nil && u.obj.Exported() && (u.kind == KindFunc || u.kind == KindMethod)
}

// FuncType returns the syntactic signature, nil for external units.
func (u *Unit) FuncType() *ast.FuncType {
	switch {
	case u.decl != nil:
		return u.decl.Type

	case u.lit != nil:
		return u.lit.Type

	default:
		return nil
	}
}

// Signature returns the resolved signature of the unit.
func (u *Unit) Signature(info *types.Info) (*types.Signature, bool) {
	if u.obj != nil {
		sig, ok := u.obj.Type().Underlying().(*types.Signature)

		return sig, ok
	}

	if u.lit != nil {
		if tv, ok := info.Types[u.lit]; ok {
			sig, ok := tv.Type.Underlying().(*types.Signature)

			return sig, ok
		}
	}

	return nil, false
}

// DeclaringType returns the receiver type of a method unit.
func (u *Unit) DeclaringType() types.Type {
	if u.kind != KindMethod || u.obj == nil {
		return nil
	}

	sig, ok := u.obj.Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return nil
	}

	return sig.Recv().Type()
}

// Key identifies a unit within one program snapshot. Named units compare by
// their types object, anonymous ones by their literal, so the same symbol
// resolved through different references maps to one key.
type Key struct {
	obj types.Object
	lit *ast.FuncLit
}

// Key returns the identity key of the unit.
func (u *Unit) Key() Key {
	switch u.kind {
	case KindFunc, KindMethod:
		return Key{obj: u.obj}

	default:
		return Key{lit: u.lit}
	}
}
