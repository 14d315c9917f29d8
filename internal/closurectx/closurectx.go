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

// Package closurectx classifies the context a closure appears in, feeding
// context-sensitive exception-safety rules.
//
// Classification is tried in a fixed priority: event handler, then query
// combinator, then fire and forget, then generic callback. An event-handler
// closure that also sits inside a query combinator stays an event handler.
package closurectx

import (
	"go/ast"
	"go/types"
	"strings"
)

// queryCombinators are the recognized deferred and eager sequence
// combinator names, the shapes of slices, maps and iter helpers.
var queryCombinators = map[string]bool{
	"Map": true, "FlatMap": true, "Filter": true, "Reduce": true,
	"Fold": true, "ForEach": true, "SortFunc": true, "SortStableFunc": true,
	"DeleteFunc": true, "IndexFunc": true, "ContainsFunc": true,
	"MaxFunc": true, "MinFunc": true, "CompactFunc": true, "EqualFunc": true,
}

// spawnFactories are the recognized "run on a background unit of work"
// method names, the shape of errgroup and worker pools.
var spawnFactories = map[string]bool{
	"Go": true, "Submit": true, "Run": true, "Spawn": true,
}

// callbackHints mark parameter names or types as generic callbacks.
var callbackHints = [...]string{"callback", "action", "func", "fn", "hook"}

// Context is the syntactic context of one closure: the literal and its
// immediate parent node, parentheses stripped.
type Context struct {
	Lit    *ast.FuncLit
	Parent ast.Node
}

// Classify determines the usage kind of the closure in ctx, trying each
// classification in fixed priority order.
func Classify(info *types.Info, ctx Context) Kind {
	switch {
	case isEventHandler(info, ctx):
		return KindEventHandler

	case isQueryCombinator(info, ctx):
		return KindQueryCombinator

	case isFireAndForget(info, ctx):
		return KindFireAndForget

	case isGenericCallback(info, ctx):
		return KindGenericCallback

	default:
		return KindUnclassified
	}
}

// isEventHandler recognizes subscribe-style registration, assignment to a
// handler-named target, and handler-named parameter types.
func isEventHandler(info *types.Info, ctx Context) bool {
	switch parent := ctx.Parent.(type) {
	case *ast.AssignStmt:
		for i, rhs := range parent.Rhs {
			if ast.Unparen(rhs) != ast.Expr(ctx.Lit) || i >= len(parent.Lhs) {
				continue
			}

			if targetIsHandler(info, parent.Lhs[i]) {
				return true
			}
		}

	case *ast.CallExpr:
		if name, ok := calleeName(parent); ok && isSubscribeName(name) {
			return true
		}

		// A handler-named parameter type marks the closure as an event
		// callback even inside another recognized context.
		if param, ok := parameterFor(info, parent, ctx.Lit); ok {
			if named, ok := param.Type().(*types.Named); ok {
				return strings.HasSuffix(named.Obj().Name(), "Handler")
			}
		}
	}

	return false
}

// isQueryCombinator reports whether the closure is an argument to a
// recognized sequence combinator.
func isQueryCombinator(_ *types.Info, ctx Context) bool {
	call, ok := ctx.Parent.(*ast.CallExpr)
	if !ok || !isArgument(call, ctx.Lit) {
		return false
	}

	name, ok := calleeName(call)

	return ok && queryCombinators[name]
}

// isFireAndForget recognizes go statements and background-spawn factories
// taking the closure as their sole function argument.
func isFireAndForget(info *types.Info, ctx Context) bool {
	call, ok := ctx.Parent.(*ast.CallExpr)
	if !ok {
		return false
	}

	if ast.Unparen(call.Fun) == ast.Expr(ctx.Lit) {
		// directly invoked literal, fire and forget only under a go statement
		return false
	}

	if !isArgument(call, ctx.Lit) {
		return false
	}

	name, ok := calleeName(call)
	if !ok || !spawnFactories[name] {
		return false
	}

	return soleFuncArgument(info, call, ctx.Lit)
}

// isGenericCallback reports whether the closure binds to a parameter whose
// name or type heuristically marks it as a callback.
func isGenericCallback(info *types.Info, ctx Context) bool {
	call, ok := ctx.Parent.(*ast.CallExpr)
	if !ok {
		return false
	}

	param, ok := parameterFor(info, call, ctx.Lit)
	if !ok {
		return false
	}

	hint := strings.ToLower(param.Name() + " " + param.Type().String())
	for _, h := range callbackHints {
		if strings.Contains(hint, h) {
			return true
		}
	}

	return false
}

func targetIsHandler(info *types.Info, lhs ast.Expr) bool {
	var name string

	switch lhs := lhs.(type) {
	case *ast.Ident:
		name = lhs.Name

	case *ast.SelectorExpr:
		name = lhs.Sel.Name

	default:
		return false
	}

	if strings.HasSuffix(name, "Handler") {
		return true
	}

	if t := info.TypeOf(lhs); t != nil {
		if named, ok := t.(*types.Named); ok {
			return strings.HasSuffix(named.Obj().Name(), "Handler")
		}
	}

	return false
}

func isSubscribeName(name string) bool {
	return name == "Subscribe" || name == "AddListener" ||
		strings.HasPrefix(name, "On") || strings.HasPrefix(name, "Handle")
}

func calleeName(call *ast.CallExpr) (string, bool) {
	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		return fun.Name, true

	case *ast.SelectorExpr:
		return fun.Sel.Name, true

	case *ast.IndexExpr: // explicit instantiation of a generic combinator
		if id, ok := fun.X.(*ast.Ident); ok {
			return id.Name, true
		}
	}

	return "", false
}

func isArgument(call *ast.CallExpr, lit *ast.FuncLit) bool {
	_, ok := argIndex(call, lit)

	return ok
}

func argIndex(call *ast.CallExpr, lit *ast.FuncLit) (int, bool) {
	for i, arg := range call.Args {
		if ast.Unparen(arg) == ast.Expr(lit) {
			return i, true
		}
	}

	return 0, false
}

// parameterFor returns the callee parameter the closure argument binds to,
// mapping extra arguments onto a variadic final parameter.
func parameterFor(info *types.Info, call *ast.CallExpr, lit *ast.FuncLit) (*types.Var, bool) {
	i, ok := argIndex(call, lit)
	if !ok {
		return nil, false
	}

	sig, ok := info.TypeOf(call.Fun).(*types.Signature)
	if !ok {
		return nil, false
	}

	params := sig.Params()
	if params.Len() == 0 {
		return nil, false
	}

	if i >= params.Len() {
		if !sig.Variadic() {
			return nil, false
		}

		i = params.Len() - 1
	}

	return params.At(i), true
}

func soleFuncArgument(info *types.Info, call *ast.CallExpr, lit *ast.FuncLit) bool {
	funcArgs := 0

	for _, arg := range call.Args {
		if t := info.TypeOf(arg); t != nil {
			if _, ok := t.Underlying().(*types.Signature); ok {
				funcArgs++
			}
		}
	}

	return funcArgs == 1 && isArgument(call, lit)
}
