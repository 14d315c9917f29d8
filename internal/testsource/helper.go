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

// Package testsource provides utilities for parsing and analyzing Go source code in tests.
//
// It is designed to simplify testing of the panicflow analyzer by handling common
// boilerplate code for parsing and type-checking Go source fragments.
package testsource

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"fillmore-labs.com/panicflow/internal/snapshot"
	"fillmore-labs.com/panicflow/internal/unit"
)

const testpkg = "test"

// Parse parses a Go source code fragment holding top-level declarations.
// The provided source `src` is automatically prefixed with a `package test`
// clause, so tests declare functions, methods and types directly.
//
// Call [Check] on the result when type information is needed, or [Snapshot]
// for the combined operation.
func Parse(tb testing.TB, src string) (*token.FileSet, *ast.File) {
	tb.Helper()

	const filename = "test.go"

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, "package "+testpkg+"\n\n"+src,
		parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	return fset, f
}

// Check type-checks the parsed file and returns the package and the filled
// [types.Info] maps, for components that need binding, signature shapes or
// callee resolution.
func Check(tb testing.TB, fset *token.FileSet, f *ast.File) (*types.Package, *types.Info) {
	tb.Helper()

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Scopes:     make(map[ast.Node]*types.Scope),
	}

	conf := types.Config{Importer: importer.Default()}

	pkg, err := conf.Check(testpkg, fset, []*ast.File{f}, info)
	if err != nil {
		tb.Fatalf("failed to type Check source: %v", err)
	}

	return pkg, info
}

// Snapshot parses and type-checks src into one program snapshot.
func Snapshot(tb testing.TB, src string) *snapshot.Snapshot {
	tb.Helper()

	fset, f := Parse(tb, src)
	pkg, info := Check(tb, fset, f)

	return snapshot.New(fset, []*ast.File{f}, info, pkg)
}

// Unit returns the enumerated unit with the given name, failing the test
// when no such unit exists.
func Unit(tb testing.TB, snap *snapshot.Snapshot, name string) *unit.Unit {
	tb.Helper()

	for u := range snap.Units() {
		if u.Name() == name {
			return u
		}
	}

	tb.Fatalf("no unit named %q", name)

	return nil
}
