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

// Package snapshot abstracts one immutable program snapshot: the parsed
// source files of a package together with its semantic binding information.
//
// All analysis components take a snapshot instead of reaching for global
// state, so staleness across snapshots is a construction-site concern, not
// an implicit one.
package snapshot

import (
	"go/ast"
	"go/token"
	"go/types"
	"iter"

	"golang.org/x/tools/go/analysis"

	"fillmore-labs.com/panicflow/internal/unit"
)

// Snapshot is one type-checked program snapshot.
type Snapshot struct {
	Fset  *token.FileSet
	Files []*ast.File
	Info  *types.Info
	Pkg   *types.Package
}

// New creates a snapshot from type-checked sources.
func New(fset *token.FileSet, files []*ast.File, info *types.Info, pkg *types.Package) *Snapshot {
	return &Snapshot{Fset: fset, Files: files, Info: info, Pkg: pkg}
}

// FromPass creates a snapshot backed by an [analysis.Pass].
func FromPass(p *analysis.Pass) *Snapshot {
	return &Snapshot{Fset: p.Fset, Files: p.Files, Info: p.TypesInfo, Pkg: p.Pkg}
}

// Units enumerates every declared function, method and local function of the
// snapshot in source order. Closures are not enumerated here, they become
// units on demand when a caller invokes or classifies them.
func (s *Snapshot) Units() iter.Seq[*unit.Unit] {
	return func(yield func(*unit.Unit) bool) {
		for _, file := range s.Files {
			for _, decl := range file.Decls {
				fd, ok := decl.(*ast.FuncDecl)
				if !ok {
					continue
				}

				u, ok := unit.Declared(s.Info, fd)
				if !ok {
					continue
				}

				if !yield(u) {
					return
				}

				if fd.Body == nil {
					continue
				}

				if !s.yieldLocalFuncs(fd.Body, yield) {
					return
				}
			}
		}
	}
}

// File returns the source file containing pos, or nil.
func (s *Snapshot) File(pos token.Pos) *ast.File {
	for _, file := range s.Files {
		if file.FileStart <= pos && pos < file.FileEnd {
			return file
		}
	}

	return nil
}

// yieldLocalFuncs yields a unit for every function literal bound to a local
// variable inside body, including literals nested in other literals.
func (s *Snapshot) yieldLocalFuncs(body *ast.BlockStmt, yield func(*unit.Unit) bool) bool {
	ok := true

	ast.Inspect(body, func(n ast.Node) bool {
		if !ok {
			return false
		}

		switch n := n.(type) {
		case *ast.AssignStmt:
			if n.Tok != token.DEFINE {
				return true
			}

			for i, rhs := range n.Rhs {
				lit, isLit := rhs.(*ast.FuncLit)
				if !isLit || i >= len(n.Lhs) {
					continue
				}

				ok = yieldBound(s.Info, n.Lhs[i], lit, yield)
				if !ok {
					return false
				}
			}

		case *ast.ValueSpec:
			for i, value := range n.Values {
				lit, isLit := value.(*ast.FuncLit)
				if !isLit || i >= len(n.Names) {
					continue
				}

				ok = yieldBound(s.Info, n.Names[i], lit, yield)
				if !ok {
					return false
				}
			}
		}

		return true
	})

	return ok
}

func yieldBound(info *types.Info, lhs ast.Expr, lit *ast.FuncLit, yield func(*unit.Unit) bool) bool {
	id, ok := lhs.(*ast.Ident)
	if !ok || id.Name == "_" {
		return true
	}

	obj := info.Defs[id]
	if obj == nil {
		return true
	}

	return yield(unit.Local(obj, lit))
}
