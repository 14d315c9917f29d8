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

package unit

import "go/ast"

// bodyExtractor returns the executable regions for one unit kind.
type bodyExtractor func(u *Unit) []*ast.BlockStmt

// One extractor per unit kind instead of a type switch over syntax nodes.
var bodyExtractors = [...]bodyExtractor{
	KindFunc:      declBody,
	KindMethod:    declBody,
	KindLocalFunc: litBody,
	KindClosure:   litBody,
}

// Bodies returns the zero-or-more executable regions of the unit.
// External references and bodyless declarations have no region.
func (u *Unit) Bodies() []*ast.BlockStmt {
	return bodyExtractors[u.kind](u)
}

func declBody(u *Unit) []*ast.BlockStmt {
	if u.decl == nil || u.decl.Body == nil {
		return nil // external reference or assembly-backed declaration
	}

	return []*ast.BlockStmt{u.decl.Body}
}

func litBody(u *Unit) []*ast.BlockStmt {
	if u.lit == nil {
		return nil
	}

	return []*ast.BlockStmt{u.lit.Body}
}
