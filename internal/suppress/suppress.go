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

// Package suppress resolves directive-based suppression: a fact is
// excluded from reporting when a nolint directive covers its location, its
// enclosing declaration or its file.
package suppress

import (
	"go/ast"

	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/panicflow/internal/astutil"
)

// Suppressed reports whether a diagnostic at the cursor's node should be
// excluded. It checks the node's own line, then walks up to the enclosing
// function or declaration and finally the file.
func Suppressed(file astutil.CurrentFile, c inspector.Cursor) bool {
	if n := c.Node(); n != nil && file.NoLintComment(n.Pos()) {
		return true
	}

	for e := range c.Enclosing((*ast.FuncDecl)(nil), (*ast.GenDecl)(nil), (*ast.File)(nil)) {
		var doc *ast.CommentGroup

		switch n := e.Node().(type) {
		case *ast.FuncDecl:
			doc = n.Doc

		case *ast.GenDecl:
			doc = n.Doc

		case *ast.File:
			doc = n.Doc
		}

		if doc != nil && astutil.CommentHasNoLint(doc.List[len(doc.List)-1]) {
			return true
		}
	}

	return false
}
