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
	"errors"
	"fmt"
	"go/ast"
	"runtime/trace"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"fillmore-labs.com/panicflow/internal/astutil"
	"fillmore-labs.com/panicflow/internal/asyncctx"
	"fillmore-labs.com/panicflow/internal/callgraph"
	"fillmore-labs.com/panicflow/internal/closurectx"
	"fillmore-labs.com/panicflow/internal/config"
	"fillmore-labs.com/panicflow/internal/flow"
	"fillmore-labs.com/panicflow/internal/iterctx"
	"fillmore-labs.com/panicflow/internal/snapshot"
	"fillmore-labs.com/panicflow/internal/suppress"
	"fillmore-labs.com/panicflow/internal/unit"
)

// ErrResultMissing is returned when a required analyzer result is missing.
// This typically indicates a configuration error where the analyzer's
// Requires field is not properly set.
var ErrResultMissing = errors.New("analyzer result missing")

// Run executes the panicflow analyzer's pipeline.
func (r *Options) Run(p *analysis.Pass) (any, error) {
	// Retrieves the [inspector.Inspector] from the pass results.
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("panicflow: %s %w", inspect.Analyzer.Name, ErrResultMissing)
	}

	ctx := context.Background()

	ctx, task := trace.NewTask(ctx, "PanicFlow")
	defer task.End()

	trace.Log(ctx, "package", p.Pkg.Path())

	snap := snapshot.FromPass(p)

	// Stage 1: build the package-wide call graph once; all checks share it.
	graph, err := callgraph.NewBuilder(snap).BuildForProgram(ctx)
	if err != nil {
		return nil, err
	}

	// Stage 2: the escape analyzer memoizes one fact per unit, so overlapping
	// transitive queries below stay cheap.
	escape := newEscapeAnalyzer(snap, graph, r.MaxDepth)

	// Remember the current file over all functions declared in it
	var currentFile astutil.CurrentFile

	// Loop over all files
	for f := range in.Root().Children() {
		file := f.Node().(*ast.File)

		currentFile = astutil.NewCurrentFile(p.Fset, file)
		if !currentFile.Valid() {
			astutil.InternalError(p, file, "File %s without valid info", file.Name.Name)

			continue
		}

		// Skip generated files
		if currentFile.Generated() && !r.Behavior.Enabled(config.IncludeGenerated) {
			continue
		}

		// Skip files with nolint comment
		if file.Doc != nil && astutil.CommentHasNoLint(file.Doc.List[len(file.Doc.List)-1]) {
			continue
		}

		// Loop over all function and method declarations in this file
		for c := range f.Preorder((*ast.FuncDecl)(nil)) {
			fun := c.Node().(*ast.FuncDecl)

			if fun.Body == nil || suppress.Suppressed(currentFile, c) {
				continue
			}

			u, ok := unit.Declared(p.TypesInfo, fun)
			if !ok {
				astutil.InternalError(p, fun, "Function %s without object", fun.Name.Name)

				continue
			}

			// Stage 3: run the enabled checks over this declaration.
			if r.Checks.Enabled(config.PanicEscape) {
				if err := r.checkPanicEscape(ctx, p, currentFile, escape, u); err != nil {
					return nil, err
				}
			}

			if r.Checks.Enabled(config.FireAndForget) {
				if err := r.checkFireAndForget(ctx, p, currentFile, c, escape, u); err != nil {
					return nil, err
				}
			}

			if r.Checks.Enabled(config.GuardedYield) {
				r.checkGuardedYield(p, currentFile, u)
			}
		}
	}

	return nil, nil
}

// checkPanicEscape reports exported declarations whose outgoing panic set is
// not empty. Unexported units surface through their exported callers.
func (r *Options) checkPanicEscape(
	ctx context.Context, p *analysis.Pass, file astutil.CurrentFile, escape *flow.Analyzer[string], u *unit.Unit,
) error {
	if !u.Exported() {
		return nil
	}

	fact, err := escape.Analyze(ctx, u)
	if err != nil {
		return err
	}

	if !fact.Escapes || file.NoLintComment(u.Pos()) {
		return nil
	}

	p.Reportf(u.Pos(), "panic may escape exported %s %s: %s",
		u.Kind(), u.Name(), panicList(fact.Outgoing))

	return nil
}

// checkFireAndForget reports future-like results that are never observed and
// detached closures whose panics are silently lost.
func (r *Options) checkFireAndForget(
	ctx context.Context, p *analysis.Pass, file astutil.CurrentFile,
	c inspector.Cursor, escape *flow.Analyzer[string], u *unit.Unit,
) error {
	for _, call := range asyncctx.UnobservedFutures(p.TypesInfo, u) {
		if file.NoLintComment(call.Pos()) {
			continue
		}

		p.Report(analysis.Diagnostic{
			Pos: call.Pos(), End: call.End(),
			Message: "future-like result is never observed",
		})
	}

	// A panic in a goroutine or background task has no caller to unwind
	// into. Report closures in a fire-and-forget position with escaping
	// panics.
	for lc := range c.Preorder((*ast.FuncLit)(nil)) {
		lit := lc.Node().(*ast.FuncLit)

		if !r.isDetached(p, lc, lit) || file.NoLintComment(lit.Pos()) {
			continue
		}

		fact, err := escape.Analyze(ctx, unit.Closure(lit))
		if err != nil {
			return err
		}

		if fact.Escapes {
			p.Reportf(lit.Pos(), "panic in detached %s is lost: %s",
				detachedName(lc), panicList(fact.Outgoing))
		}
	}

	return nil
}

// isDetached reports whether lit runs without an observing caller: the body
// of a go statement or a closure classified as fire and forget.
func (r *Options) isDetached(p *analysis.Pass, lc inspector.Cursor, lit *ast.FuncLit) bool {
	parent := lc.Parent().Node()

	if call, ok := parent.(*ast.CallExpr); ok && call.Fun == lit {
		_, isGo := lc.Parent().Parent().Node().(*ast.GoStmt)

		return isGo
	}

	cctx := closurectx.Context{Lit: lit, Parent: parent}

	return closurectx.Classify(p.TypesInfo, cctx) == closurectx.KindFireAndForget
}

// panicList renders a panic type set deterministically for diagnostics.
func panicList(s flow.Set[string]) string {
	values := s.Values()
	slices.Sort(values)

	return strings.Join(values, ", ")
}

func detachedName(lc inspector.Cursor) string {
	if call, ok := lc.Parent().Node().(*ast.CallExpr); ok {
		if _, ok := call.Fun.(*ast.FuncLit); ok {
			return "goroutine"
		}
	}

	return "task"
}

// checkGuardedYield reports values produced while a defer is pending. The
// deferred cleanup runs when the consumer stops pulling, so a production
// point inside the guarded region can observe torn-down state.
func (r *Options) checkGuardedYield(p *analysis.Pass, file astutil.CurrentFile, u *unit.Unit) {
	inf := iterctx.Classify(p.TypesInfo, u)
	if !inf.IteratorShaped {
		return
	}

	for _, pos := range inf.GuardedProductions {
		if file.NoLintComment(pos) {
			continue
		}

		p.Reportf(pos, "value produced while a defer is pending in iterator %s", u.Name())
	}
}
