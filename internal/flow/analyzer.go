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

// Package flow is a generic flow-analysis framework: given a call graph and
// a pluggable per-unit analysis hook, it computes and memoizes one flow
// fact per unit.
//
// The cache is insert-once and scoped to one analyzer instance. An analyzer
// held across changing source returns stale facts; create one analyzer per
// snapshot and discard it with the snapshot.
package flow

import (
	"context"
	"fmt"
	"runtime"
	"runtime/trace"
	"sync"

	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/panicflow/internal/callgraph"
	"fillmore-labs.com/panicflow/internal/snapshot"
	"fillmore-labs.com/panicflow/internal/unit"
)

// Fact is the flow information computed for one unit.
type Fact[T comparable] struct {
	// Unit the fact belongs to.
	Unit *unit.Unit
	// Incoming values flowing in from callees and assignments.
	Incoming Set[T]
	// Outgoing values flowing out to callers.
	Outgoing Set[T]
	// Escapes reports whether the unit has unhandled outgoing flow.
	Escapes bool
	// Incomplete marks facts derived from an under-approximated call
	// graph: values may be missing, never fabricated.
	Incomplete bool
}

// Hook is the per-unit analysis supplied by a concrete rule.
type Hook[T comparable] func(ctx context.Context, snap *snapshot.Snapshot, u *unit.Unit) (Fact[T], error)

// Analyzer computes and caches flow facts for the units of one snapshot.
type Analyzer[T comparable] struct {
	snap  *snapshot.Snapshot
	hook  Hook[T]
	merge Merger[T]

	mu    sync.Mutex
	cache map[unit.Key]*cacheEntry[T]
}

type cacheEntry[T comparable] struct {
	once sync.Once
	fact Fact[T]
	err  error
}

// Option configures an [Analyzer].
type Option[T comparable] func(*Analyzer[T])

// WithMerger replaces the default [Union] merge policy.
func WithMerger[T comparable](m Merger[T]) Option[T] {
	return func(a *Analyzer[T]) { a.merge = m }
}

// New creates a flow analyzer for one snapshot with the given per-unit
// hook.
func New[T comparable](snap *snapshot.Snapshot, hook Hook[T], opts ...Option[T]) *Analyzer[T] {
	a := &Analyzer[T]{
		snap:  snap,
		hook:  hook,
		merge: Union[T],
		cache: make(map[unit.Key]*cacheEntry[T]),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze returns the flow fact for u, invoking the per-unit hook at most
// once per unit. Units compare by symbol identity, two textually identical
// methods in different types are distinct.
func (a *Analyzer[T]) Analyze(ctx context.Context, u *unit.Unit) (Fact[T], error) {
	a.mu.Lock()
	e, ok := a.cache[u.Key()]
	if !ok {
		e = &cacheEntry[T]{}
		a.cache[u.Key()] = e
	}
	a.mu.Unlock()

	e.once.Do(func() {
		e.fact, e.err = a.hook(ctx, a.snap, u)
	})

	return e.fact, e.err
}

// AnalyzeProgram builds a full-program call graph and computes the fact for
// every node, with bounded parallelism. Facts derived from an incomplete
// graph are marked [Fact.Incomplete]. On cancellation no partial result is
// returned.
func (a *Analyzer[T]) AnalyzeProgram(ctx context.Context) ([]Fact[T], error) {
	defer trace.StartRegion(ctx, "AnalyzeProgram").End()

	g, err := callgraph.NewBuilder(a.snap).BuildForProgram(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]*callgraph.Node, 0, g.NodeCount())
	for n := range g.Nodes() {
		nodes = append(nodes, n)
	}

	facts := make([]Fact[T], len(nodes))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for i, n := range nodes {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("analyzing program: %w", err)
			}

			fact, err := a.Analyze(ctx, n.Unit())
			if err != nil {
				return err
			}

			fact.Incomplete = fact.Incomplete || g.Incomplete()
			facts[i] = fact

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return facts, nil
}

// Combine merges fact sets arriving via multiple call paths using the
// configured policy.
func (a *Analyzer[T]) Combine(sets ...Set[T]) Set[T] {
	return a.merge(sets...)
}

// Clear discards all cached facts. Use this to recompute after the caller
// knows the underlying source changed; the analyzer itself never
// invalidates.
func (a *Analyzer[T]) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	clear(a.cache)
}
