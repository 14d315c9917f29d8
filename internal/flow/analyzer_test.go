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

package flow_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	. "fillmore-labs.com/panicflow/internal/flow"
	"fillmore-labs.com/panicflow/internal/snapshot"
	"fillmore-labs.com/panicflow/internal/testsource"
	"fillmore-labs.com/panicflow/internal/unit"
)

const src = `
func a() { b() }

func b() {}
`

func countingHook(calls *atomic.Int32) Hook[string] {
	return func(_ context.Context, _ *snapshot.Snapshot, u *unit.Unit) (Fact[string], error) {
		calls.Add(1)

		return Fact[string]{Unit: u, Outgoing: NewSet(u.Name())}, nil
	}
}

func TestAnalyzeMemoizes(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, src)

	var calls atomic.Int32
	a := New(snap, countingHook(&calls))

	u := testsource.Unit(t, snap, "a")

	first, err := a.Analyze(t.Context(), u)
	require.NoError(t, err)

	second, err := a.Analyze(t.Context(), u)
	require.NoError(t, err)

	require.Equal(t, int32(1), calls.Load(), "hook invoked more than once per unit")
	require.Equal(t, first, second)
}

func TestAnalyzeConcurrent(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, src)

	var calls atomic.Int32
	a := New(snap, countingHook(&calls))

	u := testsource.Unit(t, snap, "a")

	var wg sync.WaitGroup
	errs := make([]error, 8)

	for i := range errs {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = a.Analyze(t.Context(), u)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, int32(1), calls.Load(), "hook raced past the insert-once cache")
}

func TestAnalyzeProgram(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, src)

	var calls atomic.Int32
	a := New(snap, countingHook(&calls))

	facts, err := a.AnalyzeProgram(t.Context())
	require.NoError(t, err)

	require.Len(t, facts, 2)
	require.Equal(t, int32(2), calls.Load())

	for _, fact := range facts {
		require.False(t, fact.Incomplete, "complete graph produced incomplete fact")
	}

	// Later point queries reuse the program run's cache.
	_, err = a.Analyze(t.Context(), testsource.Unit(t, snap, "b"))
	require.NoError(t, err)
	require.Equal(t, int32(2), calls.Load())
}

func TestAnalyzeProgramIncomplete(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, `
func run(f func()) { f() }
`)

	var calls atomic.Int32
	a := New(snap, countingHook(&calls))

	facts, err := a.AnalyzeProgram(t.Context())
	require.NoError(t, err)
	require.NotEmpty(t, facts)

	for _, fact := range facts {
		require.True(t, fact.Incomplete, "under-approximated graph produced complete fact")
	}
}

func TestAnalyzeError(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, src)

	errHook := errors.New("hook failed")
	a := New(snap, func(context.Context, *snapshot.Snapshot, *unit.Unit) (Fact[string], error) {
		return Fact[string]{}, errHook
	})

	_, err := a.Analyze(t.Context(), testsource.Unit(t, snap, "a"))
	require.ErrorIs(t, err, errHook)

	// The error is memoized like any other result.
	_, err = a.Analyze(t.Context(), testsource.Unit(t, snap, "a"))
	require.ErrorIs(t, err, errHook)
}

func TestClear(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, src)

	var calls atomic.Int32
	a := New(snap, countingHook(&calls))

	u := testsource.Unit(t, snap, "a")

	_, err := a.Analyze(t.Context(), u)
	require.NoError(t, err)

	a.Clear()

	_, err = a.Analyze(t.Context(), u)
	require.NoError(t, err)

	require.Equal(t, int32(2), calls.Load(), "Clear did not discard the cache")
}

func TestCombine(t *testing.T) {
	t.Parallel()

	snap := testsource.Snapshot(t, src)

	var calls atomic.Int32

	union := New(snap, countingHook(&calls))
	require.Equal(t, NewSet("x", "y"), union.Combine(NewSet("x"), NewSet("x", "y")))

	intersect := New(snap, countingHook(&calls), WithMerger(Intersection[string]))
	require.Equal(t, NewSet("x"), intersect.Combine(NewSet("x"), NewSet("x", "y")))
}
