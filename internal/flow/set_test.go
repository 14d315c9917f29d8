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
	"testing"

	"github.com/google/go-cmp/cmp"

	. "fillmore-labs.com/panicflow/internal/flow"
)

func TestUnion(t *testing.T) {
	t.Parallel()

	a := NewSet("x", "y")
	b := NewSet("y", "z")

	want := NewSet("x", "y", "z")

	if diff := cmp.Diff(want, Union(a, b)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}

	// Commutative and idempotent.
	if diff := cmp.Diff(Union(a, b), Union(b, a)); diff != "" {
		t.Errorf("Union not commutative (-ab +ba):\n%s", diff)
	}

	if diff := cmp.Diff(a, Union(a, a)); diff != "" {
		t.Errorf("Union not idempotent (-want +got):\n%s", diff)
	}

	if got := Union[string](); got.Len() != 0 {
		t.Errorf("empty union has %d values", got.Len())
	}
}

func TestIntersection(t *testing.T) {
	t.Parallel()

	a := NewSet("x", "y")
	b := NewSet("y", "z")

	if diff := cmp.Diff(NewSet("y"), Intersection(a, b)); diff != "" {
		t.Errorf("Intersection mismatch (-want +got):\n%s", diff)
	}

	if got := Intersection(a, NewSet[string]()); got.Len() != 0 {
		t.Errorf("intersection with empty set has %d values", got.Len())
	}

	if got := Intersection[string](); got.Len() != 0 {
		t.Errorf("empty intersection has %d values", got.Len())
	}
}

func TestSetClone(t *testing.T) {
	t.Parallel()

	a := NewSet("x")

	clone := a.Clone()
	clone.Add("y")

	if a.Contains("y") {
		t.Error("mutation of a clone is visible in the original")
	}

	if !clone.Contains("x") || clone.Len() != 2 {
		t.Error("clone lost or gained values")
	}

	var nilSet Set[string]
	if nilSet.Clone() != nil {
		t.Error("clone of nil set is not nil")
	}
}
