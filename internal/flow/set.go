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

package flow

import "maps"

// Set is an unordered set of flow values.
type Set[T comparable] map[T]struct{}

// NewSet creates a set containing the given values.
func NewSet[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}

	return s
}

// Add inserts v into the set.
func (s Set[T]) Add(v T) {
	s[v] = struct{}{}
}

// Contains reports whether v is in the set.
func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]

	return ok
}

// Len returns the number of values in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s Set[T]) Clone() Set[T] {
	if s == nil {
		return nil
	}

	return maps.Clone(s)
}

// Values returns the set's values in unspecified order.
func (s Set[T]) Values() []T {
	values := make([]T, 0, len(s))
	for v := range s {
		values = append(values, v)
	}

	return values
}

// Merger combines fact sets arriving via multiple call paths.
type Merger[T comparable] func(sets ...Set[T]) Set[T]

// Union is the default merge policy: set union with duplicate elimination.
// It is commutative and idempotent, the conservative choice for "may"
// properties like escaping exception types.
func Union[T comparable](sets ...Set[T]) Set[T] {
	merged := make(Set[T])
	for _, s := range sets {
		maps.Copy(merged, s)
	}

	return merged
}

// Intersection merges by set intersection, for "must always hold"
// properties.
func Intersection[T comparable](sets ...Set[T]) Set[T] {
	if len(sets) == 0 {
		return make(Set[T])
	}

	merged := sets[0].Clone()
	if merged == nil {
		return make(Set[T])
	}

	for _, s := range sets[1:] {
		for v := range merged {
			if !s.Contains(v) {
				delete(merged, v)
			}
		}
	}

	return merged
}
