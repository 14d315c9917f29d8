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

package callgraph

import "fillmore-labs.com/panicflow/internal/unit"

// DefaultMaxDepth bounds transitive traversals. The bound protects against
// pathological call depth in generated or highly recursive code,
// independent of caller-supplied cancellation.
const DefaultMaxDepth = 10

// TransitiveCallees returns all units reachable from u by following callee
// edges for at most maxDepth hops. The result is a de-duplicated set in
// discovery order; u itself appears only when it is reachable through a
// cycle. A depth of zero yields nothing.
func TransitiveCallees(g *Graph, u *unit.Unit, maxDepth int) []*unit.Unit {
	return traverse(g, u, maxDepth, (*Node).Callees)
}

// TransitiveCallers is the symmetric query following caller edges.
func TransitiveCallers(g *Graph, u *unit.Unit, maxDepth int) []*unit.Unit {
	return traverse(g, u, maxDepth, (*Node).Callers)
}

// traverse is a breadth-first walk with a visited set, so every node is
// discovered at its minimal hop distance before it is expanded. Minimal-
// depth discovery keeps the result monotonic in maxDepth. Cycles yield
// their already-visited members without re-expansion; depth is counted in
// edge hops and stops strictly at maxDepth.
func traverse(g *Graph, u *unit.Unit, maxDepth int, edges func(*Node) []Edge) []*unit.Unit {
	start, ok := g.TryGetNode(u)
	if !ok {
		return nil
	}

	type item struct {
		node  *Node
		depth int
	}

	visited := make(map[*Node]struct{})

	var result []*unit.Unit

	queue := []item{{node: start, depth: 0}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]

		if it.depth >= maxDepth {
			continue
		}

		for _, e := range edges(it.node) {
			peer := e.Peer()
			if _, seen := visited[peer]; seen {
				continue
			}
			visited[peer] = struct{}{}

			result = append(result, peer.Unit())
			queue = append(queue, item{node: peer, depth: it.depth + 1})
		}
	}

	return result
}
