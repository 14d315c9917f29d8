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

// Package callgraph builds and navigates a directed graph of analyzable
// units connected by call edges.
//
// The graph is an under-approximation of the true call graph: invocations
// whose target cannot be resolved statically are omitted, never guessed.
// [Graph.Incomplete] reports whether at least one call was dropped this way.
package callgraph

import (
	"go/token"
	"iter"

	"fillmore-labs.com/panicflow/internal/unit"
)

// Node is one unit in the call graph, with bidirectional edge lists.
type Node struct {
	unit    *unit.Unit
	callees []Edge // units this node invokes, in call-site order
	callers []Edge // units invoking this node
}

// Unit returns the analyzable unit this node wraps.
func (n *Node) Unit() *unit.Unit {
	return n.unit
}

// Callees returns the outgoing call edges in call-site order.
// The returned slice is owned by the node and must not be modified.
func (n *Node) Callees() []Edge {
	return n.callees
}

// Callers returns the incoming call edges.
// The returned slice is owned by the node and must not be modified.
func (n *Node) Callers() []Edge {
	return n.callers
}

// Edge records one call site. Peer is the callee on callee edges and the
// caller on caller edges; it references a node owned by the graph and never
// owns it.
type Edge struct {
	peer *Node
	site token.Pos
}

// Peer returns the node on the far end of the edge.
func (e Edge) Peer() *Node {
	return e.peer
}

// Site returns the source position of the call site.
func (e Edge) Site() token.Pos {
	return e.site
}

// Graph owns all nodes of one program snapshot's call graph. It is mutated
// only during construction and read-only afterwards.
type Graph struct {
	nodes      []*Node // insertion-ordered; the graph owns every node
	index      map[unit.Key]*Node
	edges      int
	incomplete bool
}

// New creates an empty call graph.
func New() *Graph {
	return &Graph{index: make(map[unit.Key]*Node)}
}

// GetOrCreateNode returns the node for u, creating it on first reference.
func (g *Graph) GetOrCreateNode(u *unit.Unit) *Node {
	key := u.Key()
	if n, ok := g.index[key]; ok {
		return n
	}

	n := &Node{unit: u}
	g.index[key] = n
	g.nodes = append(g.nodes, n)

	return n
}

// TryGetNode returns the node for u if it exists.
func (g *Graph) TryGetNode(u *unit.Unit) (*Node, bool) {
	n, ok := g.index[u.Key()]

	return n, ok
}

// AddEdge records a call from caller to callee at the given call site.
// The paired callee and caller edges are inserted together. Duplicate call
// sites between the same pair are retained distinctly, their location
// matters for diagnostics.
func (g *Graph) AddEdge(caller, callee *unit.Unit, site token.Pos) {
	from := g.GetOrCreateNode(caller)
	to := g.GetOrCreateNode(callee)

	from.callees = append(from.callees, Edge{peer: to, site: site})
	to.callers = append(to.callers, Edge{peer: from, site: site})
	g.edges++
}

// Nodes yields all nodes in insertion order.
func (g *Graph) Nodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, n := range g.nodes {
			if !yield(n) {
				return
			}
		}
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of recorded call sites.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Incomplete reports whether at least one invocation could not be resolved
// and was omitted from the graph.
func (g *Graph) Incomplete() bool {
	return g.incomplete
}

func (g *Graph) markIncomplete() {
	g.incomplete = true
}
