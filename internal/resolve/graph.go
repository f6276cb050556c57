// Copyright 2023 Google LLC
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

/*
Package resolve performs dependency resolution for the mod portal: given a
set of user requirements, the current game version, and a Portal as a
release catalogue, it computes a mutually satisfiable assignment of one
concrete release per mod name.
*/
package resolve

import (
	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
)

// NodeID identifies a node in a Graph. It is scoped to a specific Graph
// and is an index into that Graph's Nodes slice.
type NodeID int

// Edge represents a dependency edge: From has a dependency (satisfied by
// To's name and version) on To, with Required recording whether that
// dependency was required or optional.
type Edge struct {
	From, To NodeID
	Required bool
}

// Graph is the candidate graph described in the design: node-weighted by
// Installable, edge-weighted by whether the dependency the edge encodes
// is required. Nodes are never physically removed once added — Prune
// marks them dead instead, so NodeIDs recorded elsewhere (edges, the
// name index) remain valid for the lifetime of the Graph.
type Graph struct {
	Nodes []installable.Installable
	Edges []Edge

	alive []bool
	byOut map[NodeID][]Edge
	byIn  map[NodeID][]Edge
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		byOut: make(map[NodeID][]Edge),
		byIn:  make(map[NodeID][]Edge),
	}
}

// AddNode inserts a node, returning its NodeID.
func (g *Graph) AddNode(inst installable.Installable) NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, inst)
	g.alive = append(g.alive, true)
	return id
}

// AddEdge inserts an edge between two existing nodes. At most one edge is
// kept per ordered (from, to) pair; a later call for the same pair
// overwrites the Required flag.
func (g *Graph) AddEdge(from, to NodeID, required bool) {
	for i, e := range g.Edges {
		if e.From == from && e.To == to {
			g.Edges[i].Required = required
			for _, adj := range [][]Edge{g.byOut[from], g.byIn[to]} {
				for j := range adj {
					if adj[j].From == from && adj[j].To == to {
						adj[j].Required = required
					}
				}
			}
			return
		}
	}
	e := Edge{From: from, To: to, Required: required}
	g.Edges = append(g.Edges, e)
	g.byOut[from] = append(g.byOut[from], e)
	g.byIn[to] = append(g.byIn[to], e)
}

// Alive reports whether a node survives pruning.
func (g *Graph) Alive(id NodeID) bool { return g.alive[id] }

// kill marks a node as pruned.
func (g *Graph) kill(id NodeID) { g.alive[id] = false }

// AliveNodes returns the NodeIDs of all surviving nodes.
func (g *Graph) AliveNodes() []NodeID {
	var ids []NodeID
	for i, alive := range g.alive {
		if alive {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// ByName groups the surviving NodeIDs by the name of the Installable they
// hold.
func (g *Graph) ByName() map[dep.ModName][]NodeID {
	m := make(map[dep.ModName][]NodeID)
	for _, id := range g.AliveNodes() {
		name := g.Nodes[id].Name()
		m[name] = append(m[name], id)
	}
	return m
}

// OutEdges returns the edges leaving a node that still point at a
// surviving node.
func (g *Graph) OutEdges(id NodeID) []Edge {
	var out []Edge
	for _, e := range g.byOut[id] {
		if g.Alive(e.To) {
			out = append(out, e)
		}
	}
	return out
}

// InEdges returns the edges arriving at a node that still originate from
// a surviving node.
func (g *Graph) InEdges(id NodeID) []Edge {
	var in []Edge
	for _, e := range g.byIn[id] {
		if g.Alive(e.From) {
			in = append(in, e)
		}
	}
	return in
}

// HasRequiredIncoming reports whether a node has at least one surviving
// incoming edge with Required set.
func (g *Graph) HasRequiredIncoming(id NodeID) bool {
	for _, e := range g.InEdges(id) {
		if e.Required {
			return true
		}
	}
	return false
}

// OutNeighborSet returns the set of surviving node IDs reachable by a
// single outgoing edge, used by R4 to compare two nodes' neighbor sets.
func (g *Graph) OutNeighborSet(id NodeID) map[NodeID]bool {
	set := make(map[NodeID]bool)
	for _, e := range g.OutEdges(id) {
		set[e.To] = true
	}
	return set
}

func sameNeighborSet(a, b map[NodeID]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}
