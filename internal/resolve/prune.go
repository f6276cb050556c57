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

package resolve

import (
	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
)

// Prune removes, to a fixed point, every node that cannot appear in any
// valid solution (rules R1-R4 of the design). Base is exempt from R3 (the
// orphan rule): it is the one non-root name that is always implicitly
// anchored, since nothing in reqs ever names it but the whole graph is
// rooted at it. After the fixed point, if any name in reqs has no
// surviving node, Prune returns a *NoSolutionError naming it.
func Prune(g *Graph, reqs Requirements) error {
	for {
		removed := pruneOnePass(g, reqs)
		if removed == 0 {
			break
		}
	}

	for name := range reqs {
		ids := g.ByName()[name]
		if len(ids) == 0 {
			return noSolutionFor(name)
		}
	}
	return nil
}

func pruneOnePass(g *Graph, reqs Requirements) int {
	toKill := make(map[NodeID]bool)
	byName := g.ByName()

	for _, id := range g.AliveNodes() {
		inst := g.Nodes[id]

		// R1: unsatisfied required dependency.
		if hasUnsatisfiedRequiredDep(g, byName, inst) {
			toKill[id] = true
			continue
		}

		// R2: violates a root requirement.
		if req, ok := reqs[inst.Name()]; ok {
			if !req.Matches(inst.Version()) {
				toKill[id] = true
				continue
			}
			continue // names in reqs are never subject to R3.
		}

		// R3: orphaned non-root (base is exempt).
		if inst.Name() != installable.BaseName && !g.HasRequiredIncoming(id) {
			toKill[id] = true
		}
	}

	// R4: dominated duplicate. Compare every pair of surviving nodes that
	// share a name and an identical outgoing-neighbor set; keep the newer.
	for _, ids := range byName {
		for i := 0; i < len(ids); i++ {
			if toKill[ids[i]] {
				continue
			}
			ni := g.OutNeighborSet(ids[i])
			for j := i + 1; j < len(ids); j++ {
				if toKill[ids[j]] {
					continue
				}
				nj := g.OutNeighborSet(ids[j])
				if !sameNeighborSet(ni, nj) {
					continue
				}
				vi, vj := g.Nodes[ids[i]].Version(), g.Nodes[ids[j]].Version()
				if vi.Less(vj) {
					toKill[ids[i]] = true
				} else {
					toKill[ids[j]] = true
				}
			}
		}
	}

	for id := range toKill {
		g.kill(id)
	}
	return len(toKill)
}

func hasUnsatisfiedRequiredDep(g *Graph, byName map[dep.ModName][]NodeID, inst installable.Installable) bool {
	for _, d := range inst.Dependencies() {
		if !d.Required {
			continue
		}
		satisfied := false
		for _, id := range byName[d.Name] {
			if d.Req.Matches(g.Nodes[id].Version()) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return true
		}
	}
	return false
}
