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
	"sort"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
)

// candidate is one option for a name slot: either a concrete node, or the
// "none" sentinel (nil Installable) meaning the name is left uninstalled.
type candidate struct {
	id   NodeID
	inst installable.Installable // nil for the None option
}

// Enumerate partitions the surviving nodes by name, builds the Cartesian
// product of per-name option lists (prepending a None option for names
// that are neither "base" nor in reqs), and returns the best valid
// assignment according to the dominance relation in better, or a
// *NoSolutionError if no tuple is valid.
func Enumerate(g *Graph, reqs Requirements) (map[dep.ModName]installable.Installable, error) {
	byName := g.ByName()

	names := make([]dep.ModName, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	options := make([][]candidate, len(names))
	for i, name := range names {
		ids := byName[name]
		sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

		var opts []candidate
		_, required := reqs[name]
		if name != installable.BaseName && !required {
			opts = append(opts, candidate{inst: nil})
		}
		for _, id := range ids {
			opts = append(opts, candidate{id: id, inst: g.Nodes[id]})
		}
		options[i] = opts
	}

	var best map[dep.ModName]installable.Installable
	haveBest := false

	indices := make([]int, len(options))
	for {
		assignment := make(map[dep.ModName]installable.Installable, len(names))
		for i, name := range names {
			if c := options[i][indices[i]]; c.inst != nil {
				assignment[name] = c.inst
			}
		}

		if isValid(assignment) {
			if !haveBest || better(best, assignment) {
				best = assignment
				haveBest = true
			}
		}

		if !advance(indices, options) {
			break
		}
	}

	if !haveBest {
		return nil, noSolution()
	}
	return best, nil
}

// advance increments the mixed-radix counter indices in place, returning
// false once it has wrapped all the way around (enumeration is complete).
func advance(indices []int, options [][]candidate) bool {
	for i := len(indices) - 1; i >= 0; i-- {
		indices[i]++
		if indices[i] < len(options[i]) {
			return true
		}
		indices[i] = 0
	}
	return false
}

// isValid reports whether every dependency of every selected Installable
// holds: if its name is selected, the selected version must match the
// dependency's requirement (optional or not); if its name is not
// selected, the dependency must be optional.
func isValid(assignment map[dep.ModName]installable.Installable) bool {
	for _, inst := range assignment {
		for _, d := range inst.Dependencies() {
			if other, ok := assignment[d.Name]; ok {
				if !d.Req.Matches(other.Version()) {
					return false
				}
			} else if d.Required {
				return false
			}
		}
	}
	return true
}

// better reports whether b dominates a: if on every name shared by both,
// b's version is at least a's, and strictly greater on at least one name,
// b wins; if a dominates b in the same way, a wins. Otherwise (no shared
// name differs, or they differ in both directions) the assignment with
// more installed mods wins.
func better(a, b map[dep.ModName]installable.Installable) bool {
	less, greater := false, false
	for name, ai := range a {
		bi, ok := b[name]
		if !ok {
			continue
		}
		switch ai.Version().Compare(bi.Version()) {
		case -1:
			less = true
		case 1:
			greater = true
		}
	}
	if less && !greater {
		return true
	}
	if greater && !less {
		return false
	}
	return len(b) > len(a)
}
