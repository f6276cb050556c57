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
	"context"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

// Resolve computes a mutually satisfiable assignment of one concrete
// release per mod name, given the caller's requirements, the current game
// version and a Portal as the release catalogue. It is a pure function of
// its arguments: it installs, downloads, deletes or persists nothing, and
// asks the caller nothing.
//
// Resolve is the default, single-threaded entry point: loading, pruning
// and enumeration all run serially in the calling goroutine, with no
// internal parallelism and no shared mutable state across tasks. Use
// ResolveConcurrent only when the caller specifically wants the root
// requirement names prefetched concurrently ahead of the same serial
// graph work.
func Resolve(ctx context.Context, portal Portal, gameVersion semver.Version, reqs Requirements) (map[dep.ModName]installable.Release, error) {
	g, err := LoadClosure(ctx, portal, gameVersion, reqs)
	if err != nil {
		return nil, err
	}
	return prunedAssignment(g, reqs)
}

// ResolveConcurrent is Resolve's opt-in counterpart, using
// LoadClosureConcurrent in place of LoadClosure. Pruning and enumeration
// are unaffected: they are always serial, regardless of how the graph was
// loaded.
func ResolveConcurrent(ctx context.Context, portal Portal, gameVersion semver.Version, reqs Requirements) (map[dep.ModName]installable.Release, error) {
	g, err := LoadClosureConcurrent(ctx, portal, gameVersion, reqs)
	if err != nil {
		return nil, err
	}
	return prunedAssignment(g, reqs)
}

func prunedAssignment(g *Graph, reqs Requirements) (map[dep.ModName]installable.Release, error) {
	if err := Prune(g, reqs); err != nil {
		return nil, err
	}

	assignment, err := Enumerate(g, reqs)
	if err != nil {
		return nil, err
	}

	result := make(map[dep.ModName]installable.Release, len(assignment))
	for name, inst := range assignment {
		if mod, ok := inst.(installable.Mod); ok {
			result[name] = mod.Release
		}
	}
	return result, nil
}
