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
	"errors"
	"fmt"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

// LoadClosure walks the transitive closure of reqs over the portal and
// returns the resulting Graph, seeded with the synthetic Base node pinned
// to gameVersion. A name that the portal reports as not found contributes
// zero nodes rather than aborting the walk; any other Portal error is
// fatal and is returned wrapped in a *PortalError.
//
// The walk itself is single-threaded and synchronous: it holds no lock
// and spawns no goroutine, and the only suspension points are the
// portal.Get calls inside loadMod. Callers that want the root requirement
// names fetched concurrently ahead of this serial walk should use
// LoadClosureConcurrent instead; this function never does so on its own.
func LoadClosure(ctx context.Context, portal Portal, gameVersion semver.Version, reqs Requirements) (*Graph, error) {
	g := NewGraph()
	byName := make(map[dep.ModName][]NodeID)

	base := installable.NewBase(gameVersion)
	baseID := g.AddNode(base)
	byName[base.Name()] = []NodeID{baseID}

	visited := map[dep.ModName]bool{base.Name(): true}

	names := make([]dep.ModName, 0, len(reqs))
	for name := range reqs {
		names = append(names, name)
	}

	for _, name := range names {
		if err := loadMod(ctx, portal, gameVersion, g, byName, visited, name); err != nil {
			return nil, err
		}
	}

	addEdges(g, byName)
	return g, nil
}

// LoadClosureConcurrent is LoadClosure's opt-in counterpart: if portal is
// a *CachingPortal, it fans the root requirement names out concurrently
// via Prefetch before handing off to the same serial LoadClosure walk, so
// the walk's sequential portal.Get calls mostly hit a warm cache. Pass any
// other Portal and this behaves exactly like LoadClosure. Prefetch never
// mutates the Graph; it only warms the cache LoadClosure's walk reads
// from, so the walk's own single-threaded semantics are unchanged.
func LoadClosureConcurrent(ctx context.Context, portal Portal, gameVersion semver.Version, reqs Requirements) (*Graph, error) {
	if cp, ok := portal.(*CachingPortal); ok {
		names := make([]dep.ModName, 0, len(reqs))
		for name := range reqs {
			names = append(names, name)
		}
		cp.Prefetch(ctx, names, 8)
	}
	return LoadClosure(ctx, portal, gameVersion, reqs)
}

func loadMod(
	ctx context.Context,
	portal Portal,
	gameVersion semver.Version,
	g *Graph,
	byName map[dep.ModName][]NodeID,
	visited map[dep.ModName]bool,
	name dep.ModName,
) error {
	if visited[name] {
		return nil
	}
	visited[name] = true
	if _, ok := byName[name]; !ok {
		byName[name] = nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	mod, err := portal.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return &PortalError{Err: fmt.Errorf("get %q: %w", name, err)}
	}

	for _, release := range mod.Releases {
		if !release.GameVersionReq.Matches(gameVersion) {
			continue
		}
		id := g.AddNode(installable.NewMod(release))
		byName[name] = append(byName[name], id)

		for _, d := range release.Dependencies {
			if err := loadMod(ctx, portal, gameVersion, g, byName, visited, d.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// addEdges adds, for every ordered pair of distinct nodes (u, v) and
// every dependency of u naming v's mod with a requirement v's version
// satisfies, one edge u -> v weighted by whether that dependency is
// required.
func addEdges(g *Graph, byName map[dep.ModName][]NodeID) {
	for u := range g.Nodes {
		uID := NodeID(u)
		inst := g.Nodes[u]
		for _, d := range inst.Dependencies() {
			for _, vID := range byName[d.Name] {
				if vID == uID {
					continue
				}
				v := g.Nodes[vID]
				if v.Name() == d.Name && d.Req.Matches(v.Version()) {
					g.AddEdge(uID, vID, d.Required)
				}
			}
		}
	}
}
