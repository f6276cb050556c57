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

// Package resolvetest provides a static, in-memory Portal stub for
// exercising the resolver's catalogue loader without a real network
// portal.
package resolvetest

import (
	"context"
	"fmt"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
)

// Portal is a static catalogue keyed by mod name. A name absent from Mods
// is reported as not found, exactly as a real portal would respond to a
// 404.
type Portal struct {
	Mods map[dep.ModName][]installable.Release
}

// New returns an empty Portal.
func New() *Portal {
	return &Portal{Mods: make(map[dep.ModName][]installable.Release)}
}

// Add registers a release under its own name.
func (p *Portal) Add(r installable.Release) *Portal {
	p.Mods[r.Name] = append(p.Mods[r.Name], r)
	return p
}

// Get implements resolve.Portal.
func (p *Portal) Get(ctx context.Context, name dep.ModName) (resolve.Mod, error) {
	releases, ok := p.Mods[name]
	if !ok {
		return resolve.Mod{}, fmt.Errorf("mod %q: %w", name, resolve.ErrNotFound)
	}
	return resolve.Mod{Name: name, Releases: releases}, nil
}
