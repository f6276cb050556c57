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

// Mod is a named mod together with all of its known releases, as reported
// by the portal.
type Mod struct {
	Name     dep.ModName
	Releases []installable.Release
}

// Portal is the capability the catalogue loader needs from the portal
// client. Get must return an error satisfying errors.Is(err, ErrNotFound)
// when name has no entry; any other error aborts resolution.
type Portal interface {
	Get(ctx context.Context, name dep.ModName) (Mod, error)
}

// Requirements maps a mod name to the version requirement the caller
// wants it to satisfy. The resolver never mutates the map it is given.
type Requirements map[dep.ModName]semver.Req
