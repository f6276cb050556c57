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
	"errors"
	"fmt"

	"github.com/outpost-tools/fac-resolve/internal/dep"
)

// ErrNotFound is the sentinel a Portal implementation's Get must wrap
// (via fmt.Errorf("...: %w", ErrNotFound) or by returning it directly)
// when a mod name has no entry on the portal. The loader treats it as
// "the mod has zero releases", not as a fatal error.
var ErrNotFound = errors.New("mod not found on portal")

// NoSolutionError is returned when pruning empties a required name, or
// when enumeration finds no valid assignment. Name is nil in the latter
// case.
type NoSolutionError struct {
	Name *dep.ModName
}

func (e *NoSolutionError) Error() string {
	if e.Name == nil {
		return "no solution: no valid combination of releases satisfies all requirements"
	}
	return fmt.Sprintf("no solution: no installable release of %q satisfies its requirements", *e.Name)
}

// PortalError wraps a non-404 error returned by the Portal during
// catalogue loading.
type PortalError struct {
	Err error
}

func (e *PortalError) Error() string { return fmt.Sprintf("portal: %v", e.Err) }
func (e *PortalError) Unwrap() error { return e.Err }

func noSolutionFor(name dep.ModName) error {
	n := name
	return &NoSolutionError{Name: &n}
}

func noSolution() error {
	return &NoSolutionError{}
}
