// Package dep describes a mod's dependency on another mod by name, and the
// textual grammar the portal uses to encode one.
package dep

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/outpost-tools/fac-resolve/internal/semver"
)

// ModName is an opaque identity for a mod. Equality and ordering are
// textual.
type ModName string

// Dependency is a single entry in a mod's dependency list.
type Dependency struct {
	Name     ModName
	Req      semver.Req
	Required bool
}

func (d Dependency) String() string {
	prefix := ""
	if !d.Required {
		prefix = "? "
	}
	if d.Req.IsAny() {
		return fmt.Sprintf("%s%s", prefix, d.Name)
	}
	return fmt.Sprintf("%s%s %s", prefix, d.Name, d.Req)
}

// grammar is whitespace-flexible:
//
//	^\s*(\??)\s*(name)\s*((<|<=|=|>=|>)\s*(version))?\s*$
//
// name is any non-empty run of characters that does not itself contain
// '<', '>' or '=', so it may contain embedded spaces and punctuation.
var grammar = regexp.MustCompile(`^\s*(\??)\s*([^<>=]+?)\s*(?:(<=|<|>=|>|=)\s*([0-9.]+))?\s*$`)

// ErrParseDependency indicates a dependency specifier did not match the
// portal's grammar.
type ErrParseDependency struct {
	Input string
}

func (e *ErrParseDependency) Error() string {
	return fmt.Sprintf("invalid dependency specifier %q", e.Input)
}

// Parse parses a dependency specifier string, e.g. "? some mod >= 1.2.3".
func Parse(s string) (Dependency, error) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return Dependency{}, &ErrParseDependency{Input: s}
	}
	required := m[1] == ""
	name := strings.TrimSpace(m[2])
	if name == "" {
		return Dependency{}, &ErrParseDependency{Input: s}
	}

	req := semver.Any
	if m[3] != "" {
		var err error
		req, err = semver.ParseReq(m[3] + m[4])
		if err != nil {
			return Dependency{}, &ErrParseDependency{Input: s}
		}
	}

	return Dependency{Name: ModName(name), Req: req, Required: required}, nil
}
