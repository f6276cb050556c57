// Package semver implements the version and constraint grammar used by the
// mod portal: a three-component dotted-decimal version, tolerant of
// leading zeros and missing trailing components, and five comparison
// operators.
package semver

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a totally ordered (major, minor, patch) triple.
type Version struct {
	Major, Minor, Patch uint64
}

// Compare returns -1, 0 or 1 depending on whether v orders before, equal
// to, or after w.
func (v Version) Compare(w Version) int {
	if v.Major != w.Major {
		return cmpUint(v.Major, w.Major)
	}
	if v.Minor != w.Minor {
		return cmpUint(v.Minor, w.Minor)
	}
	return cmpUint(v.Patch, w.Patch)
}

// Less reports whether v orders strictly before w.
func (v Version) Less(w Version) bool { return v.Compare(w) < 0 }

func cmpUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ErrParseVersion indicates a string is not a valid version, even after
// the canonicalizing fallback in fixup has been tried.
type ErrParseVersion struct {
	Input string
}

func (e *ErrParseVersion) Error() string {
	return fmt.Sprintf("invalid version %q", e.Input)
}

// Parse parses s as a Version. It first tries a strict parse (exactly
// one, two or three dot-separated unsigned integer components, missing
// trailing components default to 0). If that fails it canonicalizes s via
// fixup and retries once.
func Parse(s string) (Version, error) {
	if v, ok := parseStrict(s); ok {
		return v, nil
	}
	if v, ok := parseStrict(fixup(s)); ok {
		return v, nil
	}
	return Version{}, &ErrParseVersion{Input: s}
}

func parseStrict(s string) (Version, bool) {
	if s == "" {
		return Version{}, false
	}
	parts := strings.Split(s, ".")
	if len(parts) == 0 || len(parts) > 3 {
		return Version{}, false
	}
	var nums [3]uint64
	for i, p := range parts {
		if p == "" {
			return Version{}, false
		}
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// fixup canonicalizes a malformed-but-intended version string by
// stripping leading zeros from each dot-separated component, preserving a
// single "0" for an all-zero component. The first component is special
// cased: when it begins with "0", a single "0" is kept in front of its
// stripped remainder.
func fixup(s string) string {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if p == "" {
			// Leave a genuinely missing component alone so parseStrict
			// still rejects it; only leading zeros get canonicalized.
			continue
		}
		stripped := strings.TrimLeft(p, "0")
		if i == 0 {
			if strings.HasPrefix(p, "0") {
				parts[i] = "0" + stripped
				continue
			}
		}
		if stripped == "" {
			stripped = "0"
		}
		parts[i] = stripped
	}
	return strings.Join(parts, ".")
}
