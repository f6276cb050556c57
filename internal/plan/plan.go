// Package plan diffs a resolved set of releases against what is currently
// installed on disk, producing the keep/upgrade/install/remove sets a CLI
// presents to the user before touching the filesystem.
package plan

import (
	"sort"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/localmods"
)

// Upgrade pairs a currently installed mod with the release that will
// replace it.
type Upgrade struct {
	From localmods.InstalledMod
	To   installable.Release
}

// Plan is the set of filesystem changes needed to reach a resolved
// assignment from the current install state.
type Plan struct {
	Keep    []localmods.InstalledMod
	Remove  []localmods.InstalledMod
	Install []installable.Release
	Upgrade []Upgrade
}

// Empty reports whether applying the plan would change nothing on disk.
func (p Plan) Empty() bool {
	return len(p.Remove) == 0 && len(p.Install) == 0 && len(p.Upgrade) == 0
}

// Compute diffs a resolved solution against the mods currently installed,
// grouped by name since more than one version of a mod can coexist on
// disk.
func Compute(solution map[dep.ModName]installable.Release, installed []localmods.InstalledMod) Plan {
	byName := make(map[dep.ModName][]localmods.InstalledMod)
	for _, m := range installed {
		byName[m.Name] = append(byName[m.Name], m)
	}

	var p Plan
	for name, mods := range byName {
		release, wanted := solution[name]
		for _, m := range mods {
			switch {
			case wanted && m.Version == release.Version:
				p.Keep = append(p.Keep, m)
			case wanted:
				p.Remove = append(p.Remove, m)
				p.Upgrade = append(p.Upgrade, Upgrade{From: m, To: release})
			default:
				p.Remove = append(p.Remove, m)
			}
		}
	}

	// A name already installed is either kept or upgraded above; only names
	// with no installed version at all are fresh installs.
	for name, release := range solution {
		if _, installed := byName[name]; !installed {
			p.Install = append(p.Install, release)
		}
	}

	sort.Slice(p.Remove, func(i, j int) bool { return lessInstalled(p.Remove[i], p.Remove[j]) })
	sort.Slice(p.Install, func(i, j int) bool { return lessRelease(p.Install[i], p.Install[j]) })
	sort.Slice(p.Upgrade, func(i, j int) bool {
		if !sameInstalled(p.Upgrade[i].From, p.Upgrade[j].From) {
			return lessInstalled(p.Upgrade[i].From, p.Upgrade[j].From)
		}
		return lessRelease(p.Upgrade[i].To, p.Upgrade[j].To)
	})
	sort.Slice(p.Keep, func(i, j int) bool { return lessInstalled(p.Keep[i], p.Keep[j]) })

	return p
}

func lessInstalled(a, b localmods.InstalledMod) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Version.Less(b.Version)
}

func sameInstalled(a, b localmods.InstalledMod) bool {
	return a.Name == b.Name && a.Version == b.Version
}

func lessRelease(a, b installable.Release) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Version.Less(b.Version)
}
