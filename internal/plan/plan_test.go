package plan_test

import (
	"testing"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/localmods"
	"github.com/outpost-tools/fac-resolve/internal/plan"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

func v(s string) semver.Version {
	ver, err := semver.Parse(s)
	if err != nil {
		panic(err)
	}
	return ver
}

func TestComputeKeepsUnchanged(t *testing.T) {
	installed := []localmods.InstalledMod{{Name: "boblibrary", Version: v("1.0.0"), Path: "boblibrary_1.0.0"}}
	solution := map[dep.ModName]installable.Release{
		"boblibrary": {Name: "boblibrary", Version: v("1.0.0")},
	}
	p := plan.Compute(solution, installed)
	if len(p.Keep) != 1 || !p.Empty() {
		t.Errorf("got %+v, want a no-op keep", p)
	}
}

func TestComputeUpgrade(t *testing.T) {
	installed := []localmods.InstalledMod{{Name: "boblibrary", Version: v("1.0.0"), Path: "boblibrary_1.0.0"}}
	solution := map[dep.ModName]installable.Release{
		"boblibrary": {Name: "boblibrary", Version: v("2.0.0")},
	}
	p := plan.Compute(solution, installed)
	if len(p.Upgrade) != 1 || len(p.Remove) != 1 || len(p.Install) != 0 {
		t.Fatalf("got %+v, want a single upgrade", p)
	}
	if p.Upgrade[0].From.Version != v("1.0.0") || p.Upgrade[0].To.Version != v("2.0.0") {
		t.Errorf("got upgrade %+v, want 1.0.0 -> 2.0.0", p.Upgrade[0])
	}
}

func TestComputeInstallAndRemove(t *testing.T) {
	installed := []localmods.InstalledMod{{Name: "old-mod", Version: v("1.0.0"), Path: "old-mod_1.0.0"}}
	solution := map[dep.ModName]installable.Release{
		"new-mod": {Name: "new-mod", Version: v("1.0.0")},
	}
	p := plan.Compute(solution, installed)
	if len(p.Install) != 1 || p.Install[0].Name != "new-mod" {
		t.Errorf("got install %v, want [new-mod]", p.Install)
	}
	if len(p.Remove) != 1 || p.Remove[0].Name != "old-mod" {
		t.Errorf("got remove %v, want [old-mod]", p.Remove)
	}
	if len(p.Upgrade) != 0 {
		t.Errorf("got upgrade %v, want none", p.Upgrade)
	}
}
