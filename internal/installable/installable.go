// Package installable defines the closed set of things that can occupy a
// node in the resolver's candidate graph: the synthetic Base pseudo-mod
// and a concrete mod Release.
package installable

import (
	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

// Release is a single downloadable version of a mod, as reported by the
// portal. Fields beyond Name/Version/GameVersionReq/Dependencies are
// opaque to the resolver; they exist for the installer.
type Release struct {
	Name            dep.ModName
	Version         semver.Version
	GameVersionReq  semver.Req
	Dependencies    []dep.Dependency
	DownloadURL     string
	FileName        string
	FileSize        uint64
	Title           string
	Description     string
}

// Installable is a node in the candidate graph: either the synthetic Base
// pseudo-mod or a concrete mod Release. It is a closed sum type: the only
// implementations are Base and Mod, both declared here, sealed by the
// unexported sealed method.
type Installable interface {
	Name() dep.ModName
	Version() semver.Version
	Dependencies() []dep.Dependency
	sealed()
}

// BaseName is the reserved name of the synthetic pseudo-mod representing
// the host game.
const BaseName dep.ModName = "base"

// Base is the synthetic pseudo-mod pinned to the current game version. It
// has no dependencies.
type Base struct {
	version semver.Version
}

// NewBase constructs the Base installable pinned to the given game
// version.
func NewBase(gameVersion semver.Version) Base { return Base{version: gameVersion} }

func (b Base) Name() dep.ModName            { return BaseName }
func (b Base) Version() semver.Version      { return b.version }
func (b Base) Dependencies() []dep.Dependency { return nil }
func (b Base) sealed()                      {}

// Mod wraps a concrete Release retrieved from the portal.
type Mod struct {
	Release Release
}

// NewMod constructs a Mod installable from a Release.
func NewMod(r Release) Mod { return Mod{Release: r} }

func (m Mod) Name() dep.ModName              { return m.Release.Name }
func (m Mod) Version() semver.Version        { return m.Release.Version }
func (m Mod) Dependencies() []dep.Dependency { return m.Release.Dependencies }
func (m Mod) sealed()                        {}
