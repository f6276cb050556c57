// Package localmods inventories a Factorio mods/ directory: zipped and
// unpacked mod installs, each identified by an info.json manifest, plus
// the directory's mod-list.json enabled/disabled state and the installed
// game's version.
package localmods

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/outpost-tools/fac-resolve/internal/applog"
	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/installable"
	"github.com/outpost-tools/fac-resolve/internal/semver"
)

// dirNamePattern matches the "<name>_<version>" naming convention used for
// both unpacked mod directories and zip archives.
var dirNamePattern = regexp.MustCompile(`^(.+)_(\d+\.\d+\.\d+)$`)

// InstalledMod is one mod install found on disk.
type InstalledMod struct {
	Name    dep.ModName
	Version semver.Version
	// Path is the directory or zip file this mod was loaded from.
	Path string
}

type infoJSON struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	FactorioVersion string `json:"factorio_version"`
	Dependencies    []string `json:"dependencies"`
}

// Directory is a handle onto a mods/ directory on disk.
type Directory struct {
	Path string
}

// Open returns a Directory handle, failing if path does not exist or is
// not a directory.
func Open(path string) (*Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("opening mods directory %q: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", path)
	}
	return &Directory{Path: path}, nil
}

// Installed scans the directory for mod installs, skipping entries that
// don't match the "<name>_<version>" convention or that fail to parse
// (logged as warnings, not fatal).
func (d *Directory) Installed() ([]InstalledMod, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return nil, fmt.Errorf("reading mods directory %q: %w", d.Path, err)
	}

	var mods []InstalledMod
	for _, entry := range entries {
		if !dirNamePattern.MatchString(strings.TrimSuffix(entry.Name(), ".zip")) {
			continue
		}
		full := filepath.Join(d.Path, entry.Name())

		var info infoJSON
		switch {
		case entry.IsDir():
			info, err = readInfoFromDir(full)
		case strings.HasSuffix(entry.Name(), ".zip"):
			info, err = readInfoFromZip(full)
		default:
			continue
		}
		if err != nil {
			applog.Warnf("localmods: skipping %s: %v", full, err)
			continue
		}

		version, err := semver.Parse(info.Version)
		if err != nil {
			applog.Warnf("localmods: skipping %s: %v", full, err)
			continue
		}
		mods = append(mods, InstalledMod{Name: dep.ModName(info.Name), Version: version, Path: full})
	}
	return mods, nil
}

func readInfoFromDir(dirPath string) (infoJSON, error) {
	data, err := os.ReadFile(filepath.Join(dirPath, "info.json"))
	if err != nil {
		return infoJSON{}, fmt.Errorf("reading info.json: %w", err)
	}
	return decodeInfo(data)
}

func readInfoFromZip(zipPath string) (infoJSON, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return infoJSON{}, fmt.Errorf("opening as zip: %w", err)
	}
	defer zr.Close()

	f, err := findInfoJSON(&zr.Reader)
	if err != nil {
		return infoJSON{}, err
	}
	rc, err := f.Open()
	if err != nil {
		return infoJSON{}, fmt.Errorf("opening info.json entry: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return infoJSON{}, fmt.Errorf("reading info.json entry: %w", err)
	}
	return decodeInfo(data)
}

// findInfoJSON locates info.json inside the mod's top-level directory
// entry within the zip; Factorio mod archives always nest their contents
// one directory deep.
func findInfoJSON(zr *zip.Reader) (*zip.File, error) {
	for _, f := range zr.File {
		if path.Base(f.Name) == "info.json" && strings.Count(strings.Trim(f.Name, "/"), "/") <= 1 {
			return f, nil
		}
	}
	return nil, fmt.Errorf("info.json not found in archive")
}

func decodeInfo(data []byte) (infoJSON, error) {
	var info infoJSON
	if err := json.Unmarshal(data, &info); err != nil {
		return infoJSON{}, fmt.Errorf("decoding info.json: %w", err)
	}
	if info.Name == "" {
		return infoJSON{}, fmt.Errorf("info.json has empty name")
	}
	return info, nil
}

// Remove deletes an installed mod's directory or zip file from disk.
func (d *Directory) Remove(m InstalledMod) error {
	if err := os.RemoveAll(m.Path); err != nil {
		return fmt.Errorf("removing %s: %w", m.Path, err)
	}
	return nil
}

// Install writes r (a mod's zip archive, as downloaded from the portal)
// to the mods directory under its release's conventional filename.
func (d *Directory) Install(release installable.Release, r io.Reader) error {
	name := release.FileName
	if name == "" {
		name = fmt.Sprintf("%s_%s.zip", release.Name, release.Version)
	}
	dest := filepath.Join(d.Path, name)

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return nil
}

// ModListEntry is one row of mod-list.json: a mod name and whether it is
// currently enabled.
type ModListEntry struct {
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

type modListFile struct {
	Mods []ModListEntry `json:"mods"`
}

// ReadModList reads the enabled/disabled state recorded in
// mods/mod-list.json. A missing file is not an error; it is treated as an
// empty list.
func (d *Directory) ReadModList() ([]ModListEntry, error) {
	data, err := os.ReadFile(filepath.Join(d.Path, "mod-list.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading mod-list.json: %w", err)
	}
	var parsed modListFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding mod-list.json: %w", err)
	}
	return parsed.Mods, nil
}

// WriteModList overwrites mods/mod-list.json with the given entries.
func (d *Directory) WriteModList(entries []ModListEntry) error {
	data, err := json.MarshalIndent(modListFile{Mods: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mod-list.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.Path, "mod-list.json"), data, 0o644); err != nil {
		return fmt.Errorf("writing mod-list.json: %w", err)
	}
	return nil
}

// GameVersion reads the installed Factorio binary's version by locating
// base's own info.json, which the game ships alongside the mods
// directory's parent (data/base/info.json in a normal installation).
func GameVersion(factorioRoot string) (semver.Version, error) {
	data, err := os.ReadFile(filepath.Join(factorioRoot, "data", "base", "info.json"))
	if err != nil {
		return semver.Version{}, fmt.Errorf("reading base/info.json: %w", err)
	}
	info, err := decodeInfo(data)
	if err != nil {
		return semver.Version{}, err
	}
	return semver.Parse(info.Version)
}
