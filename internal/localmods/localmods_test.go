package localmods_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/localmods"
)

func writeInfo(t *testing.T, dir, name, version string) {
	t.Helper()
	modDir := filepath.Join(dir, name+"_"+version)
	if err := os.MkdirAll(modDir, 0o755); err != nil {
		t.Fatal(err)
	}
	info := `{"name": "` + name + `", "version": "` + version + `", "factorio_version": "1.1"}`
	if err := os.WriteFile(filepath.Join(modDir, "info.json"), []byte(info), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeZippedInfo(t *testing.T, dir, name, version string) {
	t.Helper()
	zipPath := filepath.Join(dir, name+"_"+version+".zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(name + "_" + version + "/info.json")
	if err != nil {
		t.Fatal(err)
	}
	info := `{"name": "` + name + `", "version": "` + version + `", "factorio_version": "1.1"}`
	if _, err := w.Write([]byte(info)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestInstalledFindsDirAndZip(t *testing.T) {
	dir := t.TempDir()
	writeInfo(t, dir, "unpacked-mod", "1.0.0")
	writeZippedInfo(t, dir, "zipped-mod", "2.3.4")

	d, err := localmods.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mods, err := d.Installed()
	if err != nil {
		t.Fatalf("Installed: %v", err)
	}

	names := make([]string, 0, len(mods))
	for _, m := range mods {
		names = append(names, string(m.Name))
	}
	sort.Strings(names)
	want := []string{"unpacked-mod", "zipped-mod"}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("got names %v, want %v", names, want)
	}
}

func TestInstalledSkipsMalformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "junk_1.0.0"), 0o755); err != nil {
		t.Fatal(err)
	}
	// no info.json inside; should be skipped, not fatal.
	writeInfo(t, dir, "good-mod", "1.0.0")

	d, err := localmods.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	mods, err := d.Installed()
	if err != nil {
		t.Fatalf("Installed: %v", err)
	}
	if len(mods) != 1 || mods[0].Name != dep.ModName("good-mod") {
		t.Errorf("got %v, want only good-mod", mods)
	}
}

func TestModListRoundTrip(t *testing.T) {
	dir := t.TempDir()
	d, err := localmods.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	empty, err := d.ReadModList()
	if err != nil {
		t.Fatalf("ReadModList on missing file: %v", err)
	}
	if empty != nil {
		t.Errorf("got %v, want nil for missing mod-list.json", empty)
	}

	want := []localmods.ModListEntry{{Name: "base", Enabled: true}, {Name: "boblibrary", Enabled: false}}
	if err := d.WriteModList(want); err != nil {
		t.Fatalf("WriteModList: %v", err)
	}
	got, err := d.ReadModList()
	if err != nil {
		t.Fatalf("ReadModList: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
