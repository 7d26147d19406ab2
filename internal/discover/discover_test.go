package discover

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("-- header\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExpandRecursiveFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vhd"))
	writeFile(t, filepath.Join(dir, "sub", "b.vhdl"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	got, err := Expand([]string{dir}, true, map[string]bool{"vhd": true, "vhdl": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 files, got %v", got)
	}
}

func TestExpandNonRecursiveLeavesDirectoryAlone(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.vhd"))

	got, err := Expand([]string{dir}, false, map[string]bool{"vhd": true})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != dir {
		t.Fatalf("expected directory left as-is, got %v", got)
	}
}

func TestFilterExcludedDropsDescendants(t *testing.T) {
	dir := t.TempDir()
	keep := filepath.Join(dir, "keep.vhd")
	dropped := filepath.Join(dir, "vendor", "ip.vhd")
	writeFile(t, keep)
	writeFile(t, dropped)

	got, err := FilterExcluded([]string{keep, dropped}, []string{filepath.Join(dir, "vendor")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0] != keep {
		t.Fatalf("expected only %q to survive, got %v", keep, got)
	}
}

func TestRepositoryRelative(t *testing.T) {
	dir := t.TempDir()
	full := filepath.Join(dir, "src", "foo.vhd")
	got := RepositoryRelative(full, dir)
	want := filepath.Join("src", "foo.vhd")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestRepositoryRelativeFallsBackWhenNotAPrefix(t *testing.T) {
	got := RepositoryRelative("/a/b/foo.vhd", "/x/y")
	if got != "/a/b/foo.vhd" {
		t.Fatalf("expected unchanged path, got %q", got)
	}
}

func TestStripRoot(t *testing.T) {
	if got := StripRoot("src/lib/foo.vhd", "src"); got != filepath.Join("lib", "foo.vhd") {
		t.Fatalf("got %q", got)
	}
	if got := StripRoot("other/foo.vhd", "src"); got != "other/foo.vhd" {
		t.Fatalf("expected unchanged, got %q", got)
	}
}
