package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigHasSaneDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Output != "emacs" {
		t.Errorf("expected default output emacs, got %q", cfg.Output)
	}
	if cfg.LineLength != 80 {
		t.Errorf("expected default line length 80, got %d", cfg.LineLength)
	}
	if !cfg.ExtensionSet()["vhd"] || !cfg.ExtensionSet()["vhdl"] {
		t.Errorf("expected default extensions to include vhd and vhdl, got %v", cfg.Extensions)
	}
}

func TestLoadFileAppliesDefaultsToMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vhdllint.json")
	if err := os.WriteFile(path, []byte(`{"verbose": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Verbose != 3 {
		t.Errorf("expected verbose 3, got %d", cfg.Verbose)
	}
	if cfg.Output != "emacs" {
		t.Errorf("expected backfilled default output, got %q", cfg.Output)
	}
}

func TestLoadFileRejectsUnknownOutputFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vhdllint.json")
	if err := os.WriteFile(path, []byte(`{"output": "not-a-format"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error for an unrecognized output format")
	}
}

func TestShouldIgnoreFileMatchesBaseName(t *testing.T) {
	cfg := &Config{IgnorePatterns: []string{"*_pkg.vhd"}}
	if !cfg.ShouldIgnoreFile("/src/foo_pkg.vhd") {
		t.Error("expected *_pkg.vhd to match foo_pkg.vhd")
	}
	if cfg.ShouldIgnoreFile("/src/foo.vhd") {
		t.Error("did not expect foo.vhd to match *_pkg.vhd")
	}
}

func TestLoadCfgChainAccumulatesFilters(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	writeCfg(t, filepath.Join(root, "VHDLLINT.cfg"), "filter=-whitespace\nlinelength=100\n")
	writeCfg(t, filepath.Join(sub, "VHDLLINT.cfg"), "filter=-build/filename\n")

	target := filepath.Join(sub, "foo.vhd")
	if err := os.WriteFile(target, []byte("-- header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	chain, errs := LoadCfgChain(target)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(chain.Filters) != 2 {
		t.Fatalf("expected 2 accumulated filters, got %v", chain.Filters)
	}
	if chain.Filters[0] != "-build/filename" || chain.Filters[1] != "-whitespace" {
		t.Fatalf("expected closest-directory filter first, got %v", chain.Filters)
	}
	if chain.LineLength == nil || *chain.LineLength != 100 {
		t.Fatalf("expected linelength 100 from ancestor config, got %v", chain.LineLength)
	}
}

func TestLoadCfgChainStopsAtSetNoparent(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	writeCfg(t, filepath.Join(root, "VHDLLINT.cfg"), "filter=-whitespace\n")
	writeCfg(t, filepath.Join(sub, "VHDLLINT.cfg"), "set noparent\nfilter=-build/filename\n")

	target := filepath.Join(sub, "foo.vhd")
	if err := os.WriteFile(target, []byte("-- header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	chain, _ := LoadCfgChain(target)
	if len(chain.Filters) != 1 || chain.Filters[0] != "-build/filename" {
		t.Fatalf("expected set noparent to stop the walk, got %v", chain.Filters)
	}
}

func TestLoadCfgChainExcludeFiles(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "vendor")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeCfg(t, filepath.Join(root, "VHDLLINT.cfg"), "exclude_files=vendor\n")

	target := filepath.Join(sub, "ip.vhd")
	if err := os.WriteFile(target, []byte("-- header\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	chain, _ := LoadCfgChain(target)
	if !chain.Excluded {
		t.Fatal("expected exclude_files=vendor to exclude a file under vendor/")
	}
}

func writeCfg(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}
