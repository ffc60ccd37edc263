package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	m, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty dir")
	}
	if m.Config.Build.OutDir != "target/ferric" || !m.Config.Build.Cache {
		t.Fatalf("defaults wrong: %+v", m.Config)
	}
}

func TestLoadParsesManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `
[package]
name = "demo"

[build]
out_dir = "out"
jobs = 2
cache = false

[diagnostics]
max = 5
`
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	cfg := m.Config
	if cfg.Package.Name != "demo" || cfg.Build.OutDir != "out" || cfg.Build.Jobs != 2 ||
		cfg.Build.Cache || cfg.Diagnostics.Max != 5 {
		t.Fatalf("parsed config wrong: %+v", cfg)
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[package]\nname = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	path, ok, err := Find(nested)
	if err != nil || !ok {
		t.Fatalf("Find: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %q, want under %q", path, root)
	}
}

func TestInitRefusesToClobber(t *testing.T) {
	dir := t.TempDir()
	if _, err := Init(dir, "demo"); err != nil {
		t.Fatalf("first init: %v", err)
	}
	if _, err := Init(dir, "demo"); err == nil {
		t.Fatalf("second init succeeded")
	}
	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load after init: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
}

func TestRejectsNegativeLimits(t *testing.T) {
	dir := t.TempDir()
	manifest := "[diagnostics]\nmax = -1\n"
	if err := os.WriteFile(filepath.Join(dir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, _, err := Load(dir); err == nil {
		t.Fatalf("negative max accepted")
	}
}
