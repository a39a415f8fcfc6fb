package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[run]\nmain = \"scripts/main.tup\"\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Errorf("name = %q", m.Config.Package.Name)
	}
	if m.Config.Run.Main != "scripts/main.tup" {
		t.Errorf("main = %q", m.Config.Run.Main)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
}

func TestLoadFindsManifestFromSubdir(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Load(sub)
	if err != nil || !ok {
		t.Fatalf("load from subdir: ok=%v err=%v", ok, err)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
}

func TestLoadDefaultsRunMain(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if m.Config.Run.Main != "main.tup" {
		t.Errorf("default main = %q", m.Config.Run.Main)
	}
}

func TestLoadMissingPackageName(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[run]\nmain = \"main.tup\"\n")

	_, ok, err := Load(dir)
	if !ok {
		t.Fatal("manifest exists, ok must be true")
	}
	if err == nil || !strings.Contains(err.Error(), "[package]") {
		t.Fatalf("want missing-package error, got %v", err)
	}
}

func TestLoadNoManifest(t *testing.T) {
	// A temp dir has no tuple.toml anywhere up to the filesystem root.
	_, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("found a manifest where none exists")
	}
}

func TestMainPath(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n")
	if err := os.WriteFile(filepath.Join(dir, "main.tup"), []byte("show 1\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	m, _, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, err := m.MainPath()
	if err != nil {
		t.Fatalf("main path: %v", err)
	}
	if got != filepath.Join(dir, "main.tup") {
		t.Errorf("main path = %q", got)
	}
}

func TestMainPathRejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[run]\nmain = \"main.txt\"\n")
	if err := os.WriteFile(filepath.Join(dir, "main.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	m, _, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := m.MainPath(); err == nil {
		t.Fatal("expected extension error")
	}
}

func TestRenderRoundTrips(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, Render("fresh"))

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("load rendered manifest: ok=%v err=%v", ok, err)
	}
	if m.Config.Package.Name != "fresh" || m.Config.Run.Main != "main.tup" {
		t.Fatalf("config = %+v", m.Config)
	}
}

func TestLoadCheckSection(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[check]\nmax_diagnostics = 25\njobs = 4\n")

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if m.Config.Check.MaxDiagnostics != 25 {
		t.Errorf("max_diagnostics = %d", m.Config.Check.MaxDiagnostics)
	}
	if m.Config.Check.Jobs != 4 {
		t.Errorf("jobs = %d", m.Config.Check.Jobs)
	}
}

func TestLoadRejectsNegativeCheckValues(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, "[package]\nname = \"demo\"\n\n[check]\njobs = -1\n")

	_, _, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "[check].jobs") {
		t.Fatalf("err = %v, want [check].jobs complaint", err)
	}
}
