// Package project locates and reads the tuple.toml manifest that marks
// the root of a tuple-script project.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "tuple.toml"

// Manifest is a located, validated tuple.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Run     RunConfig     `toml:"run"`
	Check   CheckConfig   `toml:"check"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main string `toml:"main"`
}

// CheckConfig holds project-level defaults for the check pipeline.
// Zero values mean "unset"; CLI flags take precedence over both.
type CheckConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

// FindManifest walks up from startDir to locate tuple.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load walks up from startDir, parses and validates the nearest manifest.
// ok is false when no manifest exists between startDir and the
// filesystem root.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(cfg.Run.Main) == "" {
		// [run] is optional; default entry script.
		cfg.Run.Main = "main.tup"
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max_diagnostics must not be negative", path)
	}
	if cfg.Check.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [check].jobs must not be negative", path)
	}
	return cfg, nil
}

// MainPath resolves [run].main against the project root and verifies it
// exists. The target may be a single script or a directory of scripts.
func (m *Manifest) MainPath() (string, error) {
	mainRel := strings.TrimSpace(m.Config.Run.Main)
	mainPath := filepath.Join(m.Root, filepath.FromSlash(mainRel))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [run].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [run].main: %w", m.Path, err)
	}
	if !info.IsDir() && filepath.Ext(mainPath) != ".tup" {
		return "", fmt.Errorf("%s: [run].main must be a .tup file or directory", m.Path)
	}
	return mainPath, nil
}

// Render produces the manifest contents `deftuple init` writes.
func Render(name string) string {
	return fmt.Sprintf("[package]\nname = %q\n\n[run]\nmain = \"main.tup\"\n", name)
}
