// Package project locates and parses the ferric.toml manifest that roots a
// translation project.
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
const ManifestName = "ferric.toml"

// Config is the parsed manifest with defaults filled in.
type Config struct {
	Package     PackageConfig     `toml:"package"`
	Build       BuildConfig       `toml:"build"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	// OutDir receives the generated .rs files, relative to the root.
	OutDir string `toml:"out_dir"`
	// Jobs bounds parallel file translation; zero means one per CPU.
	Jobs int `toml:"jobs"`
	// Cache toggles the on-disk translation cache.
	Cache bool `toml:"cache"`
}

type DiagnosticsConfig struct {
	// Max caps reported diagnostics per run.
	Max int `toml:"max"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Package:     PackageConfig{Name: "ferric-project"},
		Build:       BuildConfig{OutDir: "target/ferric", Cache: true},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
}

// Manifest couples a parsed config with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Find walks up from startDir to locate the manifest file.
func Find(startDir string) (path string, ok bool, err error) {
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

// Load finds and parses the nearest manifest. When none exists the default
// configuration is returned with ok set to false.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		dir, err := filepath.Abs(startDir)
		if err != nil {
			dir = startDir
		}
		return &Manifest{Root: dir, Config: Default()}, false, nil
	}
	cfg, err := parseFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func parseFile(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("package", "name") && strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: [package].name must not be empty", path)
	}
	if cfg.Build.Jobs < 0 {
		return Config{}, fmt.Errorf("%s: [build].jobs must not be negative", path)
	}
	if cfg.Diagnostics.Max < 0 {
		return Config{}, fmt.Errorf("%s: [diagnostics].max must not be negative", path)
	}
	return cfg, nil
}

// Init writes a starter manifest into dir. It refuses to clobber an
// existing one.
func Init(dir, name string) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	content := fmt.Sprintf(`[package]
name = %q

[build]
out_dir = "target/ferric"
cache = true

[diagnostics]
max = 100
`, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
