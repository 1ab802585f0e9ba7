// Package config loads spvdecomp.toml.
//
// The file is looked up from the working directory upwards unless a path is
// given explicitly. Every key is optional; missing keys keep their defaults
// and command-line flags override whatever the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name looked up by Find.
const FileName = "spvdecomp.toml"

type Config struct {
	Render RenderConfig `toml:"render"`
	Errors ErrorsConfig `toml:"errors"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

type RenderConfig struct {
	Dialect   string `toml:"dialect"`
	Jobs      int    `toml:"jobs"`
	ShowNames bool   `toml:"show_names"`
}

type ErrorsConfig struct {
	Policy         string   `toml:"policy"`
	Degrade        []string `toml:"degrade"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Render: RenderConfig{Dialect: "rust", ShowNames: true},
		Errors: ErrorsConfig{Policy: "strict", MaxDiagnostics: 100},
		Cache:  CacheConfig{Enabled: true},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
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

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest FileName above
// startDir, otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks value ranges; names of dialects and policies are checked
// by their consumers.
func (c Config) Validate() error {
	var errs []error
	if c.Render.Jobs < 0 {
		errs = append(errs, fmt.Errorf("[render].jobs must be >= 0, got %d", c.Render.Jobs))
	}
	if c.Errors.MaxDiagnostics < 0 {
		errs = append(errs, fmt.Errorf("[errors].max_diagnostics must be >= 0, got %d", c.Errors.MaxDiagnostics))
	}
	if strings.TrimSpace(c.Render.Dialect) == "" {
		errs = append(errs, errors.New("[render].dialect must not be empty"))
	}
	return errors.Join(errs...)
}
