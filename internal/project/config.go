package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultLineWidth is used when neither the config nor a flag sets it.
const DefaultLineWidth = 120

// ErrUnknownKeys is wrapped when .rbfmt.toml contains keys rbfmt does not read.
var ErrUnknownKeys = errors.New("unknown configuration keys")

// Config mirrors .rbfmt.toml.
type Config struct {
	Format FormatConfig `toml:"format"`
	Files  FilesConfig  `toml:"files"`
	Cache  CacheConfig  `toml:"cache"`

	// Path is the file the config was loaded from; empty for defaults.
	Path string `toml:"-"`
}

type FormatConfig struct {
	LineWidth int `toml:"line_width"`
}

// FilesConfig selects files when a directory is formatted. Patterns are
// slash-separated and relative to the project root; a pattern without a
// slash matches the base name.
type FilesConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default returns the configuration used without .rbfmt.toml.
func Default() Config {
	return Config{
		Format: FormatConfig{LineWidth: DefaultLineWidth},
		Files: FilesConfig{
			Include: []string{"*.rb", "*.rake", "*.gemspec", "*.ru", "Gemfile", "Rakefile"},
			Exclude: []string{"vendor/**", "node_modules/**", ".git/**"},
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Root is the directory patterns are relative to.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Load decodes path on top of Default. Keys rbfmt does not know are an
// error, so a typo does not silently fall back to a default.
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
		return Config{}, fmt.Errorf("%s: %w: %s", path, ErrUnknownKeys, strings.Join(keys, ", "))
	}
	cfg.Path = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the nearest .rbfmt.toml above startDir, or Default when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks values that cannot be used as is.
func (c Config) Validate() error {
	if c.Format.LineWidth <= 0 {
		return fmt.Errorf("[format].line_width must be positive, got %d", c.Format.LineWidth)
	}
	for _, p := range append(append([]string(nil), c.Files.Include...), c.Files.Exclude...) {
		if strings.TrimSpace(p) == "" {
			return errors.New("[files]: empty pattern")
		}
		if _, err := filepath.Match(strings.ReplaceAll(p, "**", "*"), ""); err != nil {
			return fmt.Errorf("[files]: bad pattern %q: %w", p, err)
		}
	}
	return nil
}
