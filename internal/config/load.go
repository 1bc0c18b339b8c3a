package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// FileNames are the config files searched for, in order, in each directory.
var FileNames = []string{".phpsniff.toml", "phpsniff.toml", ".phpsniff.yaml", ".phpsniff.yml"}

// LoadError reports a config file that could not be read, parsed or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Find walks up from startDir to the first directory holding one of FileNames.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errors.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, errors.Errorf("failed to stat %q: %w", candidate, err)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path over the defaults. Keys absent from the file keep their
// default values. Every failure is a *LoadError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = decodeTOML(data, cfg)
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = errors.Errorf("unsupported file extension %q", ext)
	}
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	cfg.Path = path
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return errors.Errorf("parsing TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return errors.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	if !meta.IsDefined("version") {
		cfg.Version = SchemaVersion
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return errors.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// Validate checks values a decoder cannot.
func (c *Config) Validate() error {
	if c.Version != SchemaVersion {
		return errors.Errorf("unsupported config version %d (want %d)", c.Version, SchemaVersion)
	}
	if c.TranslatorComment.MinLength < 0 {
		return errors.New("translator_comment.min_length must not be negative")
	}
	if c.TranslatorComment.LookbackLines < 0 {
		return errors.New("translator_comment.lookback_lines must not be negative")
	}
	if c.Fixer.MaxPasses < 1 {
		return errors.New("fixer.max_passes must be at least 1")
	}
	if _, err := ParsePHPVersion(c.Compat.Target); err != nil {
		return errors.Errorf("compat.target: %w", err)
	}
	if len(c.Files.Extensions) == 0 {
		return errors.New("files.extensions must not be empty")
	}
	return nil
}

// Resolve loads explicit when set, otherwise the first config found walking
// up from startDir, otherwise the defaults.
func Resolve(startDir, explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, &LoadError{Path: startDir, Err: err}
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// ResolveOrDefault is Resolve that falls back to Default on a LoadError and
// logs a single warning through the context logger.
func ResolveOrDefault(ctx context.Context, startDir, explicit string) *Config {
	cfg, err := Resolve(startDir, explicit)
	if err == nil {
		return cfg
	}
	var le *LoadError
	if errors.As(err, &le) {
		zerolog.Ctx(ctx).Warn().Str("path", le.Path).Err(le.Err).Msg("config not usable, using defaults")
	} else {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("config not usable, using defaults")
	}
	return Default()
}
