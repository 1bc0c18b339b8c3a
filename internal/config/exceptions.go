package config

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// LoadExceptions reads a project exceptions file:
// .txt holds one entry per line ("#" starts a comment),
// .yaml/.yml a list of strings, .toml an `exceptions = [...]` array.
func LoadExceptions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading exceptions file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", "":
		var out []string
		sc := bufio.NewScanner(bytes.NewReader(data))
		for sc.Scan() {
			line := sc.Text()
			if i := strings.IndexByte(line, '#'); i >= 0 {
				line = line[:i]
			}
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, errors.Errorf("reading exceptions file: %w", err)
		}
		return out, nil
	case ".yaml", ".yml":
		var out []string
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, errors.Errorf("parsing YAML exceptions: %w", err)
		}
		return out, nil
	case ".toml":
		var doc struct {
			Exceptions []string `toml:"exceptions"`
		}
		meta, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Errorf("parsing TOML exceptions: %w", err)
		}
		if !meta.IsDefined("exceptions") {
			return nil, errors.New("TOML exceptions file has no exceptions array")
		}
		return doc.Exceptions, nil
	default:
		return nil, errors.Errorf("unsupported exceptions file extension %q", ext)
	}
}
