package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/config"
)

// Discover expands roots into the sorted, de-duplicated list of files to
// scan. Directories are walked for the configured extensions; explicit file
// arguments are taken whatever their extension. Ignore globs match the
// slash-separated path relative to the root being walked.
func Discover(roots []string, files config.Files) ([]string, error) {
	exts := make(map[string]bool, len(files.Extensions))
	for _, e := range files.Extensions {
		exts[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}
	for _, p := range files.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid ignore pattern %q", p)
		}
	}

	seen := make(map[string]bool)
	var out []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			out = append(out, clean)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Errorf("discover %s: %w", root, err)
		}
		if !info.IsDir() {
			if !ignored(files.Ignore, filepath.ToSlash(filepath.Clean(root))) {
				add(root)
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)
			if rel == "." {
				return nil
			}
			if ignored(files.Ignore, rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
			if exts[ext] {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(out)
	return out, nil
}

func ignored(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}
