package driver

import (
	"os"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"phpsniff/internal/source"
)

// writeBack restores the line endings and BOM the file was read with and
// replaces it atomically, keeping its permission bits.
func writeBack(path string, content []byte, flags source.FileFlags) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}
	data := source.Restore(content, flags)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		_ = tmp.Close()
		return errors.Errorf("write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Errorf("write %s: %w", path, err)
	}
	return nil
}
