package driver

import (
	"crypto/sha256"

	"phpsniff/internal/source"
)

// Digest is a SHA-256 cache key.
type Digest [32]byte

// combineDigest hashes content followed by each part, NUL-separated.
func combineDigest(content [32]byte, parts ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, p := range parts {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(p))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// CacheKey identifies a scan result: the file content and path (rules depend
// on the path), the config fingerprint and the tool version.
func CacheKey(file *source.File, fingerprint, version string) Digest {
	return combineDigest(file.Hash, file.Path, fingerprint, version)
}
