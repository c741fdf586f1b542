package projdir

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"strings"
)

// fallbackName is used when the directory base name sanitizes to nothing.
const fallbackName = "project"

// Slug returns a filesystem-safe identifier for the given directory:
// the sanitized lowercase base name joined with the first 8 hex chars of
// the SHA-256 of the absolute path. Two checkouts with the same base name
// get distinct slugs; the same path always gets the same slug.
func Slug(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	name := sanitize(filepath.Base(abs))
	if name == "" {
		name = fallbackName
	}

	sum := sha256.Sum256([]byte(abs))
	return name + "-" + hex.EncodeToString(sum[:4])
}

// sanitize lowercases the name and collapses anything outside
// [a-z0-9_-] into single hyphens.
func sanitize(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
