package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ManifestPrefix namespaces downloaded manifest bodies.
const ManifestPrefix = "manifest:"

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ManifestKey returns the cache key for a remote manifest URL.
// Surrounding whitespace and a trailing slash do not change the key.
func ManifestKey(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	return ManifestPrefix + url
}
