package errors

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode"
)

// ManifestExtensions lists the file suffixes accepted for compose manifests.
var ManifestExtensions = []string{".yaml", ".yml"}

// ValidateManifestPath checks that a local manifest path is non-empty, free of
// control characters and ends in a recognized YAML suffix.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "input path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "input path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range ManifestExtensions {
		if ext == allowed {
			return nil
		}
	}
	return New(ErrCodeInvalidExtension, "file '%s' has unsupported extension. File should be 'yaml' or 'yml'", path)
}

// ValidateURL accepts absolute http(s) URLs that name a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !IsRemote(rawURL) {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "malformed URL '%s'", rawURL)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL '%s' has no host", rawURL)
	}
	return nil
}

// IsRemote reports whether the input refers to a remote manifest.
func IsRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}
