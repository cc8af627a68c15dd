package netutil

import (
	"net/url"
	"path"
	"strings"
)

// StripCredentials removes user:password@ from a URL for safe logging.
// Returns the original string if the URL cannot be parsed.
func StripCredentials(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.User = nil

	return parsed.String()
}

// ResolveRelative joins a file name against the directory of a base locator.
// Absolute URLs and rooted paths pass through unchanged. Multi-marker
// configuration files reference their dependency pattern files this way.
func ResolveRelative(base, name string) string {
	if strings.Contains(name, "://") || strings.HasPrefix(name, "/") {
		return name
	}

	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		dir := base[:idx]
		if u, err := url.Parse(base); err == nil && u.Scheme != "" {
			// Keep the URL form intact; path.Join would collapse "//".
			return dir + "/" + name
		}
		return path.Join(dir, name)
	}
	return name
}
