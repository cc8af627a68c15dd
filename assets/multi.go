package assets

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseDependencies extracts the ordered list of pattern files a
// multi-marker configuration references. Comments run from '#' to end of
// line; any remaining whitespace-separated token ending in ".patt" is a
// dependency. Duplicates keep their first position. Barcode-only
// configurations legitimately reference no files and yield an empty list.
//
// Content that is not valid UTF-8 cannot be a configuration file at all and
// is an error rather than "no dependencies".
func ParseDependencies(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("configuration is not valid text")
	}

	var deps []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(string(data), "\n") {
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		for _, token := range strings.Fields(line) {
			if !strings.HasSuffix(token, ".patt") {
				continue
			}
			if seen[token] {
				continue
			}
			seen[token] = true
			deps = append(deps, token)
		}
	}

	return deps, nil
}
