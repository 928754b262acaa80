package fetch

import "strings"

// MakeURL joins base and path. The path is appended only when it is rooted
// ("/", "/a/b", "/a?arg=1"); anything else yields base unchanged.
func MakeURL(base, path string) string {
	if strings.HasPrefix(path, "/") {
		return strings.TrimSuffix(base, "/") + path
	}
	return base
}
