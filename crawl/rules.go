package crawl

import (
	"net/url"
	"path"
	"strings"
)

// staticExtensions are file extensions never worth fetching for tables.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true,
	".css": true, ".js": true, ".json": true, ".xml": true,
	".woff": true, ".woff2": true, ".ttf": true,
	".pdf": true, ".csv": true, ".xls": true, ".xlsx": true, ".zip": true,
}

// Scope decides which links a crawl follows: same host, not a static asset,
// and under one of Sections when any are given.
type Scope struct {
	Host     string
	Sections []string
}

// Allows reports whether rawURL is inside the scope.
func (s Scope) Allows(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host != s.Host {
		return false
	}
	if staticExtensions[strings.ToLower(path.Ext(parsed.Path))] {
		return false
	}
	if len(s.Sections) == 0 {
		return true
	}
	for _, section := range s.Sections {
		if parsed.Path == strings.TrimSuffix(section, "/") || strings.HasPrefix(parsed.Path, section) {
			return true
		}
	}
	return false
}

// NormalizeURL strips fragments, queries and trailing slashes for
// deduplication. The root path keeps its slash.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	parsed.RawQuery = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}

// resolveURL resolves href against base. Non-navigational links resolve to "".
func resolveURL(href string, base *url.URL) string {
	for _, prefix := range []string{"mailto:", "javascript:", "tel:", "#"} {
		if strings.HasPrefix(href, prefix) {
			return ""
		}
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
