package extract

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Filter restricts extraction to tables carrying the given attributes.
// The "class" entry matches when every listed class token is present on
// the table; any other attribute must match exactly.
type Filter map[string]string

// Selector renders the filter as a CSS selector for table elements.
func (f Filter) Selector() string {
	var b strings.Builder
	b.WriteString("table")
	for _, key := range slices.Sorted(maps.Keys(f)) {
		value := f[key]
		if key == "class" {
			for _, token := range strings.Fields(value) {
				fmt.Fprintf(&b, `[class~="%s"]`, escapeAttr(token))
			}
			continue
		}
		fmt.Fprintf(&b, `[%s="%s"]`, key, escapeAttr(value))
	}
	return b.String()
}

// compile turns the filter into a cascadia matcher.
func (f Filter) compile() (cascadia.Selector, error) {
	sel, err := cascadia.Compile(f.Selector())
	if err != nil {
		return nil, fmt.Errorf("compiling table filter %v: %w", map[string]string(f), err)
	}
	return sel, nil
}

func escapeAttr(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}
