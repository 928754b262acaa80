// Package render provides the output renderers for topic documents.
// Every renderer implements core.Renderer; the format names accepted by New
// are the ones the CLI exposes.
package render

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/worldometer/core"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "markdown", "pdf"}

// New returns the renderer for format.
func New(format string) (core.Renderer, error) {
	switch format {
	case "text", "":
		return NewTextRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "markdown":
		return NewMarkdownRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// FormatCell renders a cell value as text. Integers have no separators and
// floats use the shortest exact form; nil becomes an empty string.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func title(doc core.Document) string {
	if doc.Topic == "" {
		return "worldometer"
	}
	return doc.Topic
}
