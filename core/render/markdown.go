package render

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/worldometer/core"
	"github.com/gaurav-prasanna/worldometer/core/normalize"
)

// MarkdownRenderer writes a document as Markdown with one pipe table per
// document table. The document is laid out as HTML first and converted by
// the normalizer.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	md, err := r.normalizer.Normalize(documentHTML(doc))
	if err != nil {
		return nil, err
	}
	return []byte(md), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// documentHTML lays a document out as an HTML fragment.
func documentHTML(doc core.Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(title(doc)))
	if doc.URL != "" {
		fmt.Fprintf(&b, "<p>Source: %s</p>\n", html.EscapeString(doc.URL))
	}
	if !doc.FetchedAt.IsZero() {
		fmt.Fprintf(&b, "<p>Fetched: %s</p>\n", doc.FetchedAt.UTC().Format(time.RFC3339))
	}

	for _, t := range doc.Tables {
		if len(doc.Tables) > 1 && t.Name != "" {
			fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(t.Name))
		}
		b.WriteString("<table>\n<thead><tr>")
		for _, col := range t.Columns {
			fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(col))
		}
		b.WriteString("</tr></thead>\n<tbody>\n")
		for _, row := range t.Rows {
			b.WriteString("<tr>")
			for _, v := range row {
				fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(FormatCell(v)))
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")
	}
	return b.String()
}
