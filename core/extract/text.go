package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cellText returns the visible text of a cell with runs of whitespace
// collapsed. Script, style and nested table content is skipped.
func cellText(td *goquery.Selection) string {
	var buf bytes.Buffer
	for _, n := range td.Nodes {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeText(child, &buf)
		}
	}
	return collapseSpace(buf.String())
}

func writeText(node *html.Node, buf *bytes.Buffer) {
	switch node.Type {
	case html.TextNode:
		buf.WriteString(node.Data)
		return
	case html.ElementNode:
		switch node.Data {
		case "script", "style", "table":
			return
		case "br":
			buf.WriteByte(' ')
			return
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		writeText(child, buf)
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
