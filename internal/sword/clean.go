package sword

import (
	"html"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/text/unicode/norm"
)

// excluded selects the footnotes and section headings of a verse, whose
// text is not part of the reading.
var excluded = xpath.MustCompile(`//note | //title`)

// Clean turns a raw OSIS/ThML verse into plain text on a single line.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	text, ok := markupText(raw)
	if !ok {
		text = stripTags(raw)
	}
	return norm.NFC.String(strings.Join(strings.Fields(text), " "))
}

func markupText(raw string) (string, bool) {
	if !strings.ContainsAny(raw, "<&") {
		return raw, true
	}

	doc, err := xmlquery.Parse(strings.NewReader("<verse>" + raw + "</verse>"))
	if err != nil {
		return "", false
	}

	skip := map[*xmlquery.Node]bool{}
	for _, n := range xmlquery.QuerySelectorAll(doc, excluded) {
		skip[n] = true
	}

	var b strings.Builder
	collectText(&b, doc, skip)
	return b.String(), true
}

// collectText appends the text under n in document order, leaving out the
// subtrees in skip.
func collectText(b *strings.Builder, n *xmlquery.Node, skip map[*xmlquery.Node]bool) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if skip[child] {
			continue
		}
		switch child.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b.WriteString(child.Data)
		case xmlquery.ElementNode, xmlquery.DocumentNode:
			collectText(b, child, skip)
		}
	}
}

// stripTags removes anything between angle brackets, for fragments that
// are not well-formed markup.
func stripTags(text string) string {
	var result strings.Builder
	inTag := false

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag:
			result.WriteByte(c)
		}
	}

	return html.UnescapeString(result.String())
}
