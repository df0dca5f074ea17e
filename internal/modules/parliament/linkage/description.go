package linkage

import (
	"strings"

	"golang.org/x/net/html"
)

// DecodeDescription undoes the export's HTML escaping. Some records are
// escaped twice; decoding stops once the text is stable.
func DecodeDescription(s string) string {
	for i := 0; i < 3; i++ {
		next := html.UnescapeString(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// DescriptionText renders the decoded description as plain text with
// collapsed whitespace, dropping script and style content.
func DescriptionText(description string) string {
	decoded := DecodeDescription(description)
	if strings.TrimSpace(decoded) == "" {
		return ""
	}
	root, err := html.Parse(strings.NewReader(decoded))
	if err != nil {
		return strings.Join(strings.Fields(decoded), " ")
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "br" || n.Data == "p" || n.Data == "li") {
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return strings.Join(strings.Fields(b.String()), " ")
}
