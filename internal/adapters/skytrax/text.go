package skytrax

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// strippedStrings returns every visible text node under sel, trimmed, with
// blank nodes dropped. Comments, scripts and styles are not visible text.
func strippedStrings(sel *goquery.Selection) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return out
}

// strippedText concatenates the trimmed text nodes with no separator.
func strippedText(sel *goquery.Selection) string {
	return strings.Join(strippedStrings(sel), "")
}

// joinedText joins the trimmed text nodes with single spaces.
func joinedText(sel *goquery.Selection) string {
	return strings.Join(strippedStrings(sel), " ")
}

func ptr[T any](v T) *T { return &v }
