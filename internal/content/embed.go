package content

import (
	"errors"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	// ErrEmbedEmpty is returned when the pasted embed code is blank.
	ErrEmbedEmpty = errors.New("embed code is empty")

	// ErrEmbedInvalid is returned when the pasted markup holds no iframe element.
	ErrEmbedInvalid = errors.New("embed code must contain an <iframe> element")
)

// ValidateEmbed parses raw embed markup as an HTML fragment and accepts it
// only when it contains at least one iframe element. The accepted value is the
// trimmed input, unmodified.
func ValidateEmbed(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", ErrEmbedEmpty
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(code), body)
	if err != nil {
		return "", ErrEmbedInvalid
	}

	for _, n := range nodes {
		if containsIframe(n) {
			return code, nil
		}
	}
	return "", ErrEmbedInvalid
}

// containsIframe walks the subtree rooted at n looking for an iframe element.
func containsIframe(n *html.Node) bool {
	if n.Type == html.ElementNode && n.DataAtom == atom.Iframe {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if containsIframe(c) {
			return true
		}
	}
	return false
}
