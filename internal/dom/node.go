// Package dom provides a minimal rendered-DOM tree model and the query
// primitives the extractors walk it with.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// TextTag is the tag name carried by text nodes, following the DOM
// nodeName convention.
const TextTag = "#text"

// Node represents one node in a rendered HTML tree. Element tags are
// uppercase ("TBODY", "TD"); text nodes use TextTag and carry their
// content in Value.
type Node struct {
	Tag        string
	Value      string
	Attributes map[string]string
	Children   []*Node
}

// IsText reports whether the node is a text node
func (n *Node) IsText() bool {
	return n.Tag == TextTag
}

// FromHTML converts a parsed html.Node subtree into a Node tree. Only
// element and text nodes are kept; comments, doctypes and whitespace-only
// text nodes are dropped, and text values are trimmed, so the converted
// tree matches the rendered-DOM shape the extraction predicates expect.
// Returns nil when the subtree contains no element or text content.
func FromHTML(src *html.Node) *Node {
	switch src.Type {
	case html.DocumentNode:
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			if n := FromHTML(c); n != nil {
				return n
			}
		}
		return nil
	case html.ElementNode:
		n := &Node{Tag: strings.ToUpper(src.Data)}
		if len(src.Attr) > 0 {
			n.Attributes = make(map[string]string, len(src.Attr))
			for _, a := range src.Attr {
				n.Attributes[a.Key] = a.Val
			}
		}
		for c := src.FirstChild; c != nil; c = c.NextSibling {
			if child := FromHTML(c); child != nil {
				n.Children = append(n.Children, child)
			}
		}
		return n
	case html.TextNode:
		text := strings.TrimSpace(src.Data)
		if text == "" {
			return nil
		}
		return &Node{Tag: TextTag, Value: text}
	default:
		return nil
	}
}
