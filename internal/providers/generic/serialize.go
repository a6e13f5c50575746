package generic

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderInner writes the children of n as markup an XML parser accepts:
// void elements self-close, raw-text elements and comments are dropped, and
// names and runes XML cannot carry are removed. The tree is modified in place.
func renderInner(n *html.Node) (string, error) {
	clean(n)

	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

func clean(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling

		switch c.Type {
		case html.ElementNode:
			// html.Render writes the text of these unescaped
			switch c.Data {
			case "script", "style", "noscript", "iframe", "noembed", "noframes":
				n.RemoveChild(c)
				c = next
				continue
			case "xmp", "plaintext":
				c.Data, c.DataAtom = "pre", atom.Pre
			}

			c.Attr = xmlAttrs(c.Attr)
			clean(c)
			if !validName(c.Data) {
				unwrap(n, c)
			}
		case html.CommentNode:
			n.RemoveChild(c)
		case html.TextNode:
			c.Data = xmlText(c.Data)
		}

		c = next
	}
}

// unwrap replaces n with its children.
func unwrap(parent, n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
}

func xmlAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if !validName(a.Key) {
			continue
		}
		a.Val = xmlText(a.Val)
		out = append(out, a)
	}

	return out
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == ':' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
		case i > 0 && (r == '-' || r == '.' || ('0' <= r && r <= '9')):
		default:
			return false
		}
	}

	return true
}

func xmlText(s string) string {
	if strings.IndexFunc(s, invalidXMLRune) < 0 {
		return s
	}

	return strings.Map(func(r rune) rune {
		if invalidXMLRune(r) {
			return -1
		}
		return r
	}, s)
}

func invalidXMLRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return false
	case r < 0x20:
		return true
	case r >= 0xD800 && r <= 0xDFFF, r == 0xFFFE, r == 0xFFFF:
		return true
	}

	return r > utf8.MaxRune
}
