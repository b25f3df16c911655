package utils

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// HTMLNode adds convenience accessors over the parsed element tree.
type HTMLNode html.Node

// AsHTMLNode is a shortcut for the (nil safe) conversion.
func AsHTMLNode(node *html.Node) *HTMLNode { return (*HTMLNode)(node) }

// Get returns the value of the first attribute named `name`, or the empty
// string.
func (h *HTMLNode) Get(name string) string {
	for _, attr := range h.Attr {
		if attr.Key == name {
			return attr.Val
		}
	}
	return ""
}

// GetURLAttribute resolves the attribute `name` against `baseURL`.
// It returns the empty string for a missing attribute, and warns (via the
// returned error) when the reference cannot be resolved.
func (h *HTMLNode) GetURLAttribute(name, baseURL string) (string, error) {
	value := strings.TrimSpace(h.Get(name))
	if value == "" {
		return "", nil
	}
	return ResolveURL(baseURL, value)
}

// NodeChildren returns the direct children elements of the node,
// ignoring text (and comment) nodes. If `skipBlank` is true, text nodes
// are still checked for non whitespace content.
func (h *HTMLNode) NodeChildren(skipBlank bool) (out []*HTMLNode) {
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, (*HTMLNode)(c))
		} else if c.Type == html.TextNode && !skipBlank && strings.TrimSpace(c.Data) != "" {
			out = append(out, (*HTMLNode)(c))
		}
	}
	return out
}

// ElementTag returns the tag name of the element, or the empty string for
// non element nodes.
func (h *HTMLNode) ElementTag() string {
	if h == nil || h.Type != html.ElementNode {
		return ""
	}
	return h.Data
}

// ResolveURL joins a possibly relative URL reference with its base.
func ResolveURL(baseURL, ref string) (string, error) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if parsed.IsAbs() || baseURL == "" {
		return parsed.String(), nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(parsed).String(), nil
}

// IsWhitespace reports whether `s` contains only CSS whitespace characters.
func IsWhitespace(s string) bool {
	return strings.Trim(s, " \t\n\f\r") == ""
}
