package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// leadingText returns the first non-blank text node under s, trimmed.
func leadingText(s *goquery.Selection) string {
	for _, n := range s.Nodes {
		if t := firstText(n); t != "" {
			return t
		}
	}
	return ""
}

func firstText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if t := strings.TrimSpace(c.Data); t != "" {
				return t
			}
		case html.ElementNode:
			if t := firstText(c); t != "" {
				return t
			}
		}
	}
	return ""
}

// ownText returns the first non-blank text node that is a direct child of s.
func ownText(s *goquery.Selection) string {
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.TextNode {
				continue
			}
			if t := strings.TrimSpace(c.Data); t != "" {
				return t
			}
		}
	}
	return ""
}

// lastSegment returns the final non-empty "/" separated segment of link.
func lastSegment(link string) string {
	link = strings.TrimRight(link, "/")
	if i := strings.LastIndex(link, "/"); i >= 0 {
		return link[i+1:]
	}
	return link
}
