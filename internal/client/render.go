package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/net/html"
)

// RenderInstructions converts an instructions article to markdown and
// renders it for the terminal. Falls back to the plain article text when
// rendering fails (e.g. no TTY profile).
func RenderInstructions(articleHTML string) string {
	md := toMarkdown(articleHTML)
	out, err := glamour.Render(md, "auto")
	if err != nil {
		return ArticleText(articleHTML)
	}
	return out
}

// toMarkdown performs a small HTML-to-markdown conversion covering the
// elements the puzzle pages actually use: headings, paragraphs, emphasis,
// inline code, code blocks, lists and links.
func toMarkdown(articleHTML string) string {
	doc, err := html.Parse(strings.NewReader(articleHTML))
	if err != nil {
		return ArticleText(articleHTML)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			return
		case n.Type == html.ElementNode:
			switch n.Data {
			case "h1", "h2", "h3":
				b.WriteString("\n## ")
				walkChildren(n, walk)
				b.WriteString("\n\n")
				return
			case "p":
				walkChildren(n, walk)
				b.WriteString("\n\n")
				return
			case "pre":
				b.WriteString("\n```\n")
				b.WriteString(text(n))
				b.WriteString("\n```\n\n")
				return
			case "code":
				b.WriteString("`")
				b.WriteString(text(n))
				b.WriteString("`")
				return
			case "em":
				b.WriteString("**")
				walkChildren(n, walk)
				b.WriteString("**")
				return
			case "li":
				b.WriteString("- ")
				walkChildren(n, walk)
				b.WriteString("\n")
				return
			case "a":
				href := attr(n, "href")
				if href == "" {
					walkChildren(n, walk)
					return
				}
				b.WriteString("[")
				walkChildren(n, walk)
				b.WriteString(fmt.Sprintf("](%s)", href))
				return
			}
		}
		walkChildren(n, walk)
	}
	walk(doc)
	return strings.TrimSpace(b.String())
}

func walkChildren(n *html.Node, walk func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	return strings.TrimRight(nodeText(n), "\n")
}
