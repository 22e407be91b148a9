// Package htmlclean rewrites feed body HTML into a constrained structure:
// every run of text or inline content is wrapped in a paragraph element,
// lists and tables pass through untouched, block containers are flattened
// recursively, and line breaks become paragraph boundaries.
package htmlclean

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockContainers are flattened in place: their children are rewritten into
// paragraphs and re-wrapped inside a clone of the container tag.
var blockContainers = map[string]bool{
	"div":     true,
	"section": true,
	"header":  true,
	"footer":  true,
	"aside":   true,
	"article": true,
}

// passthroughBlocks are emitted as standalone blocks without rewriting; their
// internal structure is load-bearing and must never be paragraph-wrapped.
var passthroughBlocks = map[string]bool{
	"ul":    true,
	"ol":    true,
	"dl":    true,
	"table": true,
}

// Clean rewrites an HTML fragment into the constrained paragraph structure.
// It is a total function: on any internal inconsistency, including a failed
// text-preservation check, it returns the input unchanged. Cleaning must
// never delete visible content.
func Clean(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return fragment
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		log.Warn().Err(err).Msg("Body HTML could not be parsed, keeping original")
		return fragment
	}

	cleaned, err := render(flatten(nodes))
	if err != nil {
		log.Warn().Err(err).Msg("Cleaned body HTML could not be rendered, keeping original")
		return fragment
	}

	if visibleText(cleaned) != visibleText(fragment) {
		log.Warn().
			Str("original", fragment).
			Str("cleaned", cleaned).
			Msg("Body HTML cleaning would alter visible text, keeping original")
		return fragment
	}
	return cleaned
}

// flatten rewrites a sibling sequence into a sequence of blocks. Text and
// inline nodes accumulate into the current paragraph; block-level nodes flush
// it. All emitted nodes are fresh clones, so the source tree is never aliased.
func flatten(nodes []*html.Node) []*html.Node {
	var blocks []*html.Node
	var paragraph []*html.Node

	flush := func() {
		if len(paragraph) == 0 {
			return
		}
		if hasContent(paragraph) {
			p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
			for _, n := range paragraph {
				p.AppendChild(n)
			}
			blocks = append(blocks, p)
		}
		paragraph = nil
	}

	for _, n := range nodes {
		switch {
		case n.Type == html.ElementNode && blockContainers[n.Data]:
			flush()
			container := cloneShallow(n)
			for _, child := range flatten(children(n)) {
				container.AppendChild(child)
			}
			blocks = append(blocks, container)

		case n.Type == html.ElementNode && n.Data == "p":
			// Unwrap: the element's own children are flattened into sibling
			// blocks, which is how nested paragraphs collapse.
			flush()
			blocks = append(blocks, flatten(children(n))...)

		case n.Type == html.ElementNode && n.Data == "br":
			// Paragraph boundary; the break itself is dropped.
			flush()

		case n.Type == html.ElementNode && passthroughBlocks[n.Data]:
			flush()
			blocks = append(blocks, cloneDeep(n))

		default:
			paragraph = append(paragraph, cloneDeep(n))
		}
	}
	flush()

	return blocks
}

// hasContent reports whether an accumulated paragraph holds anything worth
// emitting: any element node counts (void inline elements carry no text), as
// does any non-whitespace text.
func hasContent(nodes []*html.Node) bool {
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			return true
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				return true
			}
		}
	}
	return false
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}

func cloneShallow(n *html.Node) *html.Node {
	return &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
}

func cloneDeep(n *html.Node) *html.Node {
	c := cloneShallow(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(cloneDeep(child))
	}
	return c
}

func parseFragment(fragment string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(fragment), context)
}

func render(nodes []*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// visibleText returns the fragment's visible text with all whitespace
// removed, the form the preservation check compares.
func visibleText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), "")
}
