// Package citation matches links inside a synthesized answer against the retrieved results.
package citation

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/Vizlook/youtube-search/internal/core/model"
)

type Kind int

const (
	// External links point outside the result set.
	External Kind = iota
	// Citation links point at a retrieved result.
	Citation
)

func (k Kind) String() string {
	if k == Citation {
		return "citation"
	}
	return "external"
}

// Link is one link found in an answer. Result is set only for citations.
type Link struct {
	Href   string
	Text   string
	Kind   Kind
	Result *model.ResultItem
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Resolve returns the answer's links in document order. Link destinations are decoded
// (backslash escapes, entity and numeric references) before matching. An href is a
// citation only when it then equals a result url byte for byte. Links with an empty
// href are dropped.
func Resolve(answer string, results []model.ResultItem) []Link {
	byURL := make(map[string]*model.ResultItem, len(results))
	for i := range results {
		if _, ok := byURL[results[i].URL]; !ok {
			byURL[results[i].URL] = &results[i]
		}
	}

	source := []byte(answer)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var links []Link
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var href, label string
		switch node := n.(type) {
		case *ast.Link:
			href = destination(node.Destination)
			label = inlineText(node, source)
		case *ast.AutoLink:
			href = string(node.URL(source))
			label = string(node.Label(source))
		default:
			return ast.WalkContinue, nil
		}

		if href != "" {
			link := Link{Href: href, Text: label, Kind: External}
			if r, ok := byURL[href]; ok {
				link.Kind = Citation
				link.Result = r
			}
			links = append(links, link)
		}
		return ast.WalkSkipChildren, nil
	})

	return links
}

// Citations filters links down to references into the result set.
func Citations(links []Link) []Link {
	var out []Link
	for _, l := range links {
		if l.Kind == Citation {
			out = append(out, l)
		}
	}
	return out
}

// CitedResults lists each cited result once, in order of first citation.
func CitedResults(answer string, results []model.ResultItem) []model.ResultItem {
	var out []model.ResultItem
	seen := make(map[string]bool)
	for _, l := range Citations(Resolve(answer, results)) {
		if seen[l.Href] {
			continue
		}
		seen[l.Href] = true
		out = append(out, *l.Result)
	}
	return out
}

// destination decodes backslash escapes and character references the way a renderer would.
func destination(raw []byte) string {
	d := util.UnescapePunctuations(raw)
	d = util.ResolveNumericReferences(d)
	d = util.ResolveEntityNames(d)
	return string(d)
}

func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				buf.Write(t.Segment.Value(source))
				if t.SoftLineBreak() {
					buf.WriteByte(' ')
				}
			case *ast.String:
				buf.Write(t.Value)
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return buf.String()
}
