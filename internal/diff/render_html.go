package diff

import (
	"bytes"
	"fmt"

	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLOptions controls RenderHTML.
type HTMLOptions struct {
	Standalone  bool   // Emit a full document with a <style> block instead of a fragment.
	Title       string // Document title when Standalone. Defaults to "linediff".
	Summary     bool   // Emit a div.summary with Summary().String() before the rows.
	Minify      bool   // Minify the output.
	ContextSize int    // As in RenderPlain; < 0 shows every row.
}

const htmlStyle = `.diff-output{font-family:monospace}
.diff-line{margin:0;white-space:pre-wrap}
.diff-line.added{background:#e6ffed}
.diff-line.removed{background:#ffeef0}
.diff-word-added{background:#acf2bd}
.diff-word-removed{background:#fdb8c0}
.diff-line.separator{color:#888}
.summary{font-family:sans-serif;margin-bottom:8px}`

// RenderHTML renders d as HTML. Each row is a pre.diff-line with class same, added, or removed; both lines of a modified pair also carry the modified class
// and hold one span per token, with changed tokens classed "diff-word diff-word-added" or "diff-word diff-word-removed". Text is escaped.
func (d Diff) RenderHTML(opts HTMLOptions) (string, error) {
	var nodes []*html.Node
	if opts.Summary {
		nodes = append(nodes, element(atom.Div, "summary", textNode(d.Summary().String())))
	}
	nodes = append(nodes, d.htmlRows(opts.ContextSize))

	var root *html.Node
	if opts.Standalone {
		title := opts.Title
		if title == "" {
			title = "linediff"
		}
		meta := element(atom.Meta, "")
		meta.Attr = append(meta.Attr, html.Attribute{Key: "charset", Val: "utf-8"})
		head := element(atom.Head, "", meta, element(atom.Title, "", textNode(title)), element(atom.Style, "", textNode(htmlStyle)))
		doc := element(atom.Html, "", head, element(atom.Body, "", nodes...))
		root = &html.Node{Type: html.DocumentNode}
		root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
		root.AppendChild(doc)
	} else {
		root = &html.Node{Type: html.DocumentNode}
		for _, n := range nodes {
			root.AppendChild(n)
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	if !opts.Minify {
		return buf.String(), nil
	}

	m := minify.New()
	m.Add("text/html", &minhtml.Minifier{KeepDocumentTags: opts.Standalone, KeepEndTags: true, KeepQuotes: true})
	out, err := m.String("text/html", buf.String())
	if err != nil {
		return "", fmt.Errorf("minify html: %w", err)
	}
	return out, nil
}

func (d Diff) htmlRows(contextSize int) *html.Node {
	container := element(atom.Div, "diff-output")
	for gi, r := range d.visibleRanges(contextSize) {
		if gi > 0 {
			container.AppendChild(element(atom.Pre, "diff-line separator", textNode(groupSeparator)))
		}
		for _, ln := range d.Lines[r[0]:r[1]] {
			switch ln.Op {
			case OpEqual:
				container.AppendChild(element(atom.Pre, "diff-line same", textNode(prefixEqual+ln.OldText)))
			case OpInsert:
				container.AppendChild(element(atom.Pre, "diff-line added", textNode(prefixInsert+ln.NewText)))
			case OpDelete:
				container.AppendChild(element(atom.Pre, "diff-line removed", textNode(prefixDelete+ln.OldText)))
			case OpReplace:
				container.AppendChild(htmlModifiedLine(ln, OpDelete))
				container.AppendChild(htmlModifiedLine(ln, OpInsert))
			}
		}
	}
	return container
}

// htmlModifiedLine renders one side of a modified pair. focus is OpDelete for the old line and OpInsert for the new line.
func htmlModifiedLine(ln DiffLine, focus Op) *html.Node {
	class, prefix, wordClass := "diff-line removed modified", prefixDelete, "diff-word diff-word-removed"
	if focus == OpInsert {
		class, prefix, wordClass = "diff-line added modified", prefixInsert, "diff-word diff-word-added"
	}

	line := element(atom.Pre, class, element(atom.Span, "", textNode(prefix)))
	for _, sp := range ln.Spans {
		switch {
		case sp.Op == OpEqual && sp.OldText != "":
			line.AppendChild(element(atom.Span, "", textNode(sp.OldText)))
		case sp.Op == focus && focus == OpDelete && sp.OldText != "":
			line.AppendChild(element(atom.Span, wordClass, textNode(sp.OldText)))
		case sp.Op == focus && focus == OpInsert && sp.NewText != "":
			line.AppendChild(element(atom.Span, wordClass, textNode(sp.NewText)))
		}
	}
	return line
}

func element(a atom.Atom, class string, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
