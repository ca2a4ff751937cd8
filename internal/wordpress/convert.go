package wordpress

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	captionShortcode = regexp.MustCompile(`\[/?caption[^\]]*\]`)
	blankRuns        = regexp.MustCompile(`\n{3,}`)
	trailingSpace    = regexp.MustCompile(`[ \t]+\n`)
	inlineSpace      = regexp.MustCompile(`[ \t\r\n]+`)
	languageClass    = regexp.MustCompile(`language-([\w+-]+)`)
)

// knownLanguages are bare class names accepted as a fence language when
// no language- prefix is present.
var knownLanguages = map[string]bool{
	"bash": true, "c": true, "cpp": true, "go": true, "java": true,
	"javascript": true, "js": true, "perl": true, "python": true,
	"ruby": true, "rust": true, "sh": true, "shell": true, "sql": true,
	"toml": true, "yaml": true,
}

// MarkdownFromHTML converts WordPress post HTML into markdown. Code
// block contents come straight from the parsed text nodes, so markup
// written inside <pre> survives as literal text instead of being eaten
// by the conversion. WordPress [caption] shortcodes are stripped.
func MarkdownFromHTML(src string) (string, error) {
	src = captionShortcode.ReplaceAllString(src, "")

	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parse post HTML: %w", err)
	}
	body := findBody(doc)
	if body == nil {
		return "", nil
	}

	var b strings.Builder
	renderBlocks(&b, body)

	out := trailingSpace.ReplaceAllString(b.String(), "\n")
	out = blankRuns.ReplaceAllString(out, "\n\n")
	out = strings.TrimSpace(out)
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

// renderBlocks walks a block-level context. Bare text keeps its
// newlines, so exports written as plain paragraphs separated by blank
// lines convert unchanged.
func renderBlocks(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)

		case html.ElementNode:
			renderBlockElement(b, c)
		}
	}
}

func renderBlockElement(b *strings.Builder, n *html.Node) {
	switch n.DataAtom {
	case atom.P:
		if text := strings.TrimSpace(renderInline(n)); text != "" {
			b.WriteString(text)
			b.WriteString("\n\n")
		}

	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		text := strings.TrimSpace(renderInline(n))
		b.WriteString(strings.Repeat("#", level))
		b.WriteString(" ")
		b.WriteString(text)
		b.WriteString("\n\n")

	case atom.Pre:
		b.WriteString(renderCodeFence(n))
		b.WriteString("\n\n")

	case atom.Ul:
		renderList(b, n, false, 0)
		b.WriteString("\n")

	case atom.Ol:
		renderList(b, n, true, 0)
		b.WriteString("\n")

	case atom.Blockquote:
		var inner strings.Builder
		renderBlocks(&inner, n)
		for _, line := range strings.Split(strings.TrimSpace(inner.String()), "\n") {
			if line == "" {
				b.WriteString(">\n")
			} else {
				b.WriteString("> ")
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")

	case atom.Img:
		b.WriteString(imageMarkdown(n))
		b.WriteString("\n\n")

	case atom.Hr:
		b.WriteString("---\n\n")

	case atom.Br:
		b.WriteString("\n")

	case atom.Figure, atom.Figcaption, atom.Div, atom.Section,
		atom.Article, atom.Main, atom.Span:
		// Unwrap container markup.
		renderBlocks(b, n)

	case atom.Script, atom.Style:
		// Dropped entirely.

	default:
		// Inline markup at block level, e.g. a paragraph-less link,
		// converts in place; anything else stays as raw HTML for the
		// stray-markup check to flag.
		b.WriteString(inlineNode(n))
		b.WriteString("\n\n")
	}
}

// renderInline flattens a node's children into one line of markdown,
// collapsing the whitespace HTML treats as insignificant.
func renderInline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inlineNode(c))
	}
	return b.String()
}

func inlineNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return inlineSpace.ReplaceAllString(n.Data, " ")

	case html.ElementNode:
		switch n.DataAtom {
		case atom.A:
			text := strings.TrimSpace(renderInline(n))
			if href := attr(n, "href"); href != "" {
				return fmt.Sprintf("[%s](%s)", text, href)
			}
			return text
		case atom.Em, atom.I:
			return "*" + strings.TrimSpace(renderInline(n)) + "*"
		case atom.Strong, atom.B:
			return "**" + strings.TrimSpace(renderInline(n)) + "**"
		case atom.Del, atom.S, atom.Strike:
			return "~~" + strings.TrimSpace(renderInline(n)) + "~~"
		case atom.Code:
			return "`" + rawText(n) + "`"
		case atom.Img:
			return imageMarkdown(n)
		case atom.Br:
			return "\n"
		case atom.Span, atom.U, atom.Sub, atom.Sup, atom.Small, atom.Abbr:
			// Cosmetic wrappers with no markdown equivalent unwrap to
			// their text.
			return renderInline(n)
		default:
			// Markup with no conversion stays in the body verbatim so
			// it surfaces as a per-post review warning.
			return rawHTML(n)
		}
	}
	return ""
}

// rawHTML re-serializes a parsed node, children included.
func rawHTML(n *html.Node) string {
	var b strings.Builder
	_ = html.Render(&b, n)
	return b.String()
}

func renderList(b *strings.Builder, n *html.Node, ordered bool, depth int) {
	indent := strings.Repeat("  ", depth)
	num := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		num++

		marker := "- "
		if ordered {
			marker = fmt.Sprintf("%d. ", num)
		}
		b.WriteString(indent)
		b.WriteString(marker)
		b.WriteString(strings.TrimSpace(listItemText(c)))
		b.WriteString("\n")

		// Nested lists follow their item line.
		for g := c.FirstChild; g != nil; g = g.NextSibling {
			if g.Type == html.ElementNode && (g.DataAtom == atom.Ul || g.DataAtom == atom.Ol) {
				renderList(b, g, g.DataAtom == atom.Ol, depth+1)
			}
		}
	}
}

// listItemText renders an <li>'s inline content, skipping any nested
// lists handled by the caller.
func listItemText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
			continue
		}
		b.WriteString(inlineNode(c))
	}
	return b.String()
}

// renderCodeFence converts a <pre> block into a fenced code block,
// detecting the language from class attributes on either the pre or an
// inner code element.
func renderCodeFence(n *html.Node) string {
	lang := fenceLanguage(n)
	code := n
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Code {
			code = c
			if lang == "" {
				lang = fenceLanguage(c)
			}
			break
		}
	}

	text := strings.Trim(rawText(code), "\n")
	return "```" + lang + "\n" + text + "\n```"
}

func fenceLanguage(n *html.Node) string {
	classes := attr(n, "class")
	if m := languageClass.FindStringSubmatch(classes); m != nil {
		return m[1]
	}
	for _, cls := range strings.Fields(classes) {
		if knownLanguages[cls] {
			return cls
		}
	}
	return ""
}

func imageMarkdown(n *html.Node) string {
	return fmt.Sprintf("![%s](%s)", attr(n, "alt"), attr(n, "src"))
}

// rawText concatenates a subtree's text nodes verbatim. The HTML parser
// has already decoded entities, so &lt;VirtualHost&gt; in source comes
// back as literal angle brackets here.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// PlainText strips all markup from an HTML fragment, for excerpt
// descriptions.
func PlainText(src string) string {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return strings.TrimSpace(src)
	}
	body := findBody(doc)
	if body == nil {
		return ""
	}
	text := inlineSpace.ReplaceAllString(rawText(body), " ")
	return strings.TrimSpace(text)
}
