// Package markdown renders post bodies to HTML as templ components.
//
// Bodies are MDX: Markdown that may open with import and export statements
// and embed raw component markup. The statements are dropped before
// rendering and raw markup is passed through untouched.
package markdown

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	stripmd "github.com/writeas/go-strip-markdown"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(
		html.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(codeBlockRenderer{}, 100)),
	),
)

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return RenderMarkdown(w, content)
	})
}

// RenderMarkdown writes the HTML representation of src to w.
func RenderMarkdown(w io.Writer, src string) error {
	return md.Convert([]byte(StripMDX(src)), w)
}

// StripMDX removes top-level import and export statements. Lines inside
// fenced code blocks are kept.
func StripMDX(src string) string {
	var out strings.Builder
	out.Grow(len(src))
	fence := ""
	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		switch {
		case fence != "":
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
		case strings.HasPrefix(trimmed, "```"):
			fence = "```"
		case strings.HasPrefix(trimmed, "~~~"):
			fence = "~~~"
		case isModuleStatement(line):
			continue
		}
		out.WriteString(line)
		out.WriteByte('\n')
	}
	return out.String()
}

func isModuleStatement(line string) bool {
	return strings.HasPrefix(line, "import ") || strings.HasPrefix(line, "export ")
}

// Excerpt returns up to max runes of plain text from src, cut at a word
// boundary where possible.
func Excerpt(src string, max int) string {
	text := strings.Join(strings.Fields(stripmd.Strip(StripMDX(src))), " ")
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " .,;:") + "…"
}

// codeBlockRenderer wraps fenced code in a block with a language badge.
type codeBlockRenderer struct{}

func (r codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
}

func (r codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.FencedCodeBlock)
	lang := util.EscapeHTML(n.Language(source))
	if !entering {
		_, _ = w.WriteString("</code></pre>")
		if len(lang) > 0 {
			_, _ = w.WriteString("</div>")
		}
		_ = w.WriteByte('\n')
		return ast.WalkContinue, nil
	}

	if len(lang) > 0 {
		_, _ = w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-`)
		_, _ = w.Write(lang)
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(lang)
		_, _ = w.WriteString(`</span><pre class="code-block"><code class="language-`)
		_, _ = w.Write(lang)
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString(`<pre class="code-block"><code>`)
	}
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(source))
	}
	_, _ = w.Write(util.EscapeHTML(buf.Bytes()))
	return ast.WalkContinue, nil
}
