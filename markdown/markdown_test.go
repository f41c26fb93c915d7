package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"unicode/utf8"
)

func render(t *testing.T, src string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, src); err != nil {
		t.Fatalf("RenderMarkdown failed: %v", err)
	}
	return buf.String()
}

func TestRenderMarkdownInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"`**not bold**`", "<code>**not bold**</code>"},
		{"~~gone~~", "<del>gone</del>"},
	}
	for _, tt := range tests {
		got := render(t, tt.input)
		if !strings.Contains(got, tt.expected) {
			t.Errorf("RenderMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownLinkWithUnderscoresInURL(t *testing.T) {
	got := render(t, "[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)")
	want := `<a href="https://en.wikipedia.org/wiki/Some_Article_Title">Wikipedia</a>`
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "<em>") {
		t.Errorf("underscores in URL should not be emphasised: %q", got)
	}
}

func TestRenderMarkdownCodeBlockWithLanguage(t *testing.T) {
	got := render(t, "```go\nfmt.Println(\"<hello>\")\n```")
	if !strings.Contains(got, `class="language-go"`) {
		t.Errorf("code block should have language-go class: %q", got)
	}
	if !strings.Contains(got, `<span class="code-lang code-lang-go">go</span>`) {
		t.Errorf("code block should have language badge: %q", got)
	}
	if !strings.Contains(got, `<div class="code-block-wrapper">`) || !strings.Contains(got, "</div>") {
		t.Errorf("code block should be wrapped in a closed div: %q", got)
	}
	if !strings.Contains(got, "&lt;hello&gt;") {
		t.Errorf("code should be escaped: %q", got)
	}
}

func TestRenderMarkdownCodeBlockWithoutLanguage(t *testing.T) {
	got := render(t, "```\nplain code\n```")
	if !strings.Contains(got, `<pre class="code-block"><code>plain code`) {
		t.Errorf("got %q, want plain code block", got)
	}
	if strings.Contains(got, "code-lang") || strings.Contains(got, "code-block-wrapper") {
		t.Errorf("code block without language should not have badge: %q", got)
	}
}

func TestRenderMarkdownHeadings(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Heading 1", `<h1 id="heading-1">Heading 1</h1>`},
		{"## Heading 2", `<h2 id="heading-2">Heading 2</h2>`},
		{"### Heading 3", `<h3 id="heading-3">Heading 3</h3>`},
	}
	for _, tt := range tests {
		got := strings.TrimSpace(render(t, tt.input))
		if got != tt.expected {
			t.Errorf("RenderMarkdown(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	got := render(t, "- item 1\n- item 2\n\n1. first\n2. second\n\nsome text")
	for _, want := range []string{"<ul>", "<li>item 1</li>", "<ol>", "<li>second</li>", "<p>some text</p>"} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("got %q, want %q", got, want)
		}
	}
}

func TestRenderMarkdownMDX(t *testing.T) {
	src := "import Chart from '../components/Chart'\nexport const meta = { draft: false }\n\n# Title\n\n<Chart title=\"Sales\" />\n\n```js\nimport x from 'y'\n```\n"
	got := render(t, src)
	if strings.Contains(got, "Chart from") || strings.Contains(got, "export const") {
		t.Errorf("module statements should be dropped: %q", got)
	}
	if !strings.Contains(got, "<Chart") {
		t.Errorf("component markup should pass through: %q", got)
	}
	if !strings.Contains(got, "import x from") {
		t.Errorf("imports inside code fences should be kept: %q", got)
	}
}

func TestStripMDX(t *testing.T) {
	src := "import A from 'a'\n  import indented\ntext\n~~~\nexport default 1\n~~~\nexport const b = 2\n"
	want := "  import indented\ntext\n~~~\nexport default 1\n~~~\n"
	if got := StripMDX(src); got != want {
		t.Errorf("StripMDX() = %q, want %q", got, want)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("Hello *world*").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "<p>Hello <em>world</em></p>" {
		t.Errorf("Render() = %q", got)
	}
}

func TestExcerpt(t *testing.T) {
	src := "# Heading\n\nSome **bold** text and a [link](https://example.com).\n"
	got := Excerpt(src, 0)
	if !strings.Contains(got, "Some bold text and a link.") {
		t.Errorf("Excerpt() = %q, want plain text", got)
	}
	if strings.Contains(got, "**") || strings.Contains(got, "](") || strings.Contains(got, "\n") {
		t.Errorf("Excerpt() = %q, markup should be stripped", got)
	}

	long := strings.Repeat("word ", 100)
	got = Excerpt(long, 30)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("Excerpt() = %q, want ellipsis", got)
	}
	if n := utf8.RuneCountInString(got); n > 31 {
		t.Errorf("Excerpt() has %d runes, want at most 31", n)
	}
	if strings.Contains(got, "wor…") {
		t.Errorf("Excerpt() = %q, should cut on a word boundary", got)
	}

	if got := Excerpt("短い文章", 10); got != "短い文章" {
		t.Errorf("Excerpt() = %q, want unchanged", got)
	}
}
