package parser

import (
	"strings"
	"testing"
)

func TestMarkdownRenderer_HeadingsAndLinks(t *testing.T) {
	input := `# Title

Intro text.

## My Section

Details are [here](#my-section) and [read more](/docs/getting-started.html).
`
	r := &MarkdownRenderer{}
	out, err := r.Render(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wants := []string{
		`<h1 id="title">Title</h1>`,
		`<h2 id="my-section">My Section</h2>`,
		`<a href="#my-section">here</a>`,
		`<a href="/docs/getting-started.html">read more</a>`,
	}
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("expected output to contain %q, got %q", w, out)
		}
	}
}

func TestMarkdownRenderer_RawHTMLKept(t *testing.T) {
	r := &MarkdownRenderer{}
	out, err := r.Render(`<div class="note"><a href="/x">more</a></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `<a href="/x">more</a>`) {
		t.Errorf("expected raw html to pass through, got %q", out)
	}
}

func TestMarkdownRenderer_EmptyInput(t *testing.T) {
	r := &MarkdownRenderer{}
	out, err := r.Render("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatHTML, false},
		{"HTML", FormatHTML, false},
		{"md", FormatMarkdown, false},
		{" markdown ", FormatMarkdown, false},
		{"plain", FormatText, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q): unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"post.md", FormatMarkdown},
		{"notes.MARKDOWN", FormatMarkdown},
		{"comment.txt", FormatText},
		{"page.html", FormatHTML},
		{"widget", FormatHTML},
	}
	for _, tt := range tests {
		if got := FormatForFile(tt.filename); got != tt.want {
			t.Errorf("filename=%q: expected %q, got %q", tt.filename, tt.want, got)
		}
	}
}

func TestForFormat(t *testing.T) {
	for _, f := range []Format{FormatHTML, FormatMarkdown, FormatText} {
		if _, err := ForFormat(f); err != nil {
			t.Errorf("expected renderer for %q, got error %v", f, err)
		}
	}
	if _, err := ForFormat("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}
