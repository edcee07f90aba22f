package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/folio/internal/app/system/htmlsanitize"
)

func TestSanitize_Preserves(t *testing.T) {
	tests := []string{
		"",
		"Hello, World!",
		"<p><strong>Bold</strong> and <em>italic</em></p>",
		"<ul><li>Item 1</li><li>Item 2</li></ul>",
		"<ol><li>First</li><li>Second</li></ol>",
		"<blockquote>A quote</blockquote>",
		"<h1>Heading 1</h1><h2>Heading 2</h2>",
		"<pre><code>func main() {}</code></pre>",
		"<table><thead><tr><th>Header</th></tr></thead><tbody><tr><td>Cell</td></tr></tbody></table>",
	}
	for _, in := range tests {
		if got := htmlsanitize.Sanitize(in); got != in {
			t.Errorf("Sanitize(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestSanitize_Removes(t *testing.T) {
	tests := []struct {
		in, banned string
	}{
		{"<p>Hello</p><script>alert('xss')</script>", "script"},
		{`<button onclick="alert('xss')">Click</button>`, "onclick"},
		{`<a href="javascript:alert('xss')">Click</a>`, "javascript:"},
		{`<p>Content</p><iframe src="https://evil.example"></iframe>`, "iframe"},
		{`<style>body { color: red; }</style><p>Text</p>`, "<style>"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.Sanitize(tt.in); strings.Contains(got, tt.banned) {
			t.Errorf("Sanitize(%q) = %q, still contains %q", tt.in, got, tt.banned)
		}
	}
}

func TestSanitize_KeepsSafeLinks(t *testing.T) {
	got := htmlsanitize.Sanitize(`<a href="https://example.com">Link</a>`)
	if !strings.Contains(got, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", got)
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Hello there", "Hello there"},
		{"  padded  ", "padded"},
		{"<b>Hi</b> <i>you</i>", "Hi you"},
		{"Tom & Jerry", "Tom & Jerry"},
		{"<script>alert(1)</script>Hello", "Hello"},
		{"5 < 10", "5 < 10"},
	}
	for _, tt := range tests {
		if got := htmlsanitize.StripTags(tt.in); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Hello, World!", true},
		{"5 < 10", true},
		{"5 > 3", true},
		{"<p>Hello</p>", false},
	}
	for _, tt := range tests {
		if got := htmlsanitize.IsPlainText(tt.in); got != tt.want {
			t.Errorf("IsPlainText(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
