package render

import (
	"strings"
	"testing"
)

func TestRenderMarkdownBasics(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome *text*.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<h1>Title</h1>") {
		t.Fatalf("expected heading, got %q", out)
	}
	if !strings.Contains(out, "<em>text</em>") {
		t.Fatalf("expected emphasis, got %q", out)
	}
}

func TestRenderMarkdownTables(t *testing.T) {
	out, err := RenderMarkdown("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<table>") || !strings.Contains(out, "<td>1</td>") {
		t.Fatalf("expected table markup, got %q", out)
	}
}

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out, err := RenderMarkdown("hello\n\n<script>alert(1)</script>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out, "script") || strings.Contains(out, "alert(1)") {
		t.Fatalf("expected scripts stripped, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected text kept, got %q", out)
	}
}
