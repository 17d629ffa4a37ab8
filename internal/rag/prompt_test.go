package rag

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/arunavtnt-prog/jarvis/internal/vector"
)

func TestBuildContext(t *testing.T) {
	results := []vector.Result{
		{Type: "preference", Content: "loves hiking in the mountains"},
		{Type: "humor", Content: "haha that was hilarious"},
	}

	got := buildContext(results)
	want := "[preference] loves hiking in the mountains\n[humor] haha that was hilarious"
	if got != want {
		t.Errorf("buildContext() = %q, want %q", got, want)
	}
}

func TestBuildContext_Empty(t *testing.T) {
	if got := buildContext(nil); got != noMemoriesPlaceholder {
		t.Errorf("buildContext(nil) = %q, want placeholder", got)
	}
}

func TestSystemPrompt_NamesUser(t *testing.T) {
	got := systemPrompt("Arunav")

	if !strings.Contains(got, "You are Jarvis") {
		t.Error("system prompt missing persona name")
	}
	if !strings.Contains(got, "Arunav's life") {
		t.Error("system prompt missing user name")
	}
	if strings.Contains(got, "%") {
		t.Errorf("unexpanded format verb in system prompt: %q", got)
	}
}

func TestUserMessage_Template(t *testing.T) {
	got := userMessage("Arunav", "[preference] loves hiking", "What do I enjoy?")

	if !strings.Contains(got, "Relevant memories from Arunav's WhatsApp history:") {
		t.Error("missing memories header")
	}
	if !strings.Contains(got, "[preference] loves hiking") {
		t.Error("missing context block")
	}
	if !strings.Contains(got, "Query: What do I enjoy?") {
		t.Error("missing query line")
	}
	if !strings.Contains(got, "provide a helpful and personalized response") {
		t.Error("missing closing instruction")
	}
}

func TestPreview_ShortPassesThrough(t *testing.T) {
	s := "short context"
	if got := preview(s); got != s {
		t.Errorf("preview(%q) = %q", s, got)
	}
}

func TestPreview_CapsAt500Bytes(t *testing.T) {
	s := strings.Repeat("x", 600)
	got := preview(s)
	if len(got) != previewLimit {
		t.Errorf("preview length = %d, want %d", len(got), previewLimit)
	}
}

func TestPreview_RuneSafe(t *testing.T) {
	// Multi-byte runes positioned so a naive byte cut would split one.
	s := strings.Repeat("é", 300) // 600 bytes, 2 bytes per rune
	got := preview(s)

	if len(got) > previewLimit {
		t.Errorf("preview length = %d, want <= %d", len(got), previewLimit)
	}
	if !utf8.ValidString(got) {
		t.Error("preview split a rune")
	}
}
