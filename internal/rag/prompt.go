package rag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arunavtnt-prog/jarvis/internal/vector"
)

// noMemoriesPlaceholder fills the context block when retrieval finds
// nothing, so the model is told explicitly rather than left guessing.
const noMemoriesPlaceholder = "No relevant memories found."

// previewLimit caps the context preview stored with each logged turn.
const previewLimit = 500

// buildContext renders retrieved facts as the prompt context block,
// one "[type] content" line per fact.
func buildContext(results []vector.Result) string {
	if len(results) == 0 {
		return noMemoriesPlaceholder
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("[%s] %s", r.Type, r.Content)
	}
	return strings.Join(parts, "\n")
}

// systemPrompt defines the assistant persona around name.
func systemPrompt(name string) string {
	return fmt.Sprintf(`You are Jarvis, an AI assistant with complete knowledge of %[1]s's life, personality, and preferences based on their WhatsApp chat history.

Your role:
- You know %[1]s deeply and personally
- Respond in a tone that mirrors %[1]s's communication style
- Reference specific memories and context when relevant
- Be helpful, insightful, and conversational
- Maintain %[1]s's personality traits in your responses
- When uncertain, acknowledge it rather than making up information

Key traits to embody:
- Use the same humor and language style as %[1]s
- Reference past conversations and context naturally
- Be direct and authentic, as a close assistant would be
- Prioritize accuracy over politeness if there's tension

Remember: You are %[1]s's personal AI assistant with deep knowledge of their life.`, name)
}

// userMessage embeds the context block and the raw query into the
// final user message of the prompt.
func userMessage(name, contextBlock, query string) string {
	return fmt.Sprintf(`Relevant memories from %s's WhatsApp history:

%s

---

Query: %s

Based on the memories above and your knowledge of %s, provide a helpful and personalized response.`,
		name, contextBlock, query, name)
}

// preview truncates s to previewLimit bytes without splitting a rune.
func preview(s string) string {
	if len(s) <= previewLimit {
		return s
	}
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
