package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/arunavtnt-prog/jarvis/internal/memory"
)

// minContentLength is the minimum trimmed text length for a message to
// become a fact. Shorter messages ("ok", "lol") carry no memory value
// and are dropped, not errored.
const minContentLength = 5

// FilterByAuthor returns the messages whose sender matches name by
// case-insensitive substring, preserving input order.
func FilterByAuthor(msgs []Message, name string) []Message {
	needle := strings.ToLower(name)

	var out []Message
	for _, m := range msgs {
		if strings.Contains(strings.ToLower(m.Sender), needle) {
			out = append(out, m)
		}
	}
	return out
}

// Extract converts messages into facts. Messages with empty text or
// trimmed text shorter than minContentLength are skipped. The source
// reference is "msg_" + the message id, which falls back to the
// positional index during parsing, so identical input always yields
// identical references.
func Extract(msgs []Message) []memory.Fact {
	facts := make([]memory.Fact, 0, len(msgs))

	for _, m := range msgs {
		content := strings.TrimSpace(m.Text)
		if utf8.RuneCountInString(content) < minContentLength {
			continue
		}

		facts = append(facts, memory.Fact{
			Type:      string(Classify(m.Text)),
			Content:   content,
			SourceRef: "msg_" + m.ID,
			Timestamp: m.Timestamp,
			RawText:   m.Text,
		})
	}

	return facts
}
