package extract_test

import (
	"errors"
	"testing"

	"github.com/arunavtnt-prog/jarvis/internal/extract"
)

func TestParseExportShapes(t *testing.T) {
	t.Parallel()

	t.Run("bare list", func(t *testing.T) {
		t.Parallel()

		msgs, err := extract.ParseExport([]byte(`[{"from":"Arunav","text":"hello there"}]`))
		if err != nil {
			t.Fatalf("ParseExport: %v", err)
		}
		if len(msgs) != 1 {
			t.Fatalf("got %d messages, want 1", len(msgs))
		}
		if msgs[0].Sender != "Arunav" || msgs[0].Text != "hello there" {
			t.Errorf("msgs[0] = %+v", msgs[0])
		}
	})

	t.Run("messages key", func(t *testing.T) {
		t.Parallel()

		msgs, err := extract.ParseExport([]byte(`{"messages":[{"sender":"A","text":"x"},{"sender":"B","text":"y"}]}`))
		if err != nil {
			t.Fatalf("ParseExport: %v", err)
		}
		if len(msgs) != 2 {
			t.Fatalf("got %d messages, want 2", len(msgs))
		}
	})

	invalid := []struct {
		name string
		data string
	}{
		{"scalar", `42`},
		{"string", `"messages"`},
		{"object without messages", `{"chats":[]}`},
		{"messages not a list", `{"messages":{"a":1}}`},
		{"not json", `{]`},
	}
	for _, tt := range invalid {
		t.Run("invalid "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := extract.ParseExport([]byte(tt.data))
			if !errors.Is(err, extract.ErrInvalidExport) {
				t.Fatalf("ParseExport(%s) error = %v, want ErrInvalidExport", tt.data, err)
			}
		})
	}
}

func TestParseExportAliases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want extract.Message
	}{
		{
			name: "from text timestamp id",
			data: `[{"id":"abc","from":"Arunav","text":"hi friend","timestamp":"2021-01-01"}]`,
			want: extract.Message{ID: "abc", Sender: "Arunav", Text: "hi friend", Timestamp: "2021-01-01"},
		},
		{
			name: "sender message datetime",
			data: `[{"sender":"Arunav","message":"hi friend","datetime":"yesterday"}]`,
			want: extract.Message{ID: "0", Sender: "Arunav", Text: "hi friend", Timestamp: "yesterday"},
		},
		{
			name: "author body date",
			data: `[{"author":"Arunav","body":"hi friend","date":"2021"}]`,
			want: extract.Message{ID: "0", Sender: "Arunav", Text: "hi friend", Timestamp: "2021"},
		},
		{
			name: "time alias",
			data: `[{"author":"A","body":"x","time":"10:15"}]`,
			want: extract.Message{ID: "0", Sender: "A", Text: "x", Timestamp: "10:15"},
		},
		{
			name: "empty alias falls through",
			data: `[{"from":"","sender":"Arunav","text":"hello"}]`,
			want: extract.Message{ID: "0", Sender: "Arunav", Text: "hello"},
		},
		{
			name: "numeric id and timestamp stringified",
			data: `[{"id":17,"from":"A","text":"x","timestamp":1614592800}]`,
			want: extract.Message{ID: "17", Sender: "A", Text: "x", Timestamp: "1614592800"},
		},
		{
			name: "missing fields tolerated",
			data: `[{"text":"orphan line"}]`,
			want: extract.Message{ID: "0", Text: "orphan line"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			msgs, err := extract.ParseExport([]byte(tt.data))
			if err != nil {
				t.Fatalf("ParseExport: %v", err)
			}
			if len(msgs) != 1 {
				t.Fatalf("got %d messages, want 1", len(msgs))
			}
			if msgs[0] != tt.want {
				t.Errorf("message = %+v, want %+v", msgs[0], tt.want)
			}
		})
	}
}

func TestParseExportSkipsMalformedEntries(t *testing.T) {
	t.Parallel()

	data := `[{"from":"A","text":"first"}, "just a string", 42, {"from":"B","text":"second"}]`

	msgs, err := extract.ParseExport([]byte(data))
	if err != nil {
		t.Fatalf("ParseExport: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2 (non-objects skipped)", len(msgs))
	}
	// Positional ids count input entries, keeping references stable
	// across reruns on the same file.
	if msgs[1].ID != "3" {
		t.Errorf("second message ID = %q, want positional index 3", msgs[1].ID)
	}
}
