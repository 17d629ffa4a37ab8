package rag

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// maxLineBytes caps a single conversation log line. Responses are
// bounded by the provider's max_tokens, so 1 MB is far beyond any
// legitimate turn.
const maxLineBytes = 1 << 20

// Turn is one completed query/response exchange. The JSON field names
// are the durable log format; changing them orphans existing logs.
type Turn struct {
	Timestamp      time.Time `json:"timestamp"`
	Query          string    `json:"query"`
	Response       string    `json:"response"`
	FactsRetrieved int       `json:"retrieved_facts_count"`
	ContextPreview string    `json:"context_preview"`
}

// Log is an append-only JSONL conversation log. Each Append opens,
// writes one line, and closes; the engine is the only writer, so no
// file locking is needed.
type Log struct {
	path string
}

// NewLog returns a log backed by the file at path. The file is created
// on first Append.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes turn as one JSON line at the end of the log.
func (l *Log) Append(turn Turn) error {
	line, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("rag: marshal turn: %w", err)
	}
	line = append(line, '\n')

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("rag: create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("rag: open conversation log: %w", err)
	}

	if _, err := f.Write(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("rag: append turn: %w", err)
	}
	return f.Close()
}

// LoadTail returns the last n well-formed turns. Malformed lines are
// skipped; a missing file is an empty history, not an error.
func (l *Log) LoadTail(n int) ([]Turn, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rag: open conversation log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var turns []Turn
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		var turn Turn
		if err := json.Unmarshal(sc.Bytes(), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("rag: read conversation log: %w", err)
	}

	if len(turns) > n {
		turns = turns[len(turns)-n:]
	}
	return turns, nil
}
