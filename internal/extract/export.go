// Package extract parses chat export files and turns messages from a
// target author into typed, classified facts.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExport indicates the export file's top-level shape is not
// supported. Individual malformed messages never produce this error;
// they are skipped.
var ErrInvalidExport = errors.New("invalid export shape")

// Message is a normalized chat message. Any field except Text may be
// empty; Timestamp is carried opaquely and is not guaranteed parseable.
type Message struct {
	ID        string
	Sender    string
	Text      string
	Timestamp string
}

// Field alias sets, resolved first-non-empty-wins in this order.
var (
	senderAliases    = []string{"from", "sender", "author"}
	textAliases      = []string{"text", "message", "body"}
	timestampAliases = []string{"timestamp", "datetime", "date", "time"}
)

// ParseExport decodes a chat export. Accepted shapes are a top-level JSON
// array of message objects, or an object whose "messages" key holds that
// array. Anything else fails with ErrInvalidExport. Entries that are not
// objects are skipped.
func ParseExport(data []byte) ([]Message, error) {
	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrInvalidExport, err)
	}

	var entries []any
	switch v := top.(type) {
	case []any:
		entries = v
	case map[string]any:
		inner, ok := v["messages"]
		if !ok {
			return nil, fmt.Errorf("%w: object has no \"messages\" key", ErrInvalidExport)
		}
		list, ok := inner.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: \"messages\" is not a list", ErrInvalidExport)
		}
		entries = list
	default:
		return nil, fmt.Errorf("%w: expected a list of messages or an object with a \"messages\" key", ErrInvalidExport)
	}

	msgs := make([]Message, 0, len(entries))
	for i, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}

		id := fieldString(obj, "id")
		if id == "" {
			id = strconv.Itoa(i)
		}

		msgs = append(msgs, Message{
			ID:        id,
			Sender:    firstField(obj, senderAliases),
			Text:      firstField(obj, textAliases),
			Timestamp: firstField(obj, timestampAliases),
		})
	}

	return msgs, nil
}

// firstField returns the first non-empty aliased field, stringified.
func firstField(obj map[string]any, aliases []string) string {
	for _, key := range aliases {
		if s := fieldString(obj, key); s != "" {
			return s
		}
	}
	return ""
}

// fieldString stringifies a scalar JSON value. Non-scalar values
// (nested objects, arrays) are treated as absent.
func fieldString(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
