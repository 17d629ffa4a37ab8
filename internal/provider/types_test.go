package provider

import (
	"encoding/json"
	"testing"
)

func TestMessageJSONRoundTrip(t *testing.T) {
	t.Parallel()

	msg := Message{Role: RoleUser, Content: "hello"}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Message
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got != msg {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, msg)
	}
}

func TestRequestOmitempty(t *testing.T) {
	t.Parallel()

	req := Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}

	if _, ok := raw["system"]; ok {
		t.Error("expected system to be omitted when empty")
	}
	if _, ok := raw["max_tokens"]; ok {
		t.Error("expected max_tokens to be omitted when zero")
	}
	if _, ok := raw["temperature"]; ok {
		t.Error("expected temperature to be omitted when nil")
	}
}
