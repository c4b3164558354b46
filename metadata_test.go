package llmc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	m, err := parseMetadata([]byte("version: \"0.1\"\ncreated_at: \"2024-01-15T10:30:00Z\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(m.Participants, []string{"user", "assistant"}) {
		t.Errorf("participants %v, want default pair", m.Participants)
	}
}

func TestNormalizeLegacyKeys(t *testing.T) {
	raw := map[string]any{
		"llmd_version": "0.1",
		"created":      "2024-01-15T10:30:00Z",
		"participants": []any{"user", "assistant"},
	}
	m, err := normalizeMetadata(raw)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if m.Version != "0.1" {
		t.Errorf("version %q", m.Version)
	}
	if m.CreatedAt != "2024-01-15T10:30:00Z" {
		t.Errorf("created_at %q", m.CreatedAt)
	}
	if _, ok := raw["llmd_version"]; ok {
		t.Error("legacy key llmd_version not removed")
	}
	if _, ok := raw["created"]; ok {
		t.Error("legacy key created not removed")
	}
}

func TestNormalizeCanonicalKeyWins(t *testing.T) {
	m, err := normalizeMetadata(map[string]any{
		"version":      "0.2",
		"llmd_version": "0.1",
		"created_at":   "2024-02-01T00:00:00Z",
		"created":      "1999-01-01T00:00:00Z",
		"participants": []any{"user"},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if m.Version != "0.2" {
		t.Errorf("version %q, want canonical value", m.Version)
	}
	if m.CreatedAt != "2024-02-01T00:00:00Z" {
		t.Errorf("created_at %q, want canonical value", m.CreatedAt)
	}
}

func TestNormalizeStructuredParticipants(t *testing.T) {
	m, err := normalizeMetadata(map[string]any{
		"version":    "0.1",
		"created_at": "2024-01-15T10:30:00Z",
		"participants": []any{
			map[string]any{"role": "user", "name": "Alice"},
			map[string]any{"role": "assistant", "identifier": "gpt-4"},
		},
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if !reflect.DeepEqual(m.Participants, []string{"user", "assistant"}) {
		t.Errorf("participants %v, want projected roles", m.Participants)
	}
}

func TestNormalizeMissingRequired(t *testing.T) {
	_, err := normalizeMetadata(map[string]any{
		"created_at":   "2024-01-15T10:30:00Z",
		"participants": []any{"user"},
	})
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want FormatError", err)
	}
	if !strings.Contains(err.Error(), "version") {
		t.Errorf("error %q does not name missing field", err)
	}
}

func TestParseMetadataNotMapping(t *testing.T) {
	for _, text := range []string{"", "- a\n- b\n"} {
		_, err := parseMetadata([]byte(text))
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%q: got %v, want FormatError", text, err)
		}
	}
}

func TestRenderMetadataKeyOrder(t *testing.T) {
	b, err := renderMetadata(Metadata{
		Version:      "0.1",
		CreatedAt:    "2024-01-15T10:30:00Z",
		Participants: []string{"user", "assistant"},
		Title:        "Ordering",
		Tags:         []string{"a"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := string(b)
	order := []string{"version:", "created_at:", "participants:", "title:", "tags:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		if idx < 0 {
			t.Fatalf("key %q missing from output:\n%s", key, text)
		}
		if idx < last {
			t.Errorf("key %q out of declaration order:\n%s", key, text)
		}
		last = idx
	}
}
