package llmc

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// defaultParticipants is used when a producer omitted the participants field.
var defaultParticipants = []string{"user", "assistant"}

// parseMetadata decodes the YAML metadata block and normalizes it across the
// known producer dialects into the canonical Metadata.
func parseMetadata(text []byte) (Metadata, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(text, &raw); err != nil {
		return Metadata{}, wrapFormat(err, "invalid YAML metadata")
	}
	if raw == nil {
		return Metadata{}, formatErrf("YAML metadata must be a mapping")
	}
	return normalizeMetadata(raw)
}

// normalizeMetadata maps a raw parsed mapping to the canonical Metadata,
// applying dialect-compatibility renames and defaults. The canonical key wins
// when both a legacy key and its canonical form are present.
func normalizeMetadata(raw map[string]any) (Metadata, error) {
	// Legacy field names used by older producers.
	if v, ok := raw["llmd_version"]; ok {
		if _, exists := raw["version"]; !exists {
			raw["version"] = v
		}
		delete(raw, "llmd_version")
	}
	if v, ok := raw["created"]; ok {
		if _, exists := raw["created_at"]; !exists {
			raw["created_at"] = v
		}
		delete(raw, "created")
	}

	var m Metadata
	m.Version = asString(raw["version"])
	m.CreatedAt = asString(raw["created_at"])
	m.Title = asString(raw["title"])
	m.Description = asString(raw["description"])
	m.Language = asString(raw["language"])
	m.Tags = asStringSlice(raw["tags"])
	if mi, ok := raw["model_info"].(map[string]any); ok {
		m.ModelInfo = mi
	}

	m.Participants = normalizeParticipants(raw["participants"])

	if m.Version == "" {
		return m, formatErrf("missing required metadata field: version")
	}
	if m.CreatedAt == "" {
		return m, formatErrf("missing required metadata field: created_at")
	}
	if len(m.Participants) == 0 {
		return m, formatErrf("missing required metadata field: participants")
	}
	return m, nil
}

// normalizeParticipants reconciles the participants field across dialects.
// Absence defaults to ["user", "assistant"]. A sequence of structured records
// (one per participant, each carrying role/name/identifier) is projected to
// the sequence of role strings; anything else is taken as given.
func normalizeParticipants(v any) []string {
	if v == nil {
		return defaultParticipants
	}
	seq, ok := v.([]any)
	if !ok || len(seq) == 0 {
		return asStringSlice(v)
	}
	if _, structured := seq[0].(map[string]any); structured {
		var roles []string
		for _, p := range seq {
			rec, ok := p.(map[string]any)
			if !ok {
				continue
			}
			if role, ok := rec["role"]; ok {
				roles = append(roles, asString(role))
			}
		}
		if len(roles) > 0 {
			return roles
		}
	}
	return asStringSlice(v)
}

// renderMetadata serializes the canonical metadata as the container's YAML
// block. Struct field order keeps the emitted key order stable across round
// trips.
func renderMetadata(m Metadata) ([]byte, error) {
	b, err := yaml.Marshal(m)
	if err != nil {
		return nil, wrapFormat(err, "failed to render metadata")
	}
	return b, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func asStringSlice(v any) []string {
	seq, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		out = append(out, asString(e))
	}
	return out
}
