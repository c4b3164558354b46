package llmc

// validateConversation enforces the structural invariants required before a
// conversation may be serialized. It stops at the first violation.
//
// Parent references must name an existing message; reference cycles are
// deliberately tolerated (ancestry is advisory, not traversed here).
func validateConversation(conv *Conversation) error {
	if conv == nil {
		return validationErrf("conversation is nil")
	}

	if conv.Metadata.Version == "" {
		return validationErrf("missing required metadata field: version")
	}
	if conv.Metadata.CreatedAt == "" {
		return validationErrf("missing required metadata field: created_at")
	}
	if len(conv.Metadata.Participants) == 0 {
		return validationErrf("missing required metadata field: participants")
	}

	ids := make(map[string]bool, len(conv.Messages))
	for i, m := range conv.Messages {
		if m.ID == "" {
			return validationErrf("message %d missing required field: id", i)
		}
		if m.Role == "" {
			return validationErrf("message %d missing required field: role", i)
		}
		if m.Content == "" {
			return validationErrf("message %d missing required field: content", i)
		}
		if m.Timestamp == "" {
			return validationErrf("message %d missing required field: timestamp", i)
		}
		if ids[m.ID] {
			return validationErrf("message %d has duplicate id %q", i, m.ID)
		}
		ids[m.ID] = true
	}

	for i, m := range conv.Messages {
		if m.ParentID != "" && !ids[m.ParentID] {
			return validationErrf("message %d references unknown parent %q", i, m.ParentID)
		}
	}

	return nil
}
