package llmc

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateOK(t *testing.T) {
	if err := validateConversation(testConversation()); err != nil {
		t.Fatalf("valid conversation rejected: %v", err)
	}
}

func TestValidateFirstFailureNamed(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Conversation)
		want   string
	}{
		{"missing version", func(c *Conversation) { c.Metadata.Version = "" }, "version"},
		{"missing created_at", func(c *Conversation) { c.Metadata.CreatedAt = "" }, "created_at"},
		{"missing participants", func(c *Conversation) { c.Metadata.Participants = nil }, "participants"},
		{"missing id", func(c *Conversation) { c.Messages[0].ID = "" }, "message 0 missing required field: id"},
		{"missing role", func(c *Conversation) { c.Messages[1].Role = "" }, "message 1 missing required field: role"},
		{"missing content", func(c *Conversation) { c.Messages[1].Content = "" }, "message 1 missing required field: content"},
		{"missing timestamp", func(c *Conversation) { c.Messages[0].Timestamp = "" }, "message 0 missing required field: timestamp"},
		{"duplicate id", func(c *Conversation) { c.Messages[1].ID = "msg_1" }, "duplicate id"},
		{"dangling parent", func(c *Conversation) { c.Messages[1].ParentID = "msg_404" }, "unknown parent"},
	}

	for _, tc := range cases {
		conv := testConversation()
		tc.mutate(conv)

		err := validateConversation(conv)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: got %v, want ValidationError", tc.name, err)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: error %q does not contain %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateToleratesCycles(t *testing.T) {
	conv := testConversation()
	conv.Messages[0].ParentID = "msg_2" // msg_1 <-> msg_2

	if err := validateConversation(conv); err != nil {
		t.Errorf("cycle rejected: %v", err)
	}
}

func TestValidateEmptyMessagesAllowed(t *testing.T) {
	conv := testConversation()
	conv.Messages = nil

	if err := validateConversation(conv); err != nil {
		t.Errorf("empty conversation rejected: %v", err)
	}
}
