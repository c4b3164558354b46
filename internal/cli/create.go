package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	llmc "github.com/llmd-format/llmc-go"
)

func init() {
	cmd := &cobra.Command{
		Use:   "create <output-file>",
		Short: "Create a sample conversation file",
		Long:  "Create a demo conversation container. The variant is chosen by extension (.llmc or .llmd).",
		Args:  cobra.ExactArgs(1),
		Run:   runCreate,
	}

	cmd.Flags().String("title", "Demo Conversation", "Conversation title")

	RootCmd.AddCommand(cmd)
}

func runCreate(cmd *cobra.Command, args []string) {
	title, _ := cmd.Flags().GetString("title")
	out := args[0]

	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	newID := func(prefix string) string {
		return prefix + ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	userMsg := newID("msg_")
	conv := &llmc.Conversation{
		Metadata: llmc.Metadata{
			Version:      "0.1",
			CreatedAt:    now,
			Participants: []string{"user", "assistant"},
			Title:        title,
			Description:  "A sample conversation created with the llmc CLI",
			Tags:         []string{"demo", "go", "sdk"},
			Language:     "en",
			ModelInfo: map[string]any{
				"name":     "gpt-4",
				"provider": "openai",
			},
		},
		Messages: []llmc.Message{
			{
				ID:        userMsg,
				Role:      llmc.RoleUser,
				Content:   "Hello! Can you explain this container format?",
				Timestamp: now,
			},
			{
				ID:        newID("msg_"),
				Role:      llmc.RoleAssistant,
				Content:   "It stores a conversation as a YAML metadata block plus a SQLite message store behind a small binary header, all in one file.",
				Timestamp: now,
				ParentID:  userMsg,
			},
		},
	}

	logrus.WithField("path", out).Debug("writing sample conversation")
	if err := llmc.WriteFile(conv, out); err != nil {
		exitErr("create", err)
	}
	fmt.Printf("created %s (%d messages)\n", out, len(conv.Messages))
}
