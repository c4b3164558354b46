package cli

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	llmc "github.com/llmd-format/llmc-go"
)

func init() {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show metadata and summary of a container file",
		Args:  cobra.ExactArgs(1),
		Run:   runInspect,
	}

	RootCmd.AddCommand(cmd)
}

func runInspect(cmd *cobra.Command, args []string) {
	path := args[0]

	logrus.WithField("path", path).Debug("parsing container")
	conv, err := llmc.ParseFile(path)
	if err != nil {
		exitErr("inspect", err)
	}

	if formatFlag == "text" {
		fmt.Printf("title:        %s\n", conv.Metadata.Title)
		fmt.Printf("version:      %s\n", conv.Metadata.Version)
		fmt.Printf("created:      %s\n", conv.Metadata.CreatedAt)
		fmt.Printf("participants: %v\n", conv.Metadata.Participants)
		fmt.Printf("messages:     %d\n", len(conv.Messages))
		fmt.Printf("attachments:  %d\n", len(conv.Attachments))
		return
	}

	summary := map[string]any{
		"metadata":    conv.Metadata,
		"messages":    len(conv.Messages),
		"attachments": len(conv.Attachments),
	}
	b, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(b))
}
