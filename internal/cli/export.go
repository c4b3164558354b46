package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	llmc "github.com/llmd-format/llmc-go"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export messages as JSON",
		Long:  "Export the conversation's messages as indented JSON. Filter by role with -r.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().StringP("role", "r", "", "Filter by role (user, assistant, system, function)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	role, _ := cmd.Flags().GetString("role")

	conv, err := llmc.ParseFile(args[0])
	if err != nil {
		exitErr("export", err)
	}

	messages := conv.Messages
	if role != "" {
		filtered := messages[:0:0]
		for _, m := range messages {
			if string(m.Role) == role {
				filtered = append(filtered, m)
			}
		}
		messages = filtered
	}

	if formatFlag == "text" {
		for _, m := range messages {
			fmt.Printf("[%s] %s: %s\n", m.Timestamp, m.Role, m.Content)
		}
		return
	}

	b, _ := json.MarshalIndent(messages, "", "  ")
	fmt.Println(string(b))
}
