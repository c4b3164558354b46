package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	llmc "github.com/llmd-format/llmc-go"
)

func init() {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract attachment payloads to files",
		Args:  cobra.ExactArgs(1),
		Run:   runExtract,
	}

	cmd.Flags().StringP("out", "o", ".", "Output directory")

	RootCmd.AddCommand(cmd)
}

func runExtract(cmd *cobra.Command, args []string) {
	outDir, _ := cmd.Flags().GetString("out")

	conv, err := llmc.ParseFile(args[0])
	if err != nil {
		exitErr("extract", err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		exitErr("create output dir", err)
	}

	for _, a := range conv.Attachments {
		name := a.Filename
		if name == "" {
			name = a.ID
		}
		dest := filepath.Join(outDir, filepath.Base(name))
		logrus.WithFields(logrus.Fields{"id": a.ID, "dest": dest, "size": a.Size}).Debug("extracting attachment")
		if err := os.WriteFile(dest, a.Data, 0o644); err != nil {
			exitErr("write attachment", err)
		}
		fmt.Printf("%s -> %s (%d bytes)\n", a.ID, dest, len(a.Data))
	}

	if len(conv.Attachments) == 0 {
		fmt.Println("no attachments")
	}
}
