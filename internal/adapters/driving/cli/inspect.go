package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kavya-labs/kavya-cli/internal/chunker"
	"github.com/kavya-labs/kavya-cli/internal/core/ports/driving"
	"github.com/kavya-labs/kavya-cli/internal/core/services"
	"github.com/kavya-labs/kavya-cli/internal/readers"
)

var (
	inspectJSON      bool
	inspectSeparator string
	inspectChunkSize int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show document statistics without calling a provider",
	Long: `Reads a document, splits it into poems on the separator, and reports
per-poem statistics plus how many provider calls a run would make.

Useful for checking the separator and chunk size before spending API quota.
With no argument the configured input document is inspected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output statistics as JSON")
	inspectCmd.Flags().StringVar(&inspectSeparator, "separator", "", "poem separator")
	inspectCmd.Flags().IntVar(&inspectChunkSize, "chunk-size", 0, "chunk size bound in characters")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	settings := resolveSettings(cmd)
	if len(args) == 1 {
		settings.InputPath = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("separator") {
		settings.Separator = inspectSeparator
	}
	if flags.Changed("chunk-size") {
		settings.ChunkSize = inspectChunkSize
	}
	if settings.InputPath == "" {
		return errors.New("no input document: pass a file or configure input_docx_path")
	}

	source, err := readers.ForPath(settings.InputPath)
	if err != nil {
		return err
	}

	grouper := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithSeparator(settings.Separator),
	)

	inspector := services.NewInspectService(settings, source, grouper)
	info, err := inspector.Inspect(cmd.Context())
	if err != nil {
		return err
	}

	if inspectJSON {
		return outputInspectJSON(cmd, info)
	}
	return outputInspectTable(cmd, info)
}

func outputInspectJSON(cmd *cobra.Command, info *driving.DocumentInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal statistics: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputInspectTable(cmd *cobra.Command, info *driving.DocumentInfo) error {
	cmd.Printf("Document: %s\n", info.Path)
	if info.Title != "" {
		cmd.Printf("Title: %s\n", info.Title)
	}
	if info.ParagraphCount > 0 {
		cmd.Printf("Paragraphs: %d\n", info.ParagraphCount)
	}
	cmd.Printf("Poems: %d\n", info.BlockCount)
	cmd.Printf("Chunks: %d\n", info.ChunkCount)
	cmd.Println()

	if len(info.Blocks) == 0 {
		cmd.Println("No poems found. Check the separator.")
		return nil
	}

	cmd.Println("  Poem   Words   Lines   Chars")
	for _, b := range info.Blocks {
		cmd.Printf("  %4d   %5d   %5d   %5d\n", b.Index, b.Words, b.Lines, b.Runes)
	}
	return nil
}
