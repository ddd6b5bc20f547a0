package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
)

var buildCmd = &cobra.Command{
	Use:   "build [files...]",
	Short: "Build the knowledge base from policy documents",
	Long: `Ingests the given policy documents and builds the knowledge base:
each document is loaded, chunked, embedded and indexed, then the whole
bundle is persisted atomically. A later build replaces the previous
knowledge base only once it has fully succeeded.

Supported formats are plain text, PDF and DOCX, detected from the file
extension.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	if buildService == nil {
		return errors.New("build service not configured")
	}

	inputs := make([]driving.BuildInput, 0, len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, driving.BuildInput{
			Origin:  path,
			Format:  domain.FormatFromPath(path),
			Content: content,
		})
	}

	report, err := buildService.Build(context.Background(), inputs)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("Indexed %d document(s), %d chunk(s)\n", report.Documents, report.Chunks)
	cmd.Printf("Model: %s (%d dimensions)\n", report.Manifest.Model, report.Manifest.Dimensions)
	for _, failed := range report.Failed {
		cmd.Printf("Skipped %s: %v\n", failed.Origin, failed.Err)
	}

	return nil
}
