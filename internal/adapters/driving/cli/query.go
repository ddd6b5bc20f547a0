package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

var (
	queryFile string
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Adjudicate a claim query",
	Long: `Adjudicates a claim query against the knowledge base and prints a
structured decision with supporting policy clauses.

By default the prebuilt knowledge base is used; run "claimlens build"
first. With --file, the query is answered against that single document
instead: an ephemeral index is built for it and discarded afterwards,
leaving the knowledge base untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVarP(&queryFile, "file", "f", "", "adjudicate against this document instead of the knowledge base")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output the answer as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	query := args[0]

	if claimService == nil {
		return errors.New("claim service not configured")
	}

	ctx := context.Background()

	var (
		answer *domain.StructuredAnswer
		err    error
	)
	if queryFile != "" {
		var content []byte
		content, err = os.ReadFile(queryFile)
		if err != nil {
			return fmt.Errorf("reading %s: %w", queryFile, err)
		}
		answer, err = claimService.ProcessUpload(ctx, query, content, domain.FormatFromPath(queryFile))
	} else {
		answer, err = claimService.ProcessQuery(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputAnswerJSON(cmd, answer)
	}

	return outputAnswerText(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.StructuredAnswer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerText(cmd *cobra.Command, answer *domain.StructuredAnswer) error {
	cmd.Printf("Decision: %s\n", answer.Decision)
	if answer.Amount != nil {
		cmd.Printf("Amount: %.2f\n", *answer.Amount)
	}
	cmd.Println()
	cmd.Println(answer.Justification)

	if len(answer.References) > 0 {
		cmd.Println()
		cmd.Println("References:")
		for _, ref := range answer.References {
			cmd.Printf("  [%s] %s\n", ref.ChunkID, ref.Quote)
		}
	}

	return nil
}
