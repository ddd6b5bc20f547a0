// Package cli implements the claimlens command-line interface. It is a
// driving adapter: commands translate flags and arguments into calls on
// the core service ports and render the results.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/clearbrook-labs/claimlens/internal/adapters/driving/mcp"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are injected by the composition root before Execute runs.
// Commands check for nil and fail with a clear message, which keeps
// the package testable without a full wiring.
var (
	claimService driving.ClaimService
	buildService driving.BuildService
	kbReader     mcp.KnowledgeBaseReader

	// kbWatch starts hot reloading of the knowledge base for
	// long-running commands. Optional.
	kbWatch func(ctx context.Context) error
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "claimlens",
	Short: "Adjudicate insurance claims against policy documents",
	Long: `claimlens answers insurance claim queries against a local knowledge
base built from policy documents. Build a knowledge base once with
"claimlens build", then adjudicate queries with "claimlens query".`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// SetServices wires the core services into the CLI. Must be called
// before Execute.
func SetServices(claim driving.ClaimService, build driving.BuildService, kb mcp.KnowledgeBaseReader) {
	claimService = claim
	buildService = build
	kbReader = kb
}

// SetKnowledgeBaseWatch registers a function that starts watching the
// persisted bundle for rebuilds. Used by long-running server commands.
func SetKnowledgeBaseWatch(fn func(ctx context.Context) error) {
	kbWatch = fn
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
