// Command claimlens adjudicates insurance claim queries against a
// knowledge base built from policy documents.
package main

import (
	"fmt"
	"os"

	"github.com/clearbrook-labs/claimlens/internal/adapters/driven/ai"
	"github.com/clearbrook-labs/claimlens/internal/adapters/driven/config/file"
	"github.com/clearbrook-labs/claimlens/internal/adapters/driven/storage/sqlite"
	"github.com/clearbrook-labs/claimlens/internal/adapters/driving/cli"
	"github.com/clearbrook-labs/claimlens/internal/chunker"
	"github.com/clearbrook-labs/claimlens/internal/config"
	"github.com/clearbrook-labs/claimlens/internal/core/services"
	"github.com/clearbrook-labs/claimlens/internal/loaders"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CLAIMLENS_CONFIG"))
	if err != nil {
		return err
	}

	embedder, err := ai.CreateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}
	defer embedder.Close()

	llm, err := ai.CreateLLMService(cfg.LLM)
	if err != nil {
		return err
	}
	defer llm.Close()

	store, err := sqlite.NewStore(cfg.Storage.BundlePath)
	if err != nil {
		return err
	}
	defer store.Close()

	prompts, err := file.NewPromptStore(cfg.Prompts.Dir)
	if err != nil {
		return err
	}

	ch, err := chunker.New(chunker.Config{
		Size:             cfg.Chunking.Size,
		Overlap:          cfg.Chunking.Overlap,
		PreferBoundaries: true,
	})
	if err != nil {
		return err
	}

	builder := services.NewBuildService(loaders.NewRegistry(), ch, embedder, store)
	kb := services.NewKnowledgeBase(store)
	defer kb.Close()

	expander := services.NewExpander(llm, prompts, cfg.Retrieval.Expansions)
	retriever := services.NewRetriever(embedder, expander, cfg.Retrieval.TopK)
	synthesizer := services.NewSynthesizer(llm, prompts)
	claims := services.NewClaimService(kb, retriever, synthesizer, builder)

	cli.SetServices(claims, builder, kb)
	cli.SetKnowledgeBaseWatch(kb.Watch)
	cli.SetVersion(version)

	return cli.Execute()
}
