package driven

// Prompt template names used by the pipeline services.
const (
	// PromptQueryExpansion paraphrases a claim query. Placeholders:
	// %d paraphrase count, %s original query.
	PromptQueryExpansion = "query_expansion"

	// PromptSynthesis evaluates a claim against retrieved policy
	// clauses. Placeholders: %s annotated clauses, %s claim query.
	PromptSynthesis = "synthesis"

	// PromptSynthesisRetry reformats a malformed synthesis response.
	// Placeholder: %s the previous raw output.
	PromptSynthesisRetry = "synthesis_retry"
)

// PromptStore provides LLM prompt templates, allowing user
// customisation without recompiling.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads.
	Reload()
}
