package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_OriginalAlwaysFirst(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"Is knee surgery covered under this policy?\nWhat is the waiting period for knee surgery?",
	}}
	exp := NewExpander(llm, &staticPrompts{}, 3)

	probes := exp.Expand(context.Background(), "knee surgery claim")

	require.Len(t, probes, 3)
	assert.Equal(t, "knee surgery claim", probes[0])
	assert.Equal(t, "Is knee surgery covered under this policy?", probes[1])
	assert.Equal(t, "What is the waiting period for knee surgery?", probes[2])
}

func TestExpand_StripsListMarkers(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"1. First question?\n2) Second question?\n- Third question?",
	}}
	exp := NewExpander(llm, &staticPrompts{}, 3)

	probes := exp.Expand(context.Background(), "query")

	require.Len(t, probes, 4)
	assert.Equal(t, "First question?", probes[1])
	assert.Equal(t, "Second question?", probes[2])
	assert.Equal(t, "Third question?", probes[3])
}

func TestExpand_DropsDuplicatesAndEmptyLines(t *testing.T) {
	llm := &scriptedLLM{responses: []string{
		"Same question?\n\nsame question?\nQUERY\nOther question?",
	}}
	exp := NewExpander(llm, &staticPrompts{}, 5)

	probes := exp.Expand(context.Background(), "query")

	assert.Equal(t, []string{"query", "Same question?", "Other question?"}, probes)
}

func TestExpand_CapsParaphraseCount(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"a?\nb?\nc?\nd?\ne?"}}
	exp := NewExpander(llm, &staticPrompts{}, 2)

	probes := exp.Expand(context.Background(), "query")

	// Original plus at most two paraphrases.
	assert.Len(t, probes, 3)
}

func TestExpand_LLMFailureDegradesToOriginal(t *testing.T) {
	llm := &scriptedLLM{err: errors.New("provider down")}
	exp := NewExpander(llm, &staticPrompts{}, 3)

	probes := exp.Expand(context.Background(), "query")

	assert.Equal(t, []string{"query"}, probes)
}

func TestExpand_NilLLM(t *testing.T) {
	exp := NewExpander(nil, &staticPrompts{}, 3)

	probes := exp.Expand(context.Background(), "query")

	assert.Equal(t, []string{"query"}, probes)
}

func TestExpand_PromptLoadFailureDegradesToOriginal(t *testing.T) {
	llm := &scriptedLLM{responses: []string{"unused"}}
	exp := NewExpander(llm, &staticPrompts{loadErr: errors.New("no prompt")}, 3)

	probes := exp.Expand(context.Background(), "query")

	assert.Equal(t, []string{"query"}, probes)
	assert.Zero(t, llm.calls())
}
