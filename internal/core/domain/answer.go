package domain

import "fmt"

// Decision is the adjudication outcome of a claim query.
type Decision string

// Decision values. Indeterminate is returned when the retrieved clauses
// do not support either outcome; a wrong decision is worse than no
// decision.
const (
	DecisionApproved      Decision = "Approved"
	DecisionRejected      Decision = "Rejected"
	DecisionIndeterminate Decision = "Indeterminate"
)

// ParseDecision validates a decision string from model output.
func ParseDecision(s string) (Decision, error) {
	switch Decision(s) {
	case DecisionApproved, DecisionRejected, DecisionIndeterminate:
		return Decision(s), nil
	}
	return "", fmt.Errorf("unknown decision %q", s)
}

// Reference cites a retrieved chunk supporting the answer.
type Reference struct {
	// ChunkID identifies the supporting chunk. It must be one of the
	// chunk identifiers actually supplied to the synthesizer.
	ChunkID string `json:"chunk_id"`

	// Quote is the span quoted from that chunk.
	Quote string `json:"quote"`
}

// StructuredAnswer is the fixed response schema callers depend on.
// It is created once per query and immutable afterwards.
type StructuredAnswer struct {
	// Decision is the adjudication outcome.
	Decision Decision `json:"decision"`

	// Amount is the approved amount, when one applies. Nil when no
	// amount is determinable (rejections, indeterminate outcomes).
	Amount *float64 `json:"amount"`

	// Justification explains the decision in terms of the cited clauses.
	Justification string `json:"justification"`

	// References lists the supporting chunks, in the order the model
	// cited them.
	References []Reference `json:"references"`
}
