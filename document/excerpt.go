package document

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// defaultExcerptBudget caps the tokens spent on document excerpts in an
// LLM prompt.
const defaultExcerptBudget = 2000

// ExcerptBuilder trims relevant document content to a token budget before
// it is embedded in an analysis prompt.
type ExcerptBuilder struct {
	enc    *tiktoken.Tiktoken
	budget int
}

// NewExcerptBuilder creates an excerpt builder using the cl100k_base
// encoding. Budget <= 0 selects the default.
func NewExcerptBuilder(budget int) (*ExcerptBuilder, error) {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("document: load token encoding: %w", err)
	}
	if budget <= 0 {
		budget = defaultExcerptBudget
	}
	return &ExcerptBuilder{enc: enc, budget: budget}, nil
}

// Build concatenates excerpts from the relevant documents, splitting the
// token budget evenly across them. Irrelevant and failed documents are
// skipped.
func (b *ExcerptBuilder) Build(extractions []Extraction, verdicts []Verdict) string {
	relevant := make([]Extraction, 0, len(extractions))
	for i, e := range extractions {
		if i < len(verdicts) && verdicts[i].IsRelevant && !e.Failed() {
			relevant = append(relevant, e)
		}
	}
	if len(relevant) == 0 {
		return ""
	}

	perDoc := b.budget / len(relevant)
	var sb strings.Builder
	for _, e := range relevant {
		sb.WriteString(fmt.Sprintf("--- %s ---\n", e.Filename))
		sb.WriteString(b.truncate(e.Content, perDoc))
		sb.WriteString("\n")
	}
	return sb.String()
}

// truncate cuts text to at most maxTokens tokens.
func (b *ExcerptBuilder) truncate(text string, maxTokens int) string {
	ids := b.enc.Encode(text, nil, nil)
	if len(ids) <= maxTokens {
		return text
	}
	return b.enc.Decode(ids[:maxTokens])
}
