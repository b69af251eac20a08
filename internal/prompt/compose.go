// Package prompt builds the fixed analysis prompt sent to the language model.
package prompt

import (
	"fmt"
	"strings"
)

// chunkSeparator joins retrieved guideline chunks so their boundaries stay
// visible to the model.
const chunkSeparator = "\n\n---\n\n"

// template has two slots: the retrieved guideline context and the extracted
// application text. The section labels are a fixed contract. The model's
// response is rendered to the end user as-is, so "Summary" and "Flagged
// Risks" must appear verbatim.
const template = `You are an expert underwriting assistant. Your task is to analyze a
loan application based *only* on the provided 'Underwriting Guidelines'.

Do not use any external knowledge.

Analyze the following 'Loan Application' against the 'Underwriting Guidelines'.

Guidelines:
%s

Loan Application:
%s

Please provide your analysis in the following format:

**Summary:**
[Provide a brief summary of the loan application.]

**Flagged Risks:**
[List all violations or risks found in the application based on the guidelines.
For each risk, state the guideline that was violated and why.
If no risks are found, state "No risks flagged."]`

// Compose fills the analysis template with the retrieved guideline chunks and
// the raw application text. Pure function, no I/O.
func Compose(contextChunks []string, applicationText string) string {
	context := strings.Join(contextChunks, chunkSeparator)
	return fmt.Sprintf(template, context, applicationText)
}
