// codereview - staged code review workflow.

package tools

import "github.com/richinex/conclave/llm"

const codereviewSystemPrompt = `You are performing a structured code review. Work through the
embedded files methodically: correctness first, then security, then
performance, then maintainability. Report issues with severity, exact
location, and a concrete fix. Do not pad the review with praise.`

const codereviewExpertPrompt = `You are a principal engineer auditing a completed code review.
Check the review for missed defects and for reported issues that are
not actually defects. Judge severity calibration against the code.`

// NewCodeReviewTool creates the staged review workflow tool.
func NewCodeReviewTool(deps Deps) *WorkflowTool {
	return NewWorkflowTool(WorkflowSpec{
		Name: "codereview",
		Description: "Step-by-step code review covering correctness, security, " +
			"performance, and maintainability, with expert validation of the " +
			"final assessment.",
		Category:     llm.CategoryCoding,
		SystemPrompt: codereviewSystemPrompt,
		ExpertPrompt: codereviewExpertPrompt,
	}, deps)
}
