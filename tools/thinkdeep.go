// thinkdeep - extended reasoning workflow for hard open-ended problems.

package tools

import "github.com/richinex/conclave/llm"

const thinkdeepSystemPrompt = `You are extending an investigation into a hard problem. Go past
the obvious first answer: enumerate the alternatives, steelman the ones
you reject, and make your uncertainty explicit at every step.`

const thinkdeepExpertPrompt = `You are reviewing a deep analysis. Probe the weakest links in the
argument chain and surface any alternative the analysis dismissed too
quickly.`

// NewThinkDeepTool creates the extended reasoning workflow tool.
func NewThinkDeepTool(deps Deps) *WorkflowTool {
	return NewWorkflowTool(WorkflowSpec{
		Name: "thinkdeep",
		Description: "Multi-step extended reasoning for architecture decisions, " +
			"complex tradeoffs, and problems that need more than one pass.",
		Category:     llm.CategoryReasoning,
		SystemPrompt: thinkdeepSystemPrompt,
		ExpertPrompt: thinkdeepExpertPrompt,
	}, deps)
}
