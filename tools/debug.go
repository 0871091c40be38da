// debug - systematic root-cause investigation workflow.

package tools

import "github.com/richinex/conclave/llm"

const debugSystemPrompt = `You are guiding a systematic debugging investigation. Each step
reports what was examined and what was found. Reason from the evidence
in the embedded files; distinguish confirmed facts from hypotheses, and
name the exact code locations that support each conclusion.`

const debugExpertPrompt = `You are a senior engineer reviewing a completed root-cause
investigation. Attack the hypothesis: look for alternative explanations
the trace does not rule out, and verify the proposed cause actually
explains every reported symptom.`

// NewDebugTool creates the root-cause investigation workflow tool.
func NewDebugTool(deps Deps) *WorkflowTool {
	return NewWorkflowTool(WorkflowSpec{
		Name: "debug",
		Description: "Multi-step root-cause analysis. Drives a plan / investigate / " +
			"validate loop with step tracking, confidence assessment, and expert " +
			"validation of the final hypothesis.",
		Category:     llm.CategoryReasoning,
		SystemPrompt: debugSystemPrompt,
		ExpertPrompt: debugExpertPrompt,
	}, deps)
}
