// planner - sequential planning workflow.
//
// Planning output is a plan, not a verdict, so there is nothing for an
// expert to validate; the expert phase is disabled.

package tools

import "github.com/richinex/conclave/llm"

const plannerSystemPrompt = `You are building an implementation plan step by step. Each step
refines the plan: break the work into ordered, concretely scoped tasks
with explicit dependencies. Revise earlier steps when new constraints
appear instead of bolting on exceptions.`

// NewPlannerTool creates the sequential planning workflow tool.
func NewPlannerTool(deps Deps) *WorkflowTool {
	return NewWorkflowTool(WorkflowSpec{
		Name: "planner",
		Description: "Interactive sequential planner. Builds and revises an " +
			"implementation plan across steps; no expert validation pass.",
		Category:      llm.CategoryGeneral,
		SystemPrompt:  plannerSystemPrompt,
		DisableExpert: true,
	}, deps)
}
