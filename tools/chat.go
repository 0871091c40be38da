// chat - general collaborative thinking tool.

package tools

import "github.com/richinex/conclave/llm"

const chatSystemPrompt = `You are a senior engineering collaborator. Answer directly and
concretely. When files are provided, ground your answer in their actual
contents. Say so plainly when you are unsure or when the question needs
information you do not have.`

// NewChatTool creates the general-purpose chat tool.
func NewChatTool(deps Deps) *SimpleTool {
	return NewSimpleTool(SimpleSpec{
		Name: "chat",
		Description: "General chat and collaborative thinking. Use for brainstorming, " +
			"second opinions, and explanations; supports file context, images, and " +
			"conversation continuation.",
		Category:     llm.CategoryGeneral,
		SystemPrompt: chatSystemPrompt,
	}, deps)
}
