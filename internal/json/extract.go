// Package json provides JSON extraction utilities for parsing LLM responses.
//
// Models asked for a structured verdict usually wrap it in prose or a
// markdown code fence. This package digs the JSON object out of such
// responses so callers get a typed value or a clear error.
package json

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONFromResponse extracts and parses a JSON object from an LLM
// response. It handles the common response patterns:
// 1. Pure JSON - parsed directly
// 2. JSON wrapped in a markdown code fence (```json ... ```)
// 3. A JSON object embedded in surrounding text
//
// Limitations:
// - Only handles JSON objects, not top-level arrays
// - Uses brace scanning, so braces inside strings can confuse it
func ExtractJSONFromResponse[T any](response string) (T, error) {
	var result T
	jsonStr, err := extractObject(response)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}

// extractObject finds the JSON object portion of a response string.
func extractObject(response string) (string, error) {
	response = stripCodeFence(response)

	// Pure JSON first.
	if json.Valid([]byte(response)) {
		return response, nil
	}

	// Otherwise scan for the outermost object. The LAST closing brace
	// pairs with the FIRST opening one when the model appends prose
	// after the object.
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start != -1 && end > start {
		candidate := response[start : end+1]
		if json.Valid([]byte(candidate)) {
			return candidate, nil
		}
	}

	preview := response
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return "", fmt.Errorf("failed to extract valid JSON from response: %q", preview)
}

// stripCodeFence removes a surrounding markdown code fence if present.
func stripCodeFence(response string) string {
	trimmed := strings.TrimSpace(response)
	for _, prefix := range []string{"```json", "```"} {
		if strings.HasPrefix(trimmed, prefix) {
			trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
			break
		}
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "```"))
	}
	return trimmed
}
