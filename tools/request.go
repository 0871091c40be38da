// Request envelopes - validated, typed tool input.
//
// Information Hiding:
// - JSON binding and field-level diagnostics
// - Cross-field step invariants for workflow requests
// - Confidence ladder ordering
//
// Unknown fields are ignored for forward compatibility; typed fields
// with the wrong JSON type fail hard with a field-level diagnostic.

package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/richinex/conclave/llm"
	"github.com/richinex/conclave/storage"
)

// ValidationError reports an invalid envelope field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Message
	}
	return fmt.Sprintf("invalid request field %q: %s", e.Field, e.Message)
}

// Confidence is the client's self-assessed certainty in a workflow
// investigation. The ladder advances exploring -> certain; regressions
// are allowed and never drive state transitions by themselves.
type Confidence string

const (
	ConfidenceExploring     Confidence = "exploring"
	ConfidenceLow           Confidence = "low"
	ConfidenceMedium        Confidence = "medium"
	ConfidenceHigh          Confidence = "high"
	ConfidenceVeryHigh      Confidence = "very_high"
	ConfidenceAlmostCertain Confidence = "almost_certain"
	ConfidenceCertain       Confidence = "certain"
)

var confidenceRank = map[Confidence]int{
	ConfidenceExploring:     0,
	ConfidenceLow:           1,
	ConfidenceMedium:        2,
	ConfidenceHigh:          3,
	ConfidenceVeryHigh:      4,
	ConfidenceAlmostCertain: 5,
	ConfidenceCertain:       6,
}

// Rank returns the ladder position, -1 for unknown values.
func (c Confidence) Rank() int {
	r, ok := confidenceRank[c]
	if !ok {
		return -1
	}
	return r
}

// ParseConfidence parses a confidence level (case-insensitive).
// Empty input returns ConfidenceExploring.
func ParseConfidence(s string) (Confidence, error) {
	if s == "" {
		return ConfidenceExploring, nil
	}
	c := Confidence(strings.ToLower(s))
	if _, ok := confidenceRank[c]; !ok {
		return "", fmt.Errorf("unknown confidence: %q", s)
	}
	return c, nil
}

// Request is the base envelope shared by all tools.
type Request struct {
	Prompt            string   `json:"prompt"`
	Model             string   `json:"model"`
	AbsoluteFilePaths []string `json:"absolute_file_paths"`
	Images            []string `json:"images"`
	ContinuationID    string   `json:"continuation_id"`
	WorkingDirectory  string   `json:"working_directory_absolute_path"`
	Temperature       *float64 `json:"temperature"`
	ThinkingMode      string   `json:"thinking_mode"`
}

// Validate checks the base envelope's field contracts.
func (r *Request) Validate() error {
	if r.Model == "" {
		return &ValidationError{Field: "model", Message: `must not be empty (use "auto" for auto-mode)`}
	}
	for _, path := range r.AbsoluteFilePaths {
		if !filepath.IsAbs(path) {
			return &ValidationError{Field: "absolute_file_paths", Message: fmt.Sprintf("path %q is not absolute", path)}
		}
	}
	for _, path := range r.Images {
		if !filepath.IsAbs(path) {
			return &ValidationError{Field: "images", Message: fmt.Sprintf("path %q is not absolute", path)}
		}
	}
	if r.WorkingDirectory != "" && !filepath.IsAbs(r.WorkingDirectory) {
		return &ValidationError{Field: "working_directory_absolute_path", Message: fmt.Sprintf("path %q is not absolute", r.WorkingDirectory)}
	}
	if r.ContinuationID != "" && !storage.IsValidThreadID(r.ContinuationID) {
		return &ValidationError{Field: "continuation_id", Message: fmt.Sprintf("%q is not a UUID v4", r.ContinuationID)}
	}
	if r.Temperature != nil && (*r.Temperature < 0.0 || *r.Temperature > 2.0) {
		return &ValidationError{Field: "temperature", Message: fmt.Sprintf("%v outside [0.0, 2.0]", *r.Temperature)}
	}
	if _, err := llm.ParseThinkingMode(r.ThinkingMode); err != nil {
		return &ValidationError{Field: "thinking_mode", Message: err.Error()}
	}
	return nil
}

// WorkflowRequest extends the base envelope with step-machine fields.
type WorkflowRequest struct {
	Request

	Step             string     `json:"step"`
	StepNumber       int        `json:"step_number"`
	TotalSteps       int        `json:"total_steps"`
	NextStepRequired bool       `json:"next_step_required"`
	Findings         string     `json:"findings"`
	Hypothesis       string     `json:"hypothesis"`
	Confidence       Confidence `json:"confidence"`
	FilesChecked     []string   `json:"files_checked"`
	RelevantFiles    []string   `json:"relevant_files"`
}

// Validate checks base contracts plus the step invariants.
func (r *WorkflowRequest) Validate() error {
	if err := r.Request.Validate(); err != nil {
		return err
	}
	if r.StepNumber < 1 {
		return &ValidationError{Field: "step_number", Message: "must be >= 1"}
	}
	if r.TotalSteps < 1 {
		return &ValidationError{Field: "total_steps", Message: "must be >= 1"}
	}
	if r.StepNumber > r.TotalSteps {
		return &ValidationError{
			Field:   "step_number",
			Message: fmt.Sprintf("%d exceeds total_steps %d", r.StepNumber, r.TotalSteps),
		}
	}
	if r.Confidence != "" && r.Confidence.Rank() < 0 {
		return &ValidationError{Field: "confidence", Message: fmt.Sprintf("unknown value %q", r.Confidence)}
	}
	for _, path := range r.FilesChecked {
		if !filepath.IsAbs(path) {
			return &ValidationError{Field: "files_checked", Message: fmt.Sprintf("path %q is not absolute", path)}
		}
	}
	for _, path := range r.RelevantFiles {
		if !filepath.IsAbs(path) {
			return &ValidationError{Field: "relevant_files", Message: fmt.Sprintf("path %q is not absolute", path)}
		}
	}
	return nil
}

// bind decodes raw JSON arguments into an envelope, translating decode
// failures into field-level validation errors.
func bind(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &ValidationError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value),
			}
		}
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// modelExplicitlyEmpty reports whether the raw arguments carried a
// literal empty model string. An omitted model falls back to the
// configured default; an explicit "" is a caller mistake.
func modelExplicitlyEmpty(raw json.RawMessage) bool {
	var probe struct {
		Model *string `json:"model"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Model != nil && *probe.Model == ""
}

// applyModelDefault fills an omitted model from settings before
// validation. raw distinguishes omitted from explicitly empty.
func applyModelDefault(r *Request, raw json.RawMessage, defaultModel string) {
	if r.Model != "" || modelExplicitlyEmpty(raw) {
		return
	}
	r.Model = defaultModel
}
