package tools

import (
	"errors"
	"testing"
)

func validRequest() Request {
	return Request{
		Prompt: "hello",
		Model:  "auto",
	}
}

func TestRequestValidate(t *testing.T) {
	temp := func(v float64) *float64 { return &v }

	tests := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"valid", func(r *Request) {}, ""},
		{"empty model", func(r *Request) { r.Model = "" }, "model"},
		{"relative file path", func(r *Request) { r.AbsoluteFilePaths = []string{"foo/bar.go"} }, "absolute_file_paths"},
		{"relative image path", func(r *Request) { r.Images = []string{"img.png"} }, "images"},
		{"relative working dir", func(r *Request) { r.WorkingDirectory = "work" }, "working_directory_absolute_path"},
		{"bad continuation id", func(r *Request) { r.ContinuationID = "not-a-uuid" }, "continuation_id"},
		{"uuid wrong version", func(r *Request) { r.ContinuationID = "3f8f33a0-0b65-1f7e-9f3e-2f4c46a3b001" }, "continuation_id"},
		{"temperature too low", func(r *Request) { r.Temperature = temp(-0.1) }, "temperature"},
		{"temperature too high", func(r *Request) { r.Temperature = temp(2.1) }, "temperature"},
		{"bad thinking mode", func(r *Request) { r.ThinkingMode = "extreme" }, "thinking_mode"},
		{"valid continuation", func(r *Request) { r.ContinuationID = "3f8f33a0-0b65-4f7e-9f3e-2f4c46a3b001" }, ""},
		{"valid absolute paths", func(r *Request) { r.AbsoluteFilePaths = []string{"/tmp/a.go"} }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, vErr.Field)
			}
		})
	}
}

func validWorkflowRequest() WorkflowRequest {
	return WorkflowRequest{
		Request:          Request{Prompt: "investigate", Model: "auto"},
		Step:             "look at the logs",
		StepNumber:       1,
		TotalSteps:       3,
		NextStepRequired: true,
		Findings:         "nothing yet",
		Confidence:       ConfidenceExploring,
	}
}

func TestWorkflowRequestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*WorkflowRequest)
		wantField string
	}{
		{"valid", func(r *WorkflowRequest) {}, ""},
		{"zero step number", func(r *WorkflowRequest) { r.StepNumber = 0 }, "step_number"},
		{"zero total steps", func(r *WorkflowRequest) { r.TotalSteps = 0 }, "total_steps"},
		{"step beyond total", func(r *WorkflowRequest) { r.StepNumber = 4 }, "step_number"},
		{"unknown confidence", func(r *WorkflowRequest) { r.Confidence = "sure" }, "confidence"},
		{"relative files checked", func(r *WorkflowRequest) { r.FilesChecked = []string{"rel.go"} }, "files_checked"},
		{"relative relevant files", func(r *WorkflowRequest) { r.RelevantFiles = []string{"rel.go"} }, "relevant_files"},
		{"terminal step valid", func(r *WorkflowRequest) {
			r.StepNumber = 3
			r.NextStepRequired = false
			r.Confidence = ConfidenceCertain
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validWorkflowRequest()
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Errorf("expected field %q, got %q", tt.wantField, vErr.Field)
			}
		})
	}
}

func TestBindWrongTypeFailsHard(t *testing.T) {
	var req Request
	err := bind([]byte(`{"prompt": 42}`), &req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if vErr.Field != "prompt" {
		t.Errorf("expected field-level diagnostic for prompt, got %q", vErr.Field)
	}
}

func TestBindIgnoresUnknownFields(t *testing.T) {
	var req Request
	if err := bind([]byte(`{"prompt": "hi", "future_field": true}`), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Prompt != "hi" {
		t.Errorf("expected prompt bound, got %q", req.Prompt)
	}
}

func TestApplyModelDefault(t *testing.T) {
	var req Request
	raw := []byte(`{"prompt": "hi"}`)
	if err := bind(raw, &req); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	applyModelDefault(&req, raw, "auto")
	if req.Model != "auto" {
		t.Errorf("expected omitted model to default, got %q", req.Model)
	}

	// An explicit empty model is preserved so validation rejects it.
	req = Request{}
	raw = []byte(`{"prompt": "hi", "model": ""}`)
	if err := bind(raw, &req); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	applyModelDefault(&req, raw, "auto")
	if req.Model != "" {
		t.Errorf("expected explicit empty model preserved, got %q", req.Model)
	}
}

func TestConfidenceLadder(t *testing.T) {
	ladder := []Confidence{
		ConfidenceExploring, ConfidenceLow, ConfidenceMedium, ConfidenceHigh,
		ConfidenceVeryHigh, ConfidenceAlmostCertain, ConfidenceCertain,
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i].Rank() <= ladder[i-1].Rank() {
			t.Errorf("expected %s to rank above %s", ladder[i], ladder[i-1])
		}
	}
	if Confidence("sure").Rank() != -1 {
		t.Error("expected unknown confidence to rank -1")
	}
}
