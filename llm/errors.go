// Error taxonomy for the provider layer.
//
// Callers branch on these with errors.Is / errors.As; the dispatcher maps
// them to the error kinds surfaced over the wire.

package llm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnknownModel means no registered provider owns the requested
	// model name or alias.
	ErrUnknownModel = errors.New("unknown model")

	// ErrNoEligibleModel means auto-mode filtered every candidate out.
	ErrNoEligibleModel = errors.New("no eligible model")

	// ErrModelRestricted means the restriction policy blocks the model.
	ErrModelRestricted = errors.New("model restricted by policy")
)

// ModelNotSupportedError is returned by a provider asked to generate with
// a model outside its capability catalog.
type ModelNotSupportedError struct {
	Provider ProviderType
	Model    string
}

func (e *ModelNotSupportedError) Error() string {
	return fmt.Sprintf("provider %s does not support model %q", e.Provider, e.Model)
}

// FeatureUnsupportedError is returned when a request uses a feature the
// model's capability descriptor disallows.
type FeatureUnsupportedError struct {
	Model   string
	Feature string
}

func (e *FeatureUnsupportedError) Error() string {
	return fmt.Sprintf("model %q does not support %s", e.Model, e.Feature)
}

// UpstreamError wraps a transport or HTTP failure from a provider API.
// Retryable is true for rate limits, server errors, and timeouts.
type UpstreamError struct {
	Provider  ProviderType
	Status    int // 0 when no HTTP status is available
	Retryable bool
	Err       error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s upstream error (status %d, retryable=%v): %v",
			e.Provider, e.Status, e.Retryable, e.Err)
	}
	return fmt.Sprintf("%s upstream error (retryable=%v): %v", e.Provider, e.Retryable, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// retryableStatus reports whether an HTTP status from upstream is worth
// retrying: 429 and all 5xx. Other 4xx statuses are client errors.
func retryableStatus(status int) bool {
	return status == 429 || status >= 500
}

// upstreamError classifies err into an UpstreamError for the given
// provider. Caller cancellation passes through untouched; a deadline
// expiry is a timeout and therefore retryable.
func upstreamError(provider ProviderType, status int, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{Provider: provider, Retryable: true, Err: err}
	}
	retryable := status == 0 || retryableStatus(status)
	return &UpstreamError{Provider: provider, Status: status, Retryable: retryable, Err: err}
}
