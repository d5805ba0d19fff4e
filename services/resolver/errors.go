package resolver

import "fmt"

// Error codes for the resolution failure taxonomy. Per-photographer enrichment
// failures are logged and absorbed; only cycle-level failures carry a code.
const (
	CodePrimaryLookupFailure = "primaryLookupFailure"
	CodeFallbackFailure      = "fallbackFailure"
)

// ResolveError is a cycle-level resolution failure.
type ResolveError struct {
	Code    string
	Message string
	Err     error
}

func (e *ResolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ResolveError) Unwrap() error { return e.Err }
