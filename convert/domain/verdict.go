package domain

// ValidationVerdict is the outcome of one validation pass: either a pass, or
// a failure carrying a taxonomy code, a human-readable message, and
// structured context for diagnostics. Verdicts are produced fresh per check
// and never mutated after return.
type ValidationVerdict struct {
	Valid   bool           `json:"valid"`
	Code    ErrorCode      `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// Pass returns a passing verdict. Non-fatal findings (such as a quality
// value supplied for a lossless destination) travel in details under the
// "warning" key.
func Pass(details map[string]any) ValidationVerdict {
	return ValidationVerdict{Valid: true, Details: details}
}

// Fail returns a failing verdict with a specific code and context.
func Fail(code ErrorCode, msg string, details map[string]any) ValidationVerdict {
	return ValidationVerdict{Valid: false, Code: code, Message: msg, Details: details}
}
