package domain

import "time"

// Operation names a gateway function.
type Operation string

const (
	OpTranslate      Operation = "translate"
	OpDetectLanguage Operation = "detect_language"
	OpSpeech         Operation = "speech"
	OpContext        Operation = "context"
)

// ActivityStatus is the outcome of a gateway call.
type ActivityStatus string

const (
	StatusOK              ActivityStatus = "ok"
	StatusValidationError ActivityStatus = "validation_error"
	StatusUpstreamError   ActivityStatus = "upstream_error"
)

// ActivityEntry records one gateway call. The user's text is never stored,
// only its length.
type ActivityEntry struct {
	ID         int64          `json:"id" yaml:"id"`
	Operation  Operation      `json:"operation" yaml:"operation"`
	Role       string         `json:"role" yaml:"role"`
	InputChars int            `json:"input_chars" yaml:"input_chars"`
	Status     ActivityStatus `json:"status" yaml:"status"`
	Detail     string         `json:"detail,omitempty" yaml:"detail,omitempty"`
	DurationMs int64          `json:"duration_ms" yaml:"duration_ms"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
}

// Failed reports whether the call did not produce a result.
func (e *ActivityEntry) Failed() bool {
	return e.Status != StatusOK
}
