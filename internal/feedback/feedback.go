// Package feedback holds the field -> messages accumulator used to report
// user-correctable rule violations without panicking or string matching.
package feedback

import (
	"encoding/json"
	"errors"
	"strings"
)

// Feedback is an immutable, ordered map of field name to messages.
// The zero value is empty and ready to use.
type Feedback struct {
	fields   []string
	messages map[string][]string
}

// Empty returns a Feedback with no entries.
func Empty() Feedback {
	return Feedback{}
}

// For returns a Feedback holding msgs under field. Empty messages are dropped.
func For(field string, msgs ...string) Feedback {
	return Empty().Add(field, msgs...)
}

// Add returns a copy of f with msgs appended to field.
func (f Feedback) Add(field string, msgs ...string) Feedback {
	kept := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return f
	}

	out := f.clone()
	if _, ok := out.messages[field]; !ok {
		out.fields = append(out.fields, field)
	}
	out.messages[field] = append(out.messages[field], kept...)
	return out
}

// Merge returns a copy of f with every entry of other appended.
func (f Feedback) Merge(other Feedback) Feedback {
	out := f
	for _, field := range other.fields {
		out = out.Add(field, other.messages[field]...)
	}
	return out
}

// Get returns the messages for field, or nil.
func (f Feedback) Get(field string) []string {
	msgs, ok := f.messages[field]
	if !ok {
		return nil
	}
	return append([]string(nil), msgs...)
}

// Fields returns the fields in the order they were first added.
func (f Feedback) Fields() []string {
	return append([]string(nil), f.fields...)
}

// HasFeedback reports whether any message is present.
func (f Feedback) HasFeedback() bool {
	return len(f.fields) > 0
}

// Map returns a copy of the entries.
func (f Feedback) Map() map[string][]string {
	out := make(map[string][]string, len(f.fields))
	for _, field := range f.fields {
		out[field] = f.Get(field)
	}
	return out
}

func (f Feedback) String() string {
	parts := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		parts = append(parts, field+": "+strings.Join(f.messages[field], "; "))
	}
	return strings.Join(parts, ", ")
}

func (f Feedback) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Map())
}

func (f Feedback) clone() Feedback {
	out := Feedback{
		fields:   append([]string(nil), f.fields...),
		messages: make(map[string][]string, len(f.messages)+1),
	}
	for k, v := range f.messages {
		out.messages[k] = append([]string(nil), v...)
	}
	return out
}

// ErrValidation is the default reason carried by a ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports an expected rule violation. Reason is a sentinel
// that callers may match with errors.Is.
type ValidationError struct {
	Feedback Feedback
	Reason   error
}

// NewValidationError wraps fb with reason. A nil reason becomes ErrValidation.
func NewValidationError(reason error, fb Feedback) *ValidationError {
	if reason == nil {
		reason = ErrValidation
	}
	return &ValidationError{Feedback: fb, Reason: reason}
}

func (e *ValidationError) Error() string {
	if !e.Feedback.HasFeedback() {
		return e.Reason.Error()
	}
	return e.Reason.Error() + ": " + e.Feedback.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// AsValidation extracts a ValidationError from err's chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
