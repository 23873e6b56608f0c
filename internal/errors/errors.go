// Package errors provides the structured error type shared by the tagdom
// packages. Every failure a construction pass can produce is deterministic
// and non-retryable, so errors carry a closed type/code taxonomy instead of
// severity or retry metadata.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Type categorizes an error.
type Type string

const (
	// TypeStructure covers tree-shape failures: mismatched or surplus end
	// tags, empty results, fragments carrying attributes.
	TypeStructure Type = "structure"
	// TypeSyntax covers interpolation-position violations in the template
	// markup itself.
	TypeSyntax Type = "syntax"
	// TypeAccounting covers placeholder/value count mismatches between the
	// tokenizer events and the value queue.
	TypeAccounting Type = "accounting"
	// TypeValidation covers bad conversions, bad format specs, and values of
	// an unusable type in a typed position.
	TypeValidation Type = "validation"
)

// Error codes. Each code belongs to exactly one Type; see the constructors.
const (
	CodeMismatchedTag   = "mismatched_tag"
	CodeUnexpectedEnd   = "unexpected_end_tag"
	CodeEmptyResult     = "empty_result"
	CodeFragmentAttrs   = "fragment_attributes"
	CodeAttrNameInterp  = "attr_name_interpolation"
	CodeQueueExhausted  = "queue_exhausted"
	CodeQueueResidue    = "queue_residue"
	CodeBadConversion   = "bad_conversion"
	CodeBadFormatSpec   = "bad_format_spec"
	CodeTagIdentity     = "tag_identity"
	CodeAttrExpansion   = "attr_expansion"
	CodePlaceholderLit  = "placeholder_in_literal"
	CodeBadEscape       = "bad_escape"
	CodeInvalidTemplate = "invalid_template"
)

// TagError is a structured error with a type, a stable code, and optional
// key/value context.
type TagError struct {
	Type    Type
	Code    string
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *TagError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	parts = append(parts, e.Message)
	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *TagError) Unwrap() error { return e.Cause }

// Is matches two TagErrors on Type and Code, ignoring message and context.
// This lets packages export sentinel values for use with errors.Is.
func (e *TagError) Is(target error) bool {
	var t *TagError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *TagError) WithContext(key string, value any) *TagError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithCause attaches an underlying cause.
func (e *TagError) WithCause(cause error) *TagError {
	e.Cause = cause
	return e
}

// NewStructure creates a structural failure error.
func NewStructure(code, message string) *TagError {
	return &TagError{Type: TypeStructure, Code: code, Message: message}
}

// NewSyntax creates an interpolation-position error.
func NewSyntax(code, message string) *TagError {
	return &TagError{Type: TypeSyntax, Code: code, Message: message}
}

// NewAccounting creates a queue-accounting violation error.
func NewAccounting(code, message string) *TagError {
	return &TagError{Type: TypeAccounting, Code: code, Message: message}
}

// NewValidation creates a validation error.
func NewValidation(code, message string) *TagError {
	return &TagError{Type: TypeValidation, Code: code, Message: message}
}
