package mvgen

import (
	"fmt"
	"strings"
)

// ErrorCode classifies a diagnostic. Codes are stable identifiers so tools
// and tests can match on them instead of message text.
type ErrorCode string

const (
	ErrUnexpectedEnd        ErrorCode = "unexpected-end"
	ErrUnterminatedElement  ErrorCode = "unterminated-element"
	ErrUnknownDirective     ErrorCode = "unknown-directive"
	ErrUnknownModifier      ErrorCode = "unknown-modifier"
	ErrModifierNotSupported ErrorCode = "modifier-not-supported"
	ErrExpectedValue        ErrorCode = "expected-value"
	ErrExpectedChildren     ErrorCode = "expected-children"
	ErrUnsupportedDirective ErrorCode = "unsupported-directive"
	ErrClonesTakeNoValue    ErrorCode = "clones-take-no-value"
	ErrInvalidChild         ErrorCode = "invalid-child"
	ErrStraySemicolon       ErrorCode = "stray-semicolon"
	ErrUnknownPrefix        ErrorCode = "unknown-prefix"
	ErrSlotOutsideComponent ErrorCode = "slot-outside-component"
	ErrInvalidIdent         ErrorCode = "invalid-ident"
	ErrBadPragma            ErrorCode = "bad-pragma"
)

// Error is a single diagnostic tied to a source span. Hint carries an
// optional suggestion rendered after the message.
type Error struct {
	Code    ErrorCode
	Span    Span
	Message string
	Hint    string

	src *Source
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	if e.src != nil {
		sb.WriteString(e.src.Pos(e.Span.Start).String())
		sb.WriteString(": ")
	}
	sb.WriteString("error: ")
	sb.WriteString(e.Message)
	if e.Hint != "" {
		sb.WriteString(" (hint: ")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// Pos resolves the diagnostic's start offset, if a source is attached.
func (e *Error) Pos() Position {
	if e.src == nil {
		return Position{}
	}
	return e.src.Pos(e.Span.Start)
}

// ErrorList accumulates diagnostics across a compilation pass.
type ErrorList struct {
	src    *Source
	errors []*Error
}

// NewErrorList creates an accumulator whose diagnostics resolve positions
// against src.
func NewErrorList(src *Source) *ErrorList {
	return &ErrorList{src: src}
}

// Add appends a diagnostic.
func (l *ErrorList) Add(code ErrorCode, span Span, format string, args ...interface{}) *Error {
	err := &Error{
		Code:    code,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
		src:     l.src,
	}
	l.errors = append(l.errors, err)
	return err
}

// AddHint appends a diagnostic carrying a suggestion.
func (l *ErrorList) AddHint(code ErrorCode, span Span, hint, format string, args ...interface{}) *Error {
	err := l.Add(code, span, format, args...)
	err.Hint = hint
	return err
}

// HasErrors reports whether any diagnostics were recorded.
func (l *ErrorList) HasErrors() bool {
	return len(l.errors) > 0
}

// Len returns the number of recorded diagnostics.
func (l *ErrorList) Len() int {
	return len(l.errors)
}

// Errors returns the recorded diagnostics in order.
func (l *ErrorList) Errors() []*Error {
	return l.errors
}

// Err returns the list as an error, or nil if empty.
func (l *ErrorList) Err() error {
	if len(l.errors) == 0 {
		return nil
	}
	return l
}

// Error implements the error interface, rendering one diagnostic per line.
func (l *ErrorList) Error() string {
	switch len(l.errors) {
	case 0:
		return "no errors"
	case 1:
		return l.errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:\n", len(l.errors))
	for i, err := range l.errors {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("\t")
		sb.WriteString(err.Error())
	}
	return sb.String()
}
