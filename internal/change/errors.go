package change

import "errors"

var (
	// ErrFormat is returned when a summary has no top-level ": " separator.
	ErrFormat = errors.New("change: missing \": \" separator")
	// ErrKind is returned when the type token is not a recognized kind.
	ErrKind = errors.New("change: unrecognized kind")
	// ErrWhitespace is returned when the summary has leading or trailing
	// whitespace.
	ErrWhitespace = errors.New("change: summary has leading or trailing whitespace")
	// ErrCasing is returned when an uppercase-leading summary does not start
	// with an acronym.
	ErrCasing = errors.New("change: summary must start lowercase unless an acronym")
	// ErrPunctuation is returned when the summary ends with sentence
	// punctuation.
	ErrPunctuation = errors.New("change: summary ends with punctuation")
	// ErrReference is returned when a "#N" issue reference is not wrapped in
	// parentheses.
	ErrReference = errors.New("change: issue reference not wrapped in parentheses")
)
