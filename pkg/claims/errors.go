package claims

import "fmt"

// ParseError reports a wire-format string that violates a domain
// invariant, naming the offending field. Wire values that fail to parse
// are rejected whole; no partial value is ever produced.
type ParseError struct {
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func NewParseError(field string, err error) *ParseError {
	return &ParseError{Field: field, Err: err}
}
