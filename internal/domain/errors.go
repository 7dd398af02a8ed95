package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord signals a required numeric field that could not be parsed.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrCatalogNotLoaded signals that no vendor catalog has been published yet.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
	// ErrSourceUnavailable signals a failure reading vendors or agents from their source.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrInvalidQuery signals a query rejected by the collector.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)

// MalformedFieldError wraps ErrMalformedRecord with the offending record position and field.
type MalformedFieldError struct {
	Record int
	Field  string
	Value  any
	Err    error
}

func (e *MalformedFieldError) Error() string {
	msg := fmt.Sprintf("%s: record %d field %q value %v", ErrMalformedRecord.Error(), e.Record, e.Field, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedFieldError) Unwrap() error { return ErrMalformedRecord }

// NewMalformedField creates a malformed field error.
func NewMalformedField(record int, field string, value any, cause error) error {
	return &MalformedFieldError{Record: record, Field: field, Value: value, Err: cause}
}
