package core

import "errors"

var (
	// ErrInvalidCandidate marks a candidate fact with empty content or an unknown category.
	ErrInvalidCandidate = errors.New("invalid candidate")
	// ErrStoreUnavailable marks a failed read or write at the store boundary.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrExtraction marks a failed transcript-to-candidates extraction.
	ErrExtraction = errors.New("extraction failed")
)
