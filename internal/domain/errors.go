package domain

import "errors"

var (
	// ErrEmptyLibrary is returned when an index or ranking is requested over no findings.
	ErrEmptyLibrary = errors.New("findings library is empty")
	// ErrIndexNotBuilt is returned when ranking against a missing or stale index.
	ErrIndexNotBuilt = errors.New("lexical index not built for this library")
	// ErrNoCandidate is returned when an issue is requested without a selected candidate.
	ErrNoCandidate = errors.New("no candidate selected")
	// ErrMissingAPIKey is returned when the text-generation collaborator has no credentials.
	ErrMissingAPIKey = errors.New("missing API key for text generation")
)
