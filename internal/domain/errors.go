package domain

import "errors"

var (
	// ErrNotFound is returned when a news item does not exist.
	ErrNotFound = errors.New("news item not found")
	// ErrInvalidPage is returned for a negative offset or non-positive limit.
	ErrInvalidPage = errors.New("invalid page parameters")
)
