package pager

import "errors"

var (
	// ErrBusy is returned when a fetch is already in flight.
	ErrBusy = errors.New("pager: fetch already in flight")
	// ErrClosed is returned once the pager has been closed.
	ErrClosed = errors.New("pager: closed")
	// ErrInvalidCursor is returned for a negative offset or non-positive limit.
	ErrInvalidCursor = errors.New("pager: invalid cursor")

	// ErrTransport matches (via errors.Is) failures to complete the request
	// or non-success responses.
	ErrTransport = errors.New("transport error")
	// ErrDecode matches (via errors.Is) responses whose body is not a list
	// of valid items.
	ErrDecode = errors.New("decode error")
)
