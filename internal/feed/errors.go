package feed

import (
	"fmt"

	"github.com/timmy/newsdeck/internal/pager"
)

// maxBodySnippet caps how much of a response body is kept on an error.
const maxBodySnippet = 256

// TransportError means the request could not be completed or the server
// answered with a non-success status. It matches pager.ErrTransport.
type TransportError struct {
	URL        string
	StatusCode int // zero when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("news feed GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("news feed GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == pager.ErrTransport }

// DecodeError means the response body was not a JSON array of valid news
// items. It matches pager.ErrDecode.
type DecodeError struct {
	URL  string
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("news feed GET %s: decode response: %v (body=%s)", e.URL, e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == pager.ErrDecode }

func snippet(b []byte) string {
	if len(b) > maxBodySnippet {
		return string(b[:maxBodySnippet]) + "..."
	}
	return string(b)
}
