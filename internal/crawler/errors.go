package crawler

import (
	"errors"
	"fmt"
)

// ErrNoArticles is returned when the topic page links to no articles.
var ErrNoArticles = errors.New("no article URLs found on topic page")

// ErrUnexpectedStatusCode indicates an HTTP response with a failing status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// ErrResponseTooLarge indicates a response body above the configured buffer size.
var ErrResponseTooLarge = errors.New("response body exceeds buffer size")

// FetchError reports a page that could not be fetched within the retry limit.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// StructureError reports a missing or malformed landmark in a page.
type StructureError struct {
	URL      string
	Landmark string
	Reason   string
}

func (e *StructureError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Landmark, e.Reason)
	if e.URL != "" {
		msg = e.URL + ": " + msg
	}

	return "structure error: " + msg
}

// DateParseError reports a display date that is not in "Month D, YYYY" form.
type DateParseError struct {
	URL   string
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse date %q: %v", e.URL, e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
