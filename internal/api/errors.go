package api

import "fmt"

// NetworkError is a transport failure or a non-2xx response from the stats
// API. Status is 0 when the request never produced a response.
type NetworkError struct {
	URL    string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("stats API returned %d for %s", e.Status, e.URL)
	}
	return fmt.Sprintf("stats API request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError means the response body decoded but did not have
// the expected shape (missing bin/count arrays, mismatched lengths).
type MalformedResponseError struct {
	URL    string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.URL, e.Reason)
}
