package database

import "errors"

// ErrUnavailable marks a backend that could not be reached or answered with
// a malformed response. It is distinct from an empty result set: empty means
// "no data", unavailable means "unknown data". Callers can test for it with
// errors.Is.
var ErrUnavailable = errors.New("query service unavailable")
