// Package catalog fetches the remote JSON channel catalog.
//
// A Client issues exactly one GET per Fetch with the configured User-Agent and
// Referer headers and a fixed timeout. Failures are reported as *Error values
// tagged with one of the exported markers (ErrHTTP, ErrConnection, ErrTimeout,
// ErrDecode, ErrUnknown) so callers can log a distinguishing kind and abort.
// Nothing is retried.
//
// Entries are returned as Channel values that keep their raw JSON. Decoding an
// entry into a Record happens later, per channel, so one malformed entry cannot
// fail the whole catalog.
package catalog
