package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

var (
	ErrHTTP       = errors.New("http error")
	ErrConnection = errors.New("connection error")
	ErrTimeout    = errors.New("request timed out")
	ErrDecode     = errors.New("decode error")
	ErrUnknown    = errors.New("unexpected error")
)

// Error describes a failed catalog fetch. Marker is one of the exported
// sentinels; Status is only set for ErrHTTP.
type Error struct {
	Marker error
	URL    string
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	parts = append(parts, e.Marker.Error())
	if e.Status != 0 {
		parts = append(parts, fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)))
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		parts = append(parts, detail)
	}
	msg := strings.Join(parts, ": ")
	if e.URL != "" {
		msg += " (" + e.URL + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the marker and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Marker}
	}
	return []error{e.Marker, e.Err}
}

// Kind returns a short label for the failure class of err, suitable for a
// structured log field.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrHTTP):
		return "http"
	case errors.Is(err, ErrConnection):
		return "connection"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "unknown"
	}
}

func newError(marker error, url, detail string, err error) *Error {
	if marker == nil {
		marker = ErrUnknown
	}
	return &Error{Marker: marker, URL: url, Detail: detail, Err: err}
}

// classifyTransport maps an error from the HTTP round trip or body read to a marker.
func classifyTransport(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return ErrTimeout
	case isConnectionFailure(err):
		return ErrConnection
	default:
		return ErrUnknown
	}
}

func isConnectionFailure(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &opErr), errors.As(err, &dnsErr):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return true
	default:
		return false
	}
}
