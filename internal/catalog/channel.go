package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Channel is one catalog entry exactly as the endpoint delivered it.
type Channel struct {
	raw json.RawMessage
}

// NewChannel wraps a raw JSON value as a catalog entry.
func NewChannel(raw json.RawMessage) Channel {
	return Channel{raw: raw}
}

// Raw returns the entry's JSON encoding.
func (c Channel) Raw() json.RawMessage {
	return c.raw
}

// String returns the compact JSON form of the entry for log lines.
func (c Channel) String() string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, c.raw); err != nil {
		return string(c.raw)
	}
	return buf.String()
}

// Record is the typed view of a channel entry. Optional string fields are nil
// when the key is absent.
type Record struct {
	// ID is the identifier rendered as text; empty when absent or falsy
	// (null, "", 0, false). true renders as "True" and float ids as "100.0".
	ID      string
	Name    *string
	Country *string
}

// Record decodes the entry. It fails when the entry is not a JSON object, when
// id is not a scalar, or when name or country is present but not a string.
func (c Channel) Record() (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(c.raw, &fields); err != nil || fields == nil {
		return Record{}, fmt.Errorf("channel entry is not a JSON object")
	}

	var rec Record
	var err error
	if raw, ok := fields["id"]; ok {
		if rec.ID, err = scalarText(raw); err != nil {
			return Record{}, fmt.Errorf("id: %w", err)
		}
	}
	if raw, ok := fields["name"]; ok {
		if rec.Name, err = stringField(raw); err != nil {
			return Record{}, fmt.Errorf("name: %w", err)
		}
	}
	if raw, ok := fields["country"]; ok {
		if rec.Country, err = stringField(raw); err != nil {
			return Record{}, fmt.Errorf("country: %w", err)
		}
	}
	return rec, nil
}

// HasID reports whether the record carries a usable identifier.
func (r Record) HasID() bool {
	return r.ID != ""
}

// DisplayName returns the whitespace-trimmed name, or fallback when absent.
func (r Record) DisplayName(fallback string) string {
	if r.Name == nil {
		return strings.TrimSpace(fallback)
	}
	return strings.TrimSpace(*r.Name)
}

// Group returns the whitespace-trimmed country, or fallback when absent.
func (r Record) Group(fallback string) string {
	if r.Country == nil {
		return strings.TrimSpace(fallback)
	}
	return strings.TrimSpace(*r.Country)
}

var errNotString = errors.New("expected a string")

func stringField(raw json.RawMessage) (*string, error) {
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil || value == nil {
		return nil, fmt.Errorf("%w, got %s", errNotString, describe(raw))
	}
	return value, nil
}

func scalarText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}
	switch trimmed[0] {
	case 'n':
		return "", nil
	case 't':
		return "True", nil
	case 'f':
		return "", nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '[', '{':
		return "", fmt.Errorf("expected a scalar, got %s", describe(raw))
	default:
		return numberText(string(trimmed))
	}
}

// numberText renders a JSON number the way the play URLs have always been
// built: integers keep their digits, floats use the shortest round-trip form
// with a ".0" suffix for whole values, and overflow renders as inf.
func numberText(literal string) (string, error) {
	if !json.Valid([]byte(literal)) {
		return "", fmt.Errorf("invalid number %q", literal)
	}
	if !strings.ContainsAny(literal, ".eE") {
		if strings.TrimLeft(literal, "-0") == "" {
			return "", nil
		}
		return literal, nil
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return "", fmt.Errorf("invalid number %q", literal)
	}
	switch {
	case value == 0:
		return "", nil
	case math.IsInf(value, 1):
		return "inf", nil
	case math.IsInf(value, -1):
		return "-inf", nil
	}
	scientific := strconv.FormatFloat(value, 'e', -1, 64)
	exp, err := strconv.Atoi(scientific[strings.IndexByte(scientific, 'e')+1:])
	if err != nil {
		return "", fmt.Errorf("invalid number %q", literal)
	}
	if exp < -4 || exp >= 16 {
		return scientific, nil
	}
	text := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text, nil
}

func describe(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "nothing"
	}
	switch trimmed[0] {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '"':
		return "string"
	case '[':
		return "array"
	case '{':
		return "object"
	default:
		return "number"
	}
}
