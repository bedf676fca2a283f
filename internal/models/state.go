package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var ErrIncompleteState = errors.New("incomplete state")

// Fingerprint is the cheap proxy for "the remote resource changed".
// Comparison is exact string equality, no date or number normalization.
type Fingerprint struct {
	ContentLength string
	LastModified  string
}

func (f Fingerprint) Equal(o Fingerprint) bool {
	return f.ContentLength == o.ContentLength && f.LastModified == o.LastModified
}

// DataVersion is an opaque token holding the compact JSON text of a scalar,
// so 42 and "42" stay distinct tokens.
type DataVersion string

// NewDataVersion builds a token from raw JSON text.
func NewDataVersion(raw []byte) (DataVersion, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return "", fmt.Errorf("invalid data version %q: %w", raw, err)
	}
	return DataVersion(buf.String()), nil
}

// ParseDataVersion accepts either a JSON literal (42, "v2", null) or a bare
// word, which is treated as a JSON string.
func ParseDataVersion(s string) DataVersion {
	if v, err := NewDataVersion([]byte(s)); err == nil {
		return v
	}
	return DataVersion(strconv.Quote(s))
}

func (v DataVersion) IsZero() bool { return v == "" }

func (v DataVersion) IsNull() bool { return v == "" || v == "null" }

// String renders the token for humans: JSON strings are unquoted.
func (v DataVersion) String() string {
	var s string
	if err := json.Unmarshal([]byte(v), &s); err == nil {
		return s
	}
	if v == "" {
		return "null"
	}
	return string(v)
}

func (v DataVersion) MarshalJSON() ([]byte, error) {
	if v == "" {
		return []byte("null"), nil
	}
	return []byte(v), nil
}

func (v *DataVersion) UnmarshalJSON(b []byte) error {
	parsed, err := NewDataVersion(b)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// State is the single persisted snapshot: the fingerprint and data version of
// the most recently triggered import.
type State struct {
	ContentLength    string      `json:"content_length"`
	LastModified     string      `json:"last_modified"`
	LapisDataVersion DataVersion `json:"lapis_data_version"`
}

func (s State) Fingerprint() Fingerprint {
	return Fingerprint{ContentLength: s.ContentLength, LastModified: s.LastModified}
}

// UnmarshalJSON requires all three keys. content_length and last_modified may
// be JSON numbers, in which case their literal text is kept.
func (s *State) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	for _, key := range []string{"content_length", "last_modified", "lapis_data_version"} {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: missing %q", ErrIncompleteState, key)
		}
	}

	contentLength, err := scalarText(raw["content_length"])
	if err != nil {
		return fmt.Errorf("content_length: %w", err)
	}

	lastModified, err := scalarText(raw["last_modified"])
	if err != nil {
		return fmt.Errorf("last_modified: %w", err)
	}

	version, err := NewDataVersion(raw["lapis_data_version"])
	if err != nil {
		return fmt.Errorf("lapis_data_version: %w", err)
	}

	*s = State{
		ContentLength:    contentLength,
		LastModified:     lastModified,
		LapisDataVersion: version,
	}
	return nil
}

func scalarText(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	if string(raw) == "null" {
		return "", errors.New("expected string or number, got null")
	}
	var n json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&n); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return n.String(), nil
}
