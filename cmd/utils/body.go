package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var ErrMalformedBody = errors.New("request body is not a JSON object")

// Fields is a decoded JSON object whose values are checked one by one, so handlers can
// reject extra keys and non-string values instead of silently coercing them.
type Fields map[string]json.RawMessage

func DecodeFields(w http.ResponseWriter, r *http.Request) (Fields, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return Fields{}, nil
	}

	var fields Fields
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, ErrMalformedBody
	}
	return fields, nil
}

// Exactly reports whether the object has these keys and no others.
func (f Fields) Exactly(keys ...string) bool {
	if len(f) != len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := f[k]; !ok {
			return false
		}
	}
	return true
}

// String returns the value at key if it is a JSON string.
func (f Fields) String(key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// NonEmptyString is String that also rejects "".
func (f Fields) NonEmptyString(key string) (string, bool) {
	s, ok := f.String(key)
	return s, ok && s != ""
}
