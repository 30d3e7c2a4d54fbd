// Package jsonstr provides a JSON column type that accepts any JSON document
// from clients and is emitted back as the document's text in a JSON string.
package jsonstr

import (
	"bytes"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
)

var errInvalid = errors.New("jsonstr: invalid JSON payload")

// Value wraps datatypes.JSON so storage (Scan, Value, column type) is
// unchanged while the wire form is a string: {"a":1} is encoded as "{\"a\":1}".
type Value struct {
	datatypes.JSON
}

// From returns a Value holding raw. An empty raw yields the zero Value.
func From(raw []byte) Value {
	if len(raw) == 0 {
		return Value{}
	}
	return Value{JSON: append(datatypes.JSON(nil), raw...)}
}

func (v Value) IsZero() bool { return len(v.JSON) == 0 }

// Text returns the stored document, or "" when absent.
func (v Value) Text() string { return string(v.JSON) }

func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.JSON) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(string(v.JSON))
}

// Scan accepts NULL as an absent document.
func (v *Value) Scan(src any) error {
	if src == nil {
		v.JSON = nil
		return nil
	}
	return v.JSON.Scan(src)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		v.JSON = nil
		return nil
	}
	if !json.Valid(trimmed) {
		return errInvalid
	}
	v.JSON = append(datatypes.JSON(nil), trimmed...)
	return nil
}
