package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

var (
	jsonNull  = []byte("null")
	jsonFalse = []byte("false")
)

// Optional records whether a JSON key was present in a request body.
// A present key with a null value has Set=true and Value=nil, which is how
// callers tell "not provided" apart from "explicitly cleared".
type Optional[T any] struct {
	Set   bool
	Value *T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// Some returns a present Optional holding v, for building updates in code.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

// ValueOr returns the held value, or def when the key was absent or null.
func (o Optional[T]) ValueOr(def T) T {
	if o.Value == nil {
		return def
	}
	return *o.Value
}

// Null returns a present Optional with no value, for building updates that
// clear a column in code.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// Flag is a boolean that accepts the loose values browser forms send:
// true/false, numbers (non-zero is true), and strings ("true", "1", "false",
// "0", or any other non-empty text as true).
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		*f = false
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*f = Flag(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if b, err := strconv.ParseBool(s); err == nil {
			*f = Flag(b)
		} else {
			*f = s != ""
		}
	case '[', '{':
		*f = true
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("invalid boolean value %s", data)
		}
		*f = n != 0
	}
	return nil
}

func (f Flag) Bool() bool {
	return bool(f)
}

// ExplicitFalse is true only when the JSON value is the literal false.
// Any other value, including 0, "false" and null, leaves it false.
type ExplicitFalse bool

func (e *ExplicitFalse) UnmarshalJSON(data []byte) error {
	*e = ExplicitFalse(bytes.Equal(bytes.TrimSpace(data), jsonFalse))
	return nil
}
