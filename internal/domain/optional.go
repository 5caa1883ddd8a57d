package domain

import (
	"bytes"
	"encoding/json"
)

// Optional is a patch field that distinguishes three states: absent from the
// request body, present but null, and present with a value.
//
// The zero value is absent. Optional only works as a struct field decoded by
// encoding/json, since UnmarshalJSON is never called for missing keys.
type Optional[T any] struct {
	value   T
	present bool
	null    bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// Null returns an Optional that was present in the request with a null value.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// Present reports whether the field appeared in the input at all.
func (o Optional[T]) Present() bool {
	return o.present
}

// IsNull reports whether the field appeared with an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.present && o.null
}

// Get returns the value and true when the field carries a non-null value.
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// Ptr returns a pointer to the value, or nil when absent or null.
// Stores pass the result as a bound parameter so that NULL means "keep".
func (o Optional[T]) Ptr() *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}
