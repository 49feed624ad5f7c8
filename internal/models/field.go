package models

import "encoding/json"

// Field is a tri-state JSON value for sparse patches. A field absent from
// the payload leaves Set false; an explicit null sets Set but not Valid;
// a value sets both. encoding/json only calls UnmarshalJSON for fields
// present in the payload, which is what makes the absent state observable.
type Field[T any] struct {
	Set   bool // field appeared in the payload
	Valid bool // value is non-null
	Value T
}

// SetTo returns a present, non-null Field holding v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{Set: true, Valid: true, Value: v}
}

// Null returns a present, explicitly-null Field.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// HasValue reports whether the field carries a usable value.
func (f Field[T]) HasValue() bool {
	return f.Set && f.Valid
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	if string(b) == "null" {
		f.Valid = false
		var zero T
		f.Value = zero
		return nil
	}
	f.Valid = true
	return json.Unmarshal(b, &f.Value)
}
