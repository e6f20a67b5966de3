package models

import "encoding/json"

// Result is either real upstream data (Ok) or a neutral placeholder (Empty).
// Both marshal to the bare payload, so consumers cannot tell them apart on the wire.
type Result[T any] struct {
	data   T
	empty  bool
	reason string
}

// Ok wraps data obtained from the upstream.
func Ok[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// Empty wraps a neutral value and the reason the upstream data was unusable.
func Empty[T any](neutral T, reason string) Result[T] {
	return Result[T]{data: neutral, empty: true, reason: reason}
}

func (r Result[T]) Data() T        { return r.data }
func (r Result[T]) IsEmpty() bool  { return r.empty }
func (r Result[T]) Reason() string { return r.reason }

// MarshalJSON emits only the payload.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.data)
}
