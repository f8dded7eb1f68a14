// Package api
// Author: momentics <momentics@gmail.com>
//
// Non-owning byte span boundary type for the bytering library.

package api

// Span is a non-owning, contiguous byte range. A Go slice header is
// already a (pointer, length, capacity) triple over externally owned
// storage, so Span wraps one rather than re-deriving pointer/length
// fields by hand; the zero value Span{} is the empty span.
type Span struct {
	Data []byte
}

// NewSpan wraps data as a Span. data is not copied; the caller retains
// ownership of the backing array.
func NewSpan(data []byte) Span {
	return Span{Data: data}
}

// Len returns the span's length in bytes.
func (s Span) Len() int {
	return len(s.Data)
}

// IsEmpty reports whether the span carries zero bytes.
func (s Span) IsEmpty() bool {
	return len(s.Data) == 0
}
