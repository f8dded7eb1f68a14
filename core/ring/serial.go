// File: core/ring/serial.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SerialRingBuffer is a bounded byte ring buffer for callers that
// guarantee serial (single-goroutine) access. No synchronization, no
// atomics — the low-overhead counterpart to ConcurrentRingBuffer.
// Ported from the teacher's power-of-two sizing idiom
// (core/concurrency/ring.go's NewRingBuffer) and SignalScatter::RingBuffer
// in original_source/src/cpp/RingBuffer.cpp.

package ring

import (
	"github.com/momentics/bytering/api"
	"github.com/momentics/bytering/internal/diag"
)

// SerialRingBuffer is a fixed, power-of-two-capacity byte ring buffer
// with no internal synchronization.
type SerialRingBuffer struct {
	buf     []byte
	mask    uint64
	bufSize uint64

	enqueuePos uint64
	dequeuePos uint64

	sink api.DiagnosticSink
}

var _ api.BoundedByteRing = (*SerialRingBuffer)(nil)

// NewSerialRingBuffer allocates a serial ring buffer with capacity
// rounded up to the next power of two, reporting overflow/underflow to
// the process-wide default diagnostic sink. capacity must be >= 1.
func NewSerialRingBuffer(capacity int) (*SerialRingBuffer, error) {
	return NewSerialRingBufferWithSink(capacity, diag.Default)
}

// NewSerialRingBufferWithSink is NewSerialRingBuffer with an explicit
// diagnostic sink, for callers that don't want the shared default.
func NewSerialRingBufferWithSink(capacity int, sink api.DiagnosticSink) (*SerialRingBuffer, error) {
	if capacity < 1 {
		return nil, api.NewError(api.ErrCodeInvalidArgument, "ring: capacity must be >= 1").
			Wrap(api.ErrInvalidArgument).
			WithContext("capacity", capacity)
	}
	size := nextPowerOfTwo(capacity)
	return &SerialRingBuffer{
		buf:     make([]byte, size),
		mask:    uint64(size - 1),
		bufSize: uint64(size),
		sink:    sink,
	}, nil
}

// BufferSize returns B, the fixed power-of-two capacity.
func (r *SerialRingBuffer) BufferSize() int {
	return int(r.bufSize)
}

// Count returns the number of live bytes currently held.
func (r *SerialRingBuffer) Count() int {
	return int(r.enqueuePos - r.dequeuePos)
}

// TryBulkEnqueue copies src into the ring if it fits, advancing the
// enqueue position. On overflow, the ring is left untouched, a
// diagnostic line is emitted, and false is returned.
func (r *SerialRingBuffer) TryBulkEnqueue(src api.Span) bool {
	length := uint64(src.Len())
	count := r.enqueuePos - r.dequeuePos
	if length > r.bufSize-count {
		r.sink.Overflow(int(length), int(r.bufSize), int(count))
		return false
	}
	p := r.enqueuePos
	for i := uint64(0); i < length; i++ {
		r.buf[(p+i)&r.mask] = src.Data[i]
	}
	r.enqueuePos = p + length
	return true
}

// TryBulkEnqueueByte4 behaves exactly like TryBulkEnqueue, but rejects
// any span whose length isn't 4. It exists only to mirror the
// original's specialized entry points; it carries no distinct
// semantics and performs no loop unrolling of its own.
func (r *SerialRingBuffer) TryBulkEnqueueByte4(src api.Span) bool {
	if src.Len() != 4 {
		return false
	}
	return r.TryBulkEnqueue(src)
}

// TryBulkEnqueueByte8 is TryBulkEnqueueByte4's 8-byte counterpart.
func (r *SerialRingBuffer) TryBulkEnqueueByte8(src api.Span) bool {
	if src.Len() != 8 {
		return false
	}
	return r.TryBulkEnqueue(src)
}

// TryBulkEnqueueByte16 is TryBulkEnqueueByte4's 16-byte counterpart.
func (r *SerialRingBuffer) TryBulkEnqueueByte16(src api.Span) bool {
	if src.Len() != 16 {
		return false
	}
	return r.TryBulkEnqueue(src)
}

// TryBulkEnqueueByte32 is TryBulkEnqueueByte4's 32-byte counterpart.
func (r *SerialRingBuffer) TryBulkEnqueueByte32(src api.Span) bool {
	if src.Len() != 32 {
		return false
	}
	return r.TryBulkEnqueue(src)
}

// TryBulkDequeue copies len(dst.Data) bytes from the logical head into
// dst, advancing the dequeue position. Unlike the original source,
// which left an under-supplied dequeue as an unchecked precondition
// violation, this promotes it to the same checked-failure shape as
// enqueue overflow (spec.md §9's open design note).
func (r *SerialRingBuffer) TryBulkDequeue(dst api.Span) bool {
	length := uint64(dst.Len())
	count := r.enqueuePos - r.dequeuePos
	if length > count {
		r.sink.Underflow(int(length))
		return false
	}
	p := r.dequeuePos
	for i := uint64(0); i < length; i++ {
		dst.Data[i] = r.buf[(p+i)&r.mask]
	}
	r.dequeuePos = p + length
	return true
}

// TryBulkDequeueByte4 behaves exactly like TryBulkDequeue, but rejects
// any span whose length isn't 4.
func (r *SerialRingBuffer) TryBulkDequeueByte4(dst api.Span) bool {
	if dst.Len() != 4 {
		return false
	}
	return r.TryBulkDequeue(dst)
}

// TryBulkDequeueByte8 is TryBulkDequeueByte4's 8-byte counterpart.
func (r *SerialRingBuffer) TryBulkDequeueByte8(dst api.Span) bool {
	if dst.Len() != 8 {
		return false
	}
	return r.TryBulkDequeue(dst)
}

// TryBulkDequeueByte16 is TryBulkDequeueByte4's 16-byte counterpart.
func (r *SerialRingBuffer) TryBulkDequeueByte16(dst api.Span) bool {
	if dst.Len() != 16 {
		return false
	}
	return r.TryBulkDequeue(dst)
}

// TryBulkDequeueByte32 is TryBulkDequeueByte4's 32-byte counterpart.
func (r *SerialRingBuffer) TryBulkDequeueByte32(dst api.Span) bool {
	if dst.Len() != 32 {
		return false
	}
	return r.TryBulkDequeue(dst)
}

// Clear discards all live bytes without scrubbing the underlying array.
func (r *SerialRingBuffer) Clear() {
	r.ClearN(r.Count())
}

// ClearN discards up to n live bytes from the head.
func (r *SerialRingBuffer) ClearN(n int) {
	count := int(r.enqueuePos - r.dequeuePos)
	if n > count {
		n = count
	}
	if n < 0 {
		n = 0
	}
	r.dequeuePos += uint64(n)
}

// Slice materializes a zero-copy, at-most-two-segment view of the
// live payload from logical offset start to the tail, equivalent to
// SliceN(start, Count()-start).
func (r *SerialRingBuffer) Slice(start int) (first, second api.Span) {
	return r.SliceN(start, r.Count()-start)
}

// SliceN materializes a zero-copy, at-most-two-segment view of
// [start, start+length) of the live payload. Both returned spans
// reference the ring's own backing array; callers must not retain them
// past the next mutating call.
func (r *SerialRingBuffer) SliceN(start, length int) (first, second api.Span) {
	head := r.dequeuePos
	startIdx := int((head + uint64(start)) & r.mask)

	// Fits contiguously from startIdx to B without crossing the wrap
	// point (spec.md §4.2's precise condition — a raw modular index
	// comparison misfires when length == B, see DESIGN.md).
	if startIdx+length <= int(r.bufSize) {
		return api.NewSpan(r.buf[startIdx : startIdx+length]), api.Span{}
	}

	firstLen := int(r.bufSize) - startIdx
	secondLen := length - firstLen
	return api.NewSpan(r.buf[startIdx : startIdx+firstLen]), api.NewSpan(r.buf[0:secondLen])
}
