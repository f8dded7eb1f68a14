// Package api
// Author: momentics <momentics@gmail.com>
//
// Bounded byte ring buffer contract shared by the serial and concurrent
// ring buffer implementations in core/ring.

package api

// BoundedByteRing is the contract both the serial and concurrent ring
// buffers satisfy: fixed power-of-two capacity, bulk byte enqueue and
// dequeue, committed all-or-nothing at one operation.
type BoundedByteRing interface {
	// BufferSize returns B, the power-of-two capacity fixed at construction.
	BufferSize() int
	// Count returns the number of live bytes currently held.
	Count() int
	// TryBulkEnqueue copies src into the ring, or fails if src would overflow.
	TryBulkEnqueue(src Span) bool
	// TryBulkDequeue copies len(dst.Data) bytes from the ring's head into dst.
	TryBulkDequeue(dst Span) bool
	// Clear discards all live bytes.
	Clear()
	// ClearN discards up to n live bytes from the head.
	ClearN(n int)
}
