// File: facade/capi.go
// Package facade exposes the serial ring buffer behind a flat,
// handle-indexed boundary shaped like the original extern "C" API
// (original_source/src/cpp/Api.cpp): create/release a buffer by handle,
// then query or mutate it through the handle rather than a pointer.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This package is boundary glue, not the hard part of the library: it
// carries no ring buffer logic of its own, only the handle bookkeeping
// a C-ABI caller would otherwise do with raw pointers. Unlike the
// pointer the original API handed back, a released handle's stray
// reuse here is a safe no-op rather than a use-after-free.

package facade

import (
	"sync"
	"sync/atomic"

	"github.com/momentics/bytering/api"
	"github.com/momentics/bytering/core/ring"
)

// Handle identifies a serial ring buffer across the façade boundary, in
// place of the original API's raw RingBuffer* pointer.
type Handle uint64

var (
	registry   sync.Map // Handle -> *ring.SerialRingBuffer
	nextHandle atomic.Uint64
)

// CreateRingBuffer allocates a serial ring buffer and returns a handle
// to it, or the zero Handle if capacity is invalid (the C ABI this
// mirrors has no room for an error return; an invalid handle behaves
// exactly like a released one). Equivalent to the original's
// create_ring_buffer(capacity).
func CreateRingBuffer(capacity int) Handle {
	rb, err := ring.NewSerialRingBuffer(capacity)
	if err != nil {
		return Handle(0)
	}
	h := Handle(nextHandle.Add(1))
	registry.Store(h, rb)
	return h
}

// ReleaseRingBuffer releases the ring buffer identified by h. Releasing
// an unknown or already-released handle is a no-op. Equivalent to the
// original's release_ring_buffer(handle).
func ReleaseRingBuffer(h Handle) {
	registry.Delete(h)
}

func lookup(h Handle) *ring.SerialRingBuffer {
	v, ok := registry.Load(h)
	if !ok {
		return nil
	}
	return v.(*ring.SerialRingBuffer)
}

// RingBufferGetBufferSize returns B for h, or 0 for an unknown handle.
// Equivalent to the original's ring_buffer_get_buffer_size(handle).
func RingBufferGetBufferSize(h Handle) int {
	rb := lookup(h)
	if rb == nil {
		return 0
	}
	return rb.BufferSize()
}

// RingBufferGetCount returns the live byte count for h, or 0 for an
// unknown handle. Equivalent to the original's
// ring_buffer_get_count(handle).
func RingBufferGetCount(h Handle) int {
	rb := lookup(h)
	if rb == nil {
		return 0
	}
	return rb.Count()
}

// RingBufferTryBulkEnqueue copies data into the ring buffer identified
// by h. Equivalent to the original's
// ring_buffer_try_bulk_enqueue(handle, pointer, length).
func RingBufferTryBulkEnqueue(h Handle, data []byte) bool {
	rb := lookup(h)
	if rb == nil {
		return false
	}
	return rb.TryBulkEnqueue(api.NewSpan(data))
}

// RingBufferTryBulkDequeue copies out of the ring buffer identified by
// h into data. Equivalent to the original's
// ring_buffer_try_bulk_dequeue(handle, pointer, length).
func RingBufferTryBulkDequeue(h Handle, data []byte) bool {
	rb := lookup(h)
	if rb == nil {
		return false
	}
	return rb.TryBulkDequeue(api.NewSpan(data))
}
