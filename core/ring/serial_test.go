// File: core/ring/serial_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package ring_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/momentics/bytering/api"
	"github.com/momentics/bytering/core/ring"
)

func mustNewSerialRingBuffer(t *testing.T, capacity int) *ring.SerialRingBuffer {
	t.Helper()
	r, err := ring.NewSerialRingBuffer(capacity)
	if err != nil {
		t.Fatalf("NewSerialRingBuffer(%d) = %v", capacity, err)
	}
	return r
}

func TestSerialRingBuffer_CapacityRounding(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 5)
	if got := r.BufferSize(); got != 8 {
		t.Fatalf("BufferSize() = %d, want 8", got)
	}
	if got := r.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
}

func TestSerialRingBuffer_SingleRoundTrip(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 8)
	src := []byte{0x01, 0x02, 0x03, 0x04}
	if !r.TryBulkEnqueue(api.NewSpan(src)) {
		t.Fatal("TryBulkEnqueue failed")
	}
	if got := r.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}

	dst := make([]byte, 4)
	if !r.TryBulkDequeue(api.NewSpan(dst)) {
		t.Fatal("TryBulkDequeue failed")
	}
	if !bytes.Equal(dst, src) {
		t.Fatalf("dequeued %v, want %v", dst, src)
	}
	if got := r.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
}

func TestSerialRingBuffer_WrapAround(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 8)

	if !r.TryBulkEnqueue(api.NewSpan([]byte{1, 2, 3, 4, 5, 6})) {
		t.Fatal("initial enqueue failed")
	}
	drop := make([]byte, 4)
	if !r.TryBulkDequeue(api.NewSpan(drop)) {
		t.Fatal("dequeue failed")
	}
	if !r.TryBulkEnqueue(api.NewSpan([]byte{7, 8, 9, 10})) {
		t.Fatal("second enqueue failed")
	}

	first, second := r.SliceN(0, 6)
	if !bytes.Equal(first.Data, []byte{5, 6, 7, 8}) {
		t.Fatalf("first = %v, want [5 6 7 8]", first.Data)
	}
	if !bytes.Equal(second.Data, []byte{9, 10}) {
		t.Fatalf("second = %v, want [9 10]", second.Data)
	}

	out := make([]byte, 6)
	if !r.TryBulkDequeue(api.NewSpan(out)) {
		t.Fatal("final dequeue failed")
	}
	if !bytes.Equal(out, []byte{5, 6, 7, 8, 9, 10}) {
		t.Fatalf("dequeued %v, want [5 6 7 8 9 10]", out)
	}
}

func TestSerialRingBuffer_Overflow(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 4)
	if !r.TryBulkEnqueue(api.NewSpan([]byte{1, 2, 3, 4})) {
		t.Fatal("filling enqueue failed")
	}
	if r.TryBulkEnqueue(api.NewSpan([]byte{5})) {
		t.Fatal("overflowing enqueue unexpectedly succeeded")
	}
	if got := r.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4 (state must be unchanged on overflow)", got)
	}
	first, _ := r.SliceN(0, 4)
	if !bytes.Equal(first.Data, []byte{1, 2, 3, 4}) {
		t.Fatalf("underlying bytes changed after failed overflow: %v", first.Data)
	}
}

func TestSerialRingBuffer_Underflow(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 8)
	if !r.TryBulkEnqueue(api.NewSpan([]byte{1, 2})) {
		t.Fatal("enqueue failed")
	}
	dst := make([]byte, 4)
	if r.TryBulkDequeue(api.NewSpan(dst)) {
		t.Fatal("underflowing dequeue unexpectedly succeeded")
	}
	if got := r.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2 (state must be unchanged on underflow)", got)
	}
}

func TestSerialRingBuffer_SpecializedLengthRejection(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 16)
	if r.TryBulkEnqueueByte8(api.NewSpan(make([]byte, 7))) {
		t.Fatal("TryBulkEnqueueByte8 accepted a 7-byte span")
	}
	if got := r.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}

	if !r.TryBulkEnqueueByte8(api.NewSpan([]byte{1, 2, 3, 4, 5, 6, 7, 8})) {
		t.Fatal("TryBulkEnqueueByte8 rejected a valid 8-byte span")
	}
	dst := make([]byte, 8)
	if r.TryBulkDequeueByte4(api.NewSpan(dst[:8])) {
		t.Fatal("TryBulkDequeueByte4 accepted an 8-byte span")
	}
	if !r.TryBulkDequeueByte8(api.NewSpan(dst)) {
		t.Fatal("TryBulkDequeueByte8 rejected a valid 8-byte span")
	}
}

func TestSerialRingBuffer_Clear(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 8)
	r.TryBulkEnqueue(api.NewSpan([]byte{1, 2, 3, 4, 5, 6}))
	r.ClearN(2)
	if got := r.Count(); got != 4 {
		t.Fatalf("Count() = %d, want 4", got)
	}
	r.Clear()
	if got := r.Count(); got != 0 {
		t.Fatalf("Count() = %d, want 0", got)
	}
}

func TestSerialRingBuffer_InvalidCapacity(t *testing.T) {
	r, err := ring.NewSerialRingBuffer(0)
	if err == nil {
		t.Fatal("NewSerialRingBuffer(0) unexpectedly succeeded")
	}
	if r != nil {
		t.Fatalf("NewSerialRingBuffer(0) returned non-nil buffer on error: %v", r)
	}
	if !errors.Is(err, api.ErrInvalidArgument) {
		t.Fatalf("err = %v, want errors.Is(err, api.ErrInvalidArgument)", err)
	}
}

func TestSerialRingBuffer_SliceReconstruction(t *testing.T) {
	r := mustNewSerialRingBuffer(t, 16)
	payload := []byte{10, 11, 12, 13, 14, 15, 16, 17, 18, 19}
	r.TryBulkEnqueue(api.NewSpan(payload))

	for start := 0; start <= len(payload); start++ {
		for length := 0; start+length <= len(payload); length++ {
			first, second := r.SliceN(start, length)
			got := append(append([]byte{}, first.Data...), second.Data...)
			want := payload[start : start+length]
			if !bytes.Equal(got, want) {
				t.Fatalf("SliceN(%d, %d) = %v, want %v", start, length, got, want)
			}
		}
	}
}
