// Package fifo implements the chunked byte queue used as the handoff
// buffer between a stream's producer and its consumer (§4.A). It is
// accessed only from the single I/O goroutine described in §5 of
// SPEC_FULL.md; no internal locking is required or provided.
/*
 * Copyright (c) 2024, Cloud Robotics Project. All rights reserved.
 */
package fifo

// Buffer is an ordered byte queue. Storage is a list of segments so that
// Push never has to copy existing data; segments are opaque to callers
// and are dropped as soon as they are fully consumed.
type Buffer struct {
	segs []seg
	size int
}

type seg struct {
	b   []byte
	off int
}

// New returns an empty Buffer.
func New() *Buffer { return &Buffer{} }

// Push appends data to the back of the queue. The slice is retained, not
// copied; callers must not mutate it afterwards.
func (f *Buffer) Push(data []byte) {
	if len(data) == 0 {
		return
	}
	f.segs = append(f.segs, seg{b: data})
	f.size += len(data)
}

// Pop removes and returns up to limit bytes from the front of the queue,
// taking from as many segments as needed. The returned length n
// satisfies n <= limit; the remainder stays in place for the next Pop.
func (f *Buffer) Pop(limit int) (chunk []byte, n int) {
	for n < limit && len(f.segs) > 0 {
		s := &f.segs[0]
		part := s.b[s.off:]
		if len(part) > limit-n {
			part = part[:limit-n]
		}
		if n == 0 {
			chunk = part
		} else {
			chunk = append(chunk[:n:n], part...)
		}
		n += len(part)
		s.off += len(part)
		if s.off == len(s.b) {
			f.segs = f.segs[1:]
		}
	}
	f.size -= n
	return chunk, n
}

// Len reports the number of unread bytes currently queued.
func (f *Buffer) Len() int { return f.size }

// Empty reports whether the queue currently holds no unread bytes.
func (f *Buffer) Empty() bool { return f.size == 0 }

// Bytes drains the entire queue and returns it as one contiguous slice.
// Used by end-receivers handing a fully-assembled message to a
// deserializer.
func (f *Buffer) Bytes() []byte {
	if f.size == 0 {
		return nil
	}
	out := make([]byte, 0, f.size)
	for _, s := range f.segs {
		out = append(out, s.b[s.off:]...)
	}
	f.segs = nil
	f.size = 0
	return out
}
