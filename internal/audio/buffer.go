package audio

import (
	"sync"
)

// RingBuffer is a circular byte buffer between a producer (synthesis) and
// the playback device callback. It is safe for one writer and one reader
// running concurrently.
type RingBuffer struct {
	mu     sync.Mutex
	buffer []byte
	start  int
	length int
}

// NewRingBuffer creates a new ring buffer with the specified size in bytes
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		buffer: make([]byte, size),
	}
}

// Write copies as much of data as fits and returns the number of bytes
// written. It never blocks.
func (rb *RingBuffer) Write(data []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.buffer)
	written := 0
	for written < len(data) && rb.length < size {
		end := (rb.start + rb.length) % size
		span := size - end
		if free := size - rb.length; span > free {
			span = free
		}
		n := copy(rb.buffer[end:end+span], data[written:])
		rb.length += n
		written += n
	}
	return written
}

// Read reads up to len(data) bytes from the buffer
// Returns the number of bytes read
func (rb *RingBuffer) Read(data []byte) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	size := len(rb.buffer)
	read := 0
	for read < len(data) && rb.length > 0 {
		span := size - rb.start
		if span > rb.length {
			span = rb.length
		}
		n := copy(data[read:], rb.buffer[rb.start:rb.start+span])
		rb.start = (rb.start + n) % size
		rb.length -= n
		read += n
	}
	return read
}

// Available returns the number of bytes available to read
func (rb *RingBuffer) Available() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.length
}

// Free returns the number of bytes available to write
func (rb *RingBuffer) Free() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return len(rb.buffer) - rb.length
}

// Reset clears the buffer
func (rb *RingBuffer) Reset() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.start = 0
	rb.length = 0
}

// Size returns the total size of the buffer
func (rb *RingBuffer) Size() int {
	return len(rb.buffer)
}

// IsEmpty returns true if the buffer is empty
func (rb *RingBuffer) IsEmpty() bool {
	return rb.Available() == 0
}
