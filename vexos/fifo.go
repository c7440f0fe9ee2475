package vexos

import (
	"io"
	"sync"

	"github.com/vexide/vexide/debug"
)

// SerialBufferSize is the capacity of each serial FIFO in bytes.
const SerialBufferSize = 2048

// FIFO is a fixed capacity byte ring buffer. All operations are nonblocking
// and safe for concurrent use.
type FIFO struct {
	mtx  sync.Mutex
	buf  [SerialBufferSize]byte
	r, w int
	n    int
}

// Push appends one byte. It reports false if the buffer is full.
func (f *FIFO) Push(c byte) bool {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.n == len(f.buf) {
		return false
	}
	f.buf[f.w] = c
	f.w = (f.w + 1) % len(f.buf)
	f.n++
	return true
}

// Write appends as much of p as fits and returns the number of bytes
// buffered.
func (f *FIFO) Write(p []byte) int {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	n := 0
	for _, c := range p {
		if f.n == len(f.buf) {
			break
		}
		f.buf[f.w] = c
		f.w = (f.w + 1) % len(f.buf)
		f.n++
		n++
	}
	return n
}

// Pop removes and returns the oldest byte, or -1 if the buffer is empty.
func (f *FIFO) Pop() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.n == 0 {
		return -1
	}
	c := f.buf[f.r]
	f.r = (f.r + 1) % len(f.buf)
	f.n--
	return int(c)
}

// Peek returns the oldest byte without removing it, or -1 if the buffer is
// empty.
func (f *FIFO) Peek() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.n == 0 {
		return -1
	}
	return int(f.buf[f.r])
}

// Len returns the number of buffered bytes.
func (f *FIFO) Len() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.n
}

// Free returns the remaining capacity.
func (f *FIFO) Free() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return len(f.buf) - f.n
}

// Drain writes buffered bytes to w until the buffer is empty or w stops
// accepting data. Bytes not accepted by w stay buffered.
func (f *FIFO) Drain(w io.Writer) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	for f.n > 0 {
		end := f.r + f.n
		if end > len(f.buf) {
			end = len(f.buf)
		}
		n, err := w.Write(f.buf[f.r:end])
		debug.Assert(n <= end-f.r, "writer overran drain slice")
		f.r = (f.r + n) % len(f.buf)
		f.n -= n
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

// Fill reads from r into the remaining capacity. It stops when the buffer is
// full or r has no data. A reader that would block should return (0, io.EOF)
// instead.
func (f *FIFO) Fill(r io.Reader) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	for f.n < len(f.buf) {
		end := f.w + (len(f.buf) - f.n)
		if end > len(f.buf) {
			end = len(f.buf)
		}
		n, err := r.Read(f.buf[f.w:end])
		debug.Assert(n <= end-f.w, "reader overran fill slice")
		f.w = (f.w + n) % len(f.buf)
		f.n += n
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
	return nil
}
