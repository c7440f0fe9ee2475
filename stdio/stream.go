// Package stdio implements the stream object shared by the three standard
// I/O handles on the V5 brain.
//
// It mirrors the buffered stream record a small embedded libc keeps for each
// open file: a one byte unget slot, a set of state flags and three callbacks
// that perform the actual transport I/O. The callbacks are owned by the
// embedding runtime and registered once with [Setup]; the package itself
// implements no transport.
package stdio

import "sync"

// EOF is returned by Putc, Getc, Ungetc and Flush to report failure or end
// of input. It matches the libc sentinel, all other results are
// non-negative.
const EOF = -1

// Callback signatures expected by the stream. A negative return value
// reports failure (Put, Flush) or no data (Get). The callbacks are invoked
// with the stream lock held.
type (
	PutFunc   func(c byte, s *Stream) int
	GetFunc   func(s *Stream) int
	FlushFunc func(s *Stream) int
)

// Stream state flags.
const (
	flagRead  uint8 = 1 << iota // ok to read
	flagWrite                   // ok to write
	flagErr                     // found error
	flagEOF                     // found EOF
)

// Stream tracks the buffering state of a standard I/O handle. The zero value
// is unusable, the only instance is the statically allocated one shared by
// Stdin, Stdout and Stderr.
type Stream struct {
	mtx sync.Mutex

	// unget holds the pushed back byte as c+1, zero means empty.
	unget uint16
	flags uint8

	put   PutFunc
	get   GetFunc
	flush FlushFunc
}

// Putc writes a single byte through the registered put callback. It returns
// the byte on success. On failure the error flag is raised and EOF returned.
func (s *Stream) Putc(c byte) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.flags&flagWrite == 0 {
		return EOF
	}
	if s.put == nil {
		panic("stdio: put callback not registered, missing Setup")
	}
	if s.put(c, s) < 0 {
		s.flags |= flagErr
		return EOF
	}
	return int(c)
}

// Getc returns the next byte from the stream, preferring a pushed back byte
// over the registered get callback. A negative callback result is surfaced
// unchanged as EOF and raises the EOF flag, no byte is synthesized.
func (s *Stream) Getc() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.flags&flagRead == 0 {
		return EOF
	}
	if s.unget != 0 {
		c := byte(s.unget - 1)
		s.unget = 0
		return int(c)
	}
	if s.get == nil {
		panic("stdio: get callback not registered, missing Setup")
	}
	v := s.get(s)
	if v < 0 {
		s.flags |= flagEOF
		return EOF
	}
	return v & 0xff
}

// Ungetc pushes c back onto the stream. Only a single byte of pushback
// is supported, a second push before the next Getc fails with EOF. A
// successful push clears the EOF flag.
func (s *Stream) Ungetc(c byte) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.flags&flagRead == 0 || s.unget != 0 {
		return EOF
	}
	s.unget = uint16(c) + 1
	s.flags &^= flagEOF
	return int(c)
}

// Flush forces buffered output to the transport via the registered flush
// callback. Returns 0 on success, EOF on failure.
func (s *Stream) Flush() int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.flush == nil {
		panic("stdio: flush callback not registered, missing Setup")
	}
	if s.flush(s) < 0 {
		s.flags |= flagErr
		return EOF
	}
	return 0
}

// Err reports whether a write or flush has failed since the last ClearErr.
func (s *Stream) Err() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.flags&flagErr != 0
}

// EOFSeen reports whether a read has hit end of input.
func (s *Stream) EOFSeen() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.flags&flagEOF != 0
}

// ClearErr resets the error and EOF flags.
func (s *Stream) ClearErr() {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.flags &^= flagErr | flagEOF
}
