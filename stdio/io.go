package stdio

import (
	"errors"
	"io"
)

// ErrStream is returned by Write when the underlying put or flush callback
// failed and the stream's error flag was raised.
var ErrStream = errors.New("stdio: stream error")

// Write implements io.Writer on top of Putc.
func (s *Stream) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if s.Putc(c) == EOF {
			return n, ErrStream
		}
		n++
	}
	return n, nil
}

// WriteByte implements io.ByteWriter.
func (s *Stream) WriteByte(c byte) error {
	if s.Putc(c) == EOF {
		return ErrStream
	}
	return nil
}

// Read implements io.Reader on top of Getc. It returns the bytes currently
// available and io.EOF when the transport reports no data at all.
func (s *Stream) Read(p []byte) (n int, err error) {
	for n < len(p) {
		v := s.Getc()
		if v == EOF {
			if n == 0 {
				return 0, io.EOF
			}
			break
		}
		p[n] = byte(v)
		n++
	}
	return n, nil
}

// ReadByte implements io.ByteReader.
func (s *Stream) ReadByte() (byte, error) {
	v := s.Getc()
	if v == EOF {
		return 0, io.EOF
	}
	return byte(v), nil
}

// Sync flushes buffered output, reporting failure as ErrStream.
func (s *Stream) Sync() error {
	if s.Flush() == EOF {
		return ErrStream
	}
	return nil
}
