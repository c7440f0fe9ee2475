// Package link implements robot-to-robot communication over the radio.
//
// A link is one half of a unidirectional connection: the transmitter sends
// framed messages, the receiver validates and unwraps them. Failures are
// additionally recorded in the calling task's error cell, matching the
// convention of the C SDK this mirrors.
package link

import (
	"errors"
	"io"

	"github.com/vexide/vexide/errno"
)

// MaxMessage is the largest payload of a single radio frame.
const MaxMessage = 512

var (
	ErrMode     = errors.New("link: wrong link mode")
	ErrTooLong  = errors.New("link: message exceeds frame size")
	ErrChecksum = errors.New("link: checksum mismatch")
	ErrNoData   = errors.New("link: no frame available")
)

type Mode uint8

const (
	Receiver Mode = iota
	Transmitter
)

// Link is one endpoint of a radio connection. The id names the connection,
// both peers must open the same id.
type Link struct {
	port io.ReadWriter
	id   string
	mode Mode
	rbuf []byte
}

func Open(port io.ReadWriter, id string, mode Mode) *Link {
	return &Link{port: port, id: id, mode: mode}
}

func (l *Link) ID() string { return l.id }

// Send frames p and transmits it. It reports the payload size written.
func (l *Link) Send(p []byte) (int, error) {
	if l.mode != Transmitter {
		errno.Set(errno.EBADF)
		return 0, ErrMode
	}
	if len(p) > MaxMessage {
		errno.Set(errno.EINVAL)
		return 0, ErrTooLong
	}
	if _, err := l.port.Write(frame(p)); err != nil {
		errno.Set(errno.EIO)
		return 0, err
	}
	return len(p), nil
}

// Recv reads the next frame into p and returns its payload size. It resyncs
// on garbage between frames and fails with ErrNoData when no complete frame
// has arrived yet.
func (l *Link) Recv(p []byte) (int, error) {
	if l.mode != Receiver {
		errno.Set(errno.EBADF)
		return 0, ErrMode
	}
	l.fill()
	for {
		payload, consumed, err := parseFrame(l.rbuf)
		if err != nil {
			l.rbuf = l.rbuf[consumed:]
			errno.Set(errno.EIO)
			return 0, err
		}
		if payload != nil {
			n := copy(p, payload)
			l.rbuf = l.rbuf[consumed:]
			return n, nil
		}
		if consumed == 0 {
			errno.Set(errno.EAGAIN)
			return 0, ErrNoData
		}
		l.rbuf = l.rbuf[consumed:]
	}
}

// fill appends the port's currently readable bytes to the reassembly
// buffer. A single read per call keeps blocking ports usable: the caller
// retries Recv until a frame is complete.
func (l *Link) fill() {
	var tmp [MaxMessage]byte
	n, _ := l.port.Read(tmp[:])
	l.rbuf = append(l.rbuf, tmp[:n]...)
}

// Write implements io.Writer on a transmitting link.
func (l *Link) Write(p []byte) (int, error) { return l.Send(p) }

// Read implements io.Reader on a receiving link.
func (l *Link) Read(p []byte) (int, error) {
	n, err := l.Recv(p)
	if err == ErrNoData {
		err = io.EOF
	}
	return n, err
}
