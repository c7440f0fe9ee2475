// Package serial implements buffered access to the brain's serial channels
// and supplies the transport callbacks of the standard streams.
package serial

import (
	"errors"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/vexide/vexide/stdio"
	"github.com/vexide/vexide/vexos"
)

var ErrFlushTimeout = errors.New("serial: flush timeout")

// Channel wraps one VEXos serial channel as an io.ReadWriter with explicit
// flushing. Reads and writes never block on the peer, only Flush waits for
// the transmit FIFO to empty.
type Channel struct {
	sys *vexos.System
	ch  int
	mtx sync.Mutex
}

func NewChannel(sys *vexos.System, ch int) *Channel {
	return &Channel{sys: sys, ch: ch}
}

// Stdio returns the channel carrying standard I/O.
func Stdio(sys *vexos.System) *Channel {
	return NewChannel(sys, vexos.ChannelStdio)
}

// Write buffers p for transmission, flushing whenever the FIFO lacks space
// for the next chunk. Writes of more than one FIFO worth are split.
func (v *Channel) Write(p []byte) (n int, err error) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	for len(p) > 0 {
		chunk := p
		if len(chunk) > vexos.SerialBufferSize {
			chunk = chunk[:vexos.SerialBufferSize]
		}
		if v.sys.SerialWriteFree(v.ch) < len(chunk) {
			if err = v.flush(); err != nil {
				return
			}
		}
		nn := v.sys.SerialWriteBuffer(v.ch, chunk)
		if nn < 0 {
			return n, errors.New("serial: invalid channel")
		}
		n += nn
		p = p[nn:]

		// A short FIFO write here would make the output
		// non-contiguous, bail out instead.
		if nn != len(chunk) {
			return n, io.ErrShortWrite
		}
	}
	return
}

// Read drains the bytes currently received on the channel. It returns io.EOF
// when none are available after a round of background processing. The port's
// read side must honor the [vexos.FIFO.Fill] contract, returning (0, io.EOF)
// instead of blocking.
func (v *Channel) Read(p []byte) (n int, err error) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	for retry := true; ; retry = false {
		for n < len(p) {
			c := v.sys.SerialReadChar(v.ch)
			if c < 0 {
				break
			}
			p[n] = byte(c)
			n++
		}
		if n > 0 || !retry {
			break
		}
		v.sys.BackgroundProcessing()
	}
	if n == 0 {
		return 0, io.EOF
	}
	return
}

// Flush drains the transmit FIFO to the port. It only ever writes, a port
// with a blocking Read cannot stall it.
func (v *Channel) Flush() error {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.flush()
}

func (v *Channel) flush() error {
	start := time.Now()
	for v.sys.SerialWriteFree(v.ch) != vexos.SerialBufferSize {
		v.sys.DrainTransmit()
		if time.Since(start) > time.Second {
			return ErrFlushTimeout
		}
		runtime.Gosched()
	}
	return nil
}

// BindStdio registers the channel's callbacks on the shared standard stream,
// completing the bridge between the channel and the C runtime's stdio.
func (v *Channel) BindStdio() {
	stdio.Setup(v.putc, v.getc, v.flushc)
}

func (v *Channel) putc(c byte, _ *stdio.Stream) int {
	if v.sys.SerialWriteFree(v.ch) == 0 {
		if v.Flush() != nil {
			return stdio.EOF
		}
	}
	if v.sys.SerialWriteChar(v.ch, c) < 0 {
		return stdio.EOF
	}
	return int(c)
}

func (v *Channel) getc(_ *stdio.Stream) int {
	c := v.sys.SerialReadChar(v.ch)
	if c < 0 {
		v.sys.BackgroundProcessing()
		c = v.sys.SerialReadChar(v.ch)
	}
	if c < 0 {
		return stdio.EOF
	}
	return c
}

func (v *Channel) flushc(_ *stdio.Stream) int {
	if v.Flush() != nil {
		return stdio.EOF
	}
	return 0
}
