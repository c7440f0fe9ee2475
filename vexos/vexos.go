// Package vexos implements the serial interface of the brain's operating
// system.
//
// VEXos exposes buffered serial channels multiplexed over the brain's USB
// port. Writes and reads go through per channel FIFOs that are serviced by
// background processing, exactly like the system calls of the real SDK. All
// operations are nonblocking and report failure with a -1 sentinel.
package vexos

import "io"

// Serial channels. Channel 1 carries standard I/O, channel 2 is free for
// user protocols.
const (
	ChannelStdio = 1
	ChannelUser  = 2

	numChannels = 3
)

// System owns the serial FIFOs of the brain and the transports they are
// bound to.
type System struct {
	ports [numChannels]io.ReadWriter
	tx    [numChannels]FIFO
	rx    [numChannels]FIFO
}

// NewSystem returns a System with the stdio channel bound to port,
// typically the USB CDC device.
func NewSystem(port io.ReadWriter) *System {
	s := &System{}
	s.ports[ChannelStdio] = port
	return s
}

// BindChannel binds ch to port. Unbound channels buffer writes but never
// deliver them.
func (s *System) BindChannel(ch int, port io.ReadWriter) {
	if !valid(ch) {
		return
	}
	s.ports[ch] = port
}

func valid(ch int) bool {
	return ch > 0 && ch < numChannels
}

// SerialWriteBuffer buffers p for transmission on ch and returns the number
// of bytes accepted, or -1 if ch is invalid.
func (s *System) SerialWriteBuffer(ch int, p []byte) int {
	if !valid(ch) {
		return -1
	}
	return s.tx[ch].Write(p)
}

// SerialWriteChar buffers a single byte on ch. It returns the byte on
// success and -1 if the FIFO is full or ch is invalid.
func (s *System) SerialWriteChar(ch int, c byte) int {
	if !valid(ch) {
		return -1
	}
	if !s.tx[ch].Push(c) {
		return -1
	}
	return int(c)
}

// SerialWriteFree returns the free space in ch's transmit FIFO, or -1 if ch
// is invalid.
func (s *System) SerialWriteFree(ch int) int {
	if !valid(ch) {
		return -1
	}
	return s.tx[ch].Free()
}

// SerialReadChar removes and returns the next received byte on ch, or -1 if
// none is available.
func (s *System) SerialReadChar(ch int) int {
	if !valid(ch) {
		return -1
	}
	return s.rx[ch].Pop()
}

// SerialPeekChar returns the next received byte on ch without consuming it,
// or -1 if none is available.
func (s *System) SerialPeekChar(ch int) int {
	if !valid(ch) {
		return -1
	}
	return s.rx[ch].Peek()
}

// DrainTransmit delivers the buffered transmit FIFOs of all bound channels
// to their ports. It never touches the port's read side, so it is safe to
// spin on with a port whose Read blocks.
func (s *System) DrainTransmit() {
	for ch := 1; ch < numChannels; ch++ {
		if port := s.ports[ch]; port != nil {
			s.tx[ch].Drain(port)
		}
	}
}

// BackgroundProcessing services all bound channels: transmit FIFOs are
// drained to their ports and receive FIFOs are topped up from them. The real
// system runs this from its housekeeping loop; drivers call it when they
// want received data. The receive side requires ports that return
// (0, io.EOF) instead of blocking, see [FIFO.Fill].
func (s *System) BackgroundProcessing() {
	s.DrainTransmit()
	for ch := 1; ch < numChannels; ch++ {
		if port := s.ports[ch]; port != nil {
			s.rx[ch].Fill(port)
		}
	}
}
