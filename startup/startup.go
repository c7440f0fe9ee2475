// Package startup wires the brain's serial port into the program's standard
// streams. It is imported early by target programs, everything else builds
// on the streams it publishes.
package startup

import (
	"io"

	"github.com/vexide/vexide/drivers"
	"github.com/vexide/vexide/drivers/serial"
	"github.com/vexide/vexide/vexos"
)

// Bridge is the result of Init: the live serial system and the stdio
// channel bound to the standard streams.
type Bridge struct {
	Sys   *vexos.System
	Stdio *serial.Channel
}

// Init builds the serial system on top of port and registers the stdio
// channel's callbacks on the shared standard stream. It must run before any
// standard I/O happens; programs on the brain call it from an init function
// with the USB CDC device.
func Init(port io.ReadWriter) *Bridge {
	sys := vexos.NewSystem(port)
	ch := serial.Stdio(sys)
	ch.BindStdio()
	return &Bridge{Sys: sys, Stdio: ch}
}

// SystemWriter returns the write hook for the runtime's low-level output
// (print, panic), bypassing stream buffering but sharing the transmit FIFO.
func (b *Bridge) SystemWriter() drivers.SystemWriter {
	return drivers.NewSystemWriter(b.Stdio)
}
