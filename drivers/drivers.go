// Builds upon the vexos package to provide common interfaces and higher-level
// features for the brain's peripherals.
package drivers

import "io"

// FIXME SystemWriter needs go:nosplit pragma
type SystemWriter func(int, []byte) int

// Returns a SystemWriter from an io.Writer for rtos.SetSystemWriter(). The
// runtime routes print() and panic output through it, on the brain that is
// usually the stdio serial channel.
func NewSystemWriter(w io.Writer) SystemWriter {
	return func(fd int, p []byte) int {
		n, _ := w.Write(p)
		return n
	}
}
