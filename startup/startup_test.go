package startup_test

import (
	"bytes"
	"testing"

	"github.com/vexide/vexide/startup"
	"github.com/vexide/vexide/stdio"
)

type duplex struct {
	in  bytes.Buffer
	out bytes.Buffer
}

func (d *duplex) Read(p []byte) (int, error)  { return d.in.Read(p) }
func (d *duplex) Write(p []byte) (int, error) { return d.out.Write(p) }

func TestInitBindsStdio(t *testing.T) {
	port := &duplex{}
	b := startup.Init(port)

	stdio.Stdout.ClearErr()
	stdio.Stdout.Putc('!')
	if stdio.Stdout.Flush() != 0 {
		t.Fatal("flush failed")
	}
	if port.out.String() != "!" {
		t.Fatalf("port received %q", port.out.String())
	}

	w := b.SystemWriter()
	if n := w(2, []byte("panic: oops\n")); n != 12 {
		t.Fatalf("system writer wrote %d bytes", n)
	}
	b.Stdio.Flush()
	if port.out.String() != "!panic: oops\n" {
		t.Fatalf("port received %q", port.out.String())
	}
}
