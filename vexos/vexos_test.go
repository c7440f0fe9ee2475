package vexos_test

import (
	"bytes"
	"testing"

	"github.com/vexide/vexide/vexos"
)

func TestFIFOOrder(t *testing.T) {
	var f vexos.FIFO

	if f.Pop() != -1 || f.Peek() != -1 {
		t.Fatal("empty FIFO must report -1")
	}
	for i := 0; i < 100; i++ {
		if !f.Push(byte(i)) {
			t.Fatal("push failed on non-full FIFO")
		}
	}
	if f.Len() != 100 || f.Free() != vexos.SerialBufferSize-100 {
		t.Fatalf("Len/Free = %d/%d", f.Len(), f.Free())
	}
	if f.Peek() != 0 {
		t.Fatal("peek should not consume")
	}
	for i := 0; i < 100; i++ {
		if c := f.Pop(); c != i {
			t.Fatalf("Pop() = %d, want %d", c, i)
		}
	}
}

func TestFIFOFull(t *testing.T) {
	var f vexos.FIFO

	big := make([]byte, vexos.SerialBufferSize+10)
	if n := f.Write(big); n != vexos.SerialBufferSize {
		t.Fatalf("Write accepted %d bytes, want %d", n, vexos.SerialBufferSize)
	}
	if f.Push(0xff) {
		t.Fatal("push succeeded on full FIFO")
	}
}

func TestFIFOWrapAround(t *testing.T) {
	var f vexos.FIFO
	var out bytes.Buffer

	// Force the ring to wrap by draining and refilling past capacity.
	chunk := make([]byte, vexos.SerialBufferSize*3/4)
	for i := range chunk {
		chunk[i] = byte(i)
	}
	for round := 0; round < 4; round++ {
		out.Reset()
		if n := f.Write(chunk); n != len(chunk) {
			t.Fatalf("round %d: Write accepted %d bytes", round, n)
		}
		if err := f.Drain(&out); err != nil {
			t.Fatalf("round %d: Drain: %v", round, err)
		}
		if !bytes.Equal(out.Bytes(), chunk) {
			t.Fatalf("round %d: drained data mismatch", round)
		}
	}
}

func TestFIFOFill(t *testing.T) {
	var f vexos.FIFO

	src := bytes.NewBufferString("incoming")
	if err := f.Fill(src); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	f.Drain(&out)
	if out.String() != "incoming" {
		t.Fatalf("got %q", out.String())
	}
}

func TestSerialSentinels(t *testing.T) {
	sys := vexos.NewSystem(&bytes.Buffer{})

	for _, ch := range []int{-1, 0, 3, 99} {
		if sys.SerialWriteBuffer(ch, []byte("x")) != -1 {
			t.Errorf("SerialWriteBuffer(%d) accepted data", ch)
		}
		if sys.SerialWriteChar(ch, 'x') != -1 {
			t.Errorf("SerialWriteChar(%d) accepted data", ch)
		}
		if sys.SerialReadChar(ch) != -1 || sys.SerialPeekChar(ch) != -1 {
			t.Errorf("read on channel %d did not report -1", ch)
		}
		if sys.SerialWriteFree(ch) != -1 {
			t.Errorf("SerialWriteFree(%d) did not report -1", ch)
		}
	}
}

// duplex is a test transport with separate host-to-brain and brain-to-host
// directions.
type duplex struct {
	in  bytes.Buffer // read by the brain
	out bytes.Buffer // written by the brain
}

func (d *duplex) Read(p []byte) (int, error)  { return d.in.Read(p) }
func (d *duplex) Write(p []byte) (int, error) { return d.out.Write(p) }

func TestSerialRoundTrip(t *testing.T) {
	port := &duplex{}
	sys := vexos.NewSystem(port)

	msg := []byte("hello brain")
	if n := sys.SerialWriteBuffer(vexos.ChannelStdio, msg); n != len(msg) {
		t.Fatalf("buffered %d bytes, want %d", n, len(msg))
	}
	if free := sys.SerialWriteFree(vexos.ChannelStdio); free != vexos.SerialBufferSize-len(msg) {
		t.Fatalf("SerialWriteFree = %d", free)
	}

	// Nothing reaches the port before background processing runs.
	if port.out.Len() != 0 {
		t.Fatal("write bypassed the FIFO")
	}
	sys.BackgroundProcessing()
	if port.out.String() != string(msg) {
		t.Fatalf("port received %q", port.out.String())
	}

	// Incoming data is picked up by the next background run.
	port.in.WriteString("ok")
	sys.BackgroundProcessing()
	if c := sys.SerialPeekChar(vexos.ChannelStdio); c != 'o' {
		t.Fatalf("SerialPeekChar = %d", c)
	}
	got := []byte{}
	for {
		c := sys.SerialReadChar(vexos.ChannelStdio)
		if c == -1 {
			break
		}
		got = append(got, byte(c))
	}
	if string(got) != "ok" {
		t.Fatalf("read back %q", got)
	}
}

// writeOnlyPort fails the test if its read side is touched.
type writeOnlyPort struct {
	t   *testing.T
	out bytes.Buffer
}

func (p *writeOnlyPort) Read(b []byte) (int, error) {
	p.t.Error("DrainTransmit read from the port")
	return 0, nil
}

func (p *writeOnlyPort) Write(b []byte) (int, error) { return p.out.Write(b) }

func TestDrainTransmitNeverReads(t *testing.T) {
	port := &writeOnlyPort{t: t}
	sys := vexos.NewSystem(port)

	sys.SerialWriteBuffer(vexos.ChannelStdio, []byte("outbound"))
	sys.DrainTransmit()
	if port.out.String() != "outbound" {
		t.Fatalf("port received %q", port.out.String())
	}
	// Spinning on an already empty FIFO must stay on the write side too.
	sys.DrainTransmit()
}

func TestUnboundChannelBuffers(t *testing.T) {
	sys := vexos.NewSystem(&bytes.Buffer{})

	if n := sys.SerialWriteBuffer(vexos.ChannelUser, []byte("x")); n != 1 {
		t.Fatalf("unbound channel rejected write: %d", n)
	}
	sys.BackgroundProcessing()
	if sys.SerialReadChar(vexos.ChannelUser) != -1 {
		t.Fatal("unbound channel delivered data")
	}

	port := &duplex{}
	sys.BindChannel(vexos.ChannelUser, port)
	sys.BackgroundProcessing()
	if port.out.String() != "x" {
		t.Fatalf("port received %q after bind", port.out.String())
	}
}
