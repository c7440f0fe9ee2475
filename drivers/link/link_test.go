package link_test

import (
	"bytes"
	"testing"

	"github.com/vexide/vexide/drivers/link"
	"github.com/vexide/vexide/errno"
)

func pair() (*link.Link, *link.Link, *bytes.Buffer) {
	radio := &bytes.Buffer{}
	tx := link.Open(radio, "test", link.Transmitter)
	rx := link.Open(radio, "test", link.Receiver)
	return tx, rx, radio
}

func TestSendRecv(t *testing.T) {
	tx, rx, _ := pair()

	msg := []byte("odometry: x=12 y=7")
	if n, err := tx.Send(msg); err != nil || n != len(msg) {
		t.Fatalf("Send = (%d, %v)", n, err)
	}

	buf := make([]byte, link.MaxMessage)
	n, err := rx.Recv(buf)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf[:n]) != string(msg) {
		t.Fatalf("received %q", buf[:n])
	}
}

func TestRecvNoData(t *testing.T) {
	_, rx, _ := pair()
	defer errno.Done()

	errno.Clear()
	if _, err := rx.Recv(make([]byte, 16)); err != link.ErrNoData {
		t.Fatalf("Recv = %v, want ErrNoData", err)
	}
	if errno.Take() != errno.EAGAIN {
		t.Error("errno not set to EAGAIN")
	}
}

func TestRecvResync(t *testing.T) {
	tx, rx, radio := pair()

	radio.Write([]byte("garbage before the frame V"))
	tx.Send([]byte("payload"))

	buf := make([]byte, link.MaxMessage)
	n, err := rx.Recv(buf)
	if err != nil {
		t.Fatal(err)
	}
	if string(buf[:n]) != "payload" {
		t.Fatalf("received %q", buf[:n])
	}
}

func TestRecvChecksum(t *testing.T) {
	tx, rx, radio := pair()
	defer errno.Done()

	tx.Send([]byte("payload"))
	// flip a payload bit
	b := radio.Bytes()
	b[len(b)-2] ^= 0x40

	errno.Clear()
	if _, err := rx.Recv(make([]byte, 16)); err != link.ErrChecksum {
		t.Fatalf("Recv = %v, want ErrChecksum", err)
	}
	if errno.Take() != errno.EIO {
		t.Error("errno not set to EIO")
	}

	// The broken frame must not wedge the link.
	tx.Send([]byte("next"))
	buf := make([]byte, 16)
	n, err := rx.Recv(buf)
	if err != nil || string(buf[:n]) != "next" {
		t.Fatalf("Recv after checksum error = (%q, %v)", buf[:n], err)
	}
}

func TestModeEnforced(t *testing.T) {
	tx, rx, _ := pair()
	defer errno.Done()

	errno.Clear()
	if _, err := rx.Send([]byte("x")); err != link.ErrMode {
		t.Fatalf("Send on receiver = %v", err)
	}
	if errno.Take() != errno.EBADF {
		t.Error("errno not set to EBADF")
	}
	if _, err := tx.Recv(make([]byte, 1)); err != link.ErrMode {
		t.Fatalf("Recv on transmitter = %v", err)
	}
}

func TestTooLong(t *testing.T) {
	tx, _, _ := pair()

	if _, err := tx.Send(make([]byte, link.MaxMessage+1)); err != link.ErrTooLong {
		t.Fatalf("Send = %v, want ErrTooLong", err)
	}
}

func TestFragmentedDelivery(t *testing.T) {
	framed := &bytes.Buffer{}
	tx := link.Open(framed, "test", link.Transmitter)
	tx.Send([]byte("split me"))
	wire := framed.Bytes()

	radio := &bytes.Buffer{}
	rx := link.Open(radio, "test", link.Receiver)

	// Deliver the frame a few bytes at a time. Recv must wait for the
	// full frame without losing the prefix.
	buf := make([]byte, 16)
	for len(wire) > 3 {
		radio.Write(wire[:3])
		wire = wire[3:]
		if _, err := rx.Recv(buf); err != link.ErrNoData {
			t.Fatalf("Recv on partial frame = %v", err)
		}
	}
	radio.Write(wire)
	n, err := rx.Recv(buf)
	if err != nil || string(buf[:n]) != "split me" {
		t.Fatalf("Recv = (%q, %v)", buf[:n], err)
	}
}
