package console_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/vexide/vexide/drivers/console"
)

type screen struct {
	lines [console.Lines]string
}

func (s *screen) SetLine(i int, text string) error {
	s.lines[i] = text
	return nil
}

func TestLineBuffering(t *testing.T) {
	scr := &screen{}
	con := console.NewConsole(scr)

	io.WriteString(con, "partial")
	if scr.lines[console.Lines-1] != "" {
		t.Fatal("partial line rendered before newline")
	}
	io.WriteString(con, " line\n")
	if got := scr.lines[console.Lines-1]; got != "partial line" {
		t.Fatalf("bottom line = %q", got)
	}
}

func TestScrolling(t *testing.T) {
	scr := &screen{}
	con := console.NewConsole(scr)

	for i := 0; i < console.Lines+3; i++ {
		fmt.Fprintf(con, "line %d\n", i)
	}
	if got := scr.lines[0]; got != "line 3" {
		t.Errorf("top line = %q, want %q", got, "line 3")
	}
	if got := scr.lines[console.Lines-1]; got != "line 10" {
		t.Errorf("bottom line = %q, want %q", got, "line 10")
	}
	if got := con.Line(0); got != "line 3" {
		t.Errorf("Line(0) = %q", got)
	}
}

func TestCharmapEncode(t *testing.T) {
	enc := console.Charmap.NewEncoder()
	got, err := enc.String("täst\tok")
	if err != nil {
		t.Fatal(err)
	}
	if got != "t?st?ok" {
		t.Errorf("encoded %q", got)
	}
}

func TestCharmapDecode(t *testing.T) {
	dec := console.Charmap.NewDecoder()
	got, err := dec.String("ok\x01")
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok�" {
		t.Errorf("decoded %q", got)
	}
}
