// Package console implements the scrolling text console shown on the brain
// screen.
//
// The layout follows the legacy LCD emulator: a fixed number of text lines,
// new lines push old ones off the top. Writes are line buffered, a byte
// stream becomes visible when a newline commits it.
package console

import (
	"sync"
)

// Lines is the number of text lines on the brain screen.
const Lines = 8

// A LineSetter renders one line of text on the actual screen. It is supplied
// by the embedder, the console itself never touches the display hardware.
type LineSetter interface {
	SetLine(i int, text string) error
}

type Console struct {
	mtx     sync.Mutex
	out     LineSetter
	lines   [Lines]string
	bottom  int
	current []byte
}

func NewConsole(out LineSetter) *Console {
	return &Console{out: out, bottom: Lines - 1}
}

// Write implements io.Writer. Completed lines are rendered immediately, the
// trailing partial line is held back until its newline arrives.
func (v *Console) Write(p []byte) (n int, err error) {
	v.mtx.Lock()
	defer v.mtx.Unlock()

	render := false
	for _, c := range p {
		if c == '\n' {
			v.bottom = (v.bottom + 1) % Lines
			v.lines[v.bottom] = string(v.current)
			v.current = v.current[:0]
			render = true
		} else {
			v.current = append(v.current, c)
		}
	}
	if render {
		err = v.render()
	}
	return len(p), err
}

// render pushes all lines to the screen, oldest first.
func (v *Console) render() error {
	enc := Charmap.NewEncoder()
	for i := 0; i < Lines; i++ {
		idx := (v.bottom + 1 + i) % Lines
		text, err := enc.String(v.lines[idx])
		if err != nil {
			text = v.lines[idx]
		}
		if err := v.out.SetLine(i, text); err != nil {
			return err
		}
	}
	return nil
}

// Line returns the text of screen line i, 0 being the topmost.
func (v *Console) Line(i int) string {
	v.mtx.Lock()
	defer v.mtx.Unlock()
	return v.lines[(v.bottom+1+i)%Lines]
}
